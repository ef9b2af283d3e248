package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	JWTSecret string

	// Market data feed
	RatesFeedURL string

	// Valuation inputs
	ValuationDate      string // YYYY-MM-DD, empty means today
	LiquiditySpreadBps float64
	Tier1Capital       float64

	// Behavioral assumptions
	PrepaymentRateAnnual  float64
	NMDBeta               float64
	NMDMaturityYears      float64
	ShockAdjustmentFactor float64

	// Alerting
	AlertThresholdPct float64
	AlertRecipient    string
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string

	// Scheduled revaluation (cron spec)
	RevalSchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		DBConn:                getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=irrbb sslmode=disable"),
		LogLevel:              getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:             getEnv("JWT_SECRET", "secret"),
		RatesFeedURL:          getEnv("RATES_FEED_URL", ""),
		ValuationDate:         getEnv("VALUATION_DATE", ""),
		LiquiditySpreadBps:    getEnvFloat("LIQUIDITY_SPREAD_BPS", 10),
		Tier1Capital:          getEnvFloat("TIER1_CAPITAL", 1_000_000_000),
		PrepaymentRateAnnual:  getEnvFloat("PREPAYMENT_RATE_ANNUAL", 0.05),
		NMDBeta:               getEnvFloat("NMD_BETA", 0.4),
		NMDMaturityYears:      getEnvFloat("NMD_MATURITY_YEARS", 3),
		ShockAdjustmentFactor: getEnvFloat("SHOCK_ADJUSTMENT_FACTOR", 0.1),
		AlertThresholdPct:     getEnvFloat("ALERT_THRESHOLD_PCT", 15),
		AlertRecipient:        getEnv("ALERT_RECIPIENT", ""),
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              getEnv("SMTP_PORT", "587"),
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		SenderEmail:           getEnv("SENDER_EMAIL", "risk@localhost"),
		RevalSchedule:         getEnv("REVAL_SCHEDULE", "0 18 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Tier1Capital <= 0 {
		return nil, fmt.Errorf("TIER1_CAPITAL must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
