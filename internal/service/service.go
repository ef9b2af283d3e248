package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dkrylov/irrbb-service/internal/config"
	"github.com/dkrylov/irrbb-service/internal/engine"
	"github.com/dkrylov/irrbb-service/internal/integrations/rates"
	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/dkrylov/irrbb-service/internal/portfolio"
	"github.com/dkrylov/irrbb-service/internal/repository"
	"github.com/dkrylov/irrbb-service/internal/utils/email"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	eng    *engine.Engine
	rates  *rates.Client
	mailer *email.Sender

	mu         sync.RWMutex
	lastResult *engine.RunResult
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, eng *engine.Engine, ratesClient *rates.Client, mailer *email.Sender) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		eng:    eng,
		rates:  ratesClient,
		mailer: mailer,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GeneratePortfolio samples a synthetic banking book, stores it as the
// active position set, and returns the generated positions
func (s *Service) GeneratePortfolio(count int, seed int64) ([]models.Position, error) {
	if count <= 0 {
		return nil, fmt.Errorf("position count must be positive")
	}

	valuationDate, err := s.valuationDate()
	if err != nil {
		return nil, err
	}

	positions := portfolio.NewGenerator(seed).Generate(count, valuationDate)
	if err := s.repo.ReplacePositions(positions); err != nil {
		return nil, err
	}

	s.log.Infof("Generated synthetic portfolio with %d positions", count)
	return positions, nil
}

// IngestPositions validates a supplied position set, stores the accepted
// positions as the active book, and reports the rejected ones
func (s *Service) IngestPositions(positions []models.Position) ([]models.Position, []portfolio.Rejected, error) {
	accepted, rejected := portfolio.Partition(positions)
	if len(accepted) == 0 {
		return nil, rejected, fmt.Errorf("no valid positions in upload (%d rejected)", len(rejected))
	}

	if err := s.repo.ReplacePositions(accepted); err != nil {
		return nil, rejected, err
	}

	s.log.Infof("Ingested %d positions (%d rejected)", len(accepted), len(rejected))
	return accepted, rejected, nil
}

// ListPositions retrieves the active banking book
func (s *Service) ListPositions() ([]models.Position, error) {
	return s.repo.ListPositions()
}

// LatestRun retrieves the most recent persisted valuation run
func (s *Service) LatestRun() (*models.ValuationRun, error) {
	return s.repo.LatestRun()
}

// RunValuation executes the full revaluation pipeline against the stored
// book, persists the run, and triggers a breach alert when a scenario
// exceeds the configured threshold
func (s *Service) RunValuation(ctx context.Context) (*engine.RunResult, error) {
	positions, err := s.repo.ListPositions()
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no positions stored: generate or upload a portfolio first")
	}

	valuationDate, err := s.valuationDate()
	if err != nil {
		return nil, err
	}

	result, err := s.eng.Run(ctx, engine.RunInput{
		ValuationDate:      valuationDate,
		Positions:          positions,
		MarketPoints:       s.marketPoints(),
		LiquiditySpreadBps: s.config.LiquiditySpreadBps,
		Tier1Capital:       s.config.Tier1Capital,
		Behavioral: models.BehavioralParams{
			PrepaymentRateAnnual:  s.config.PrepaymentRateAnnual,
			NMDBeta:               s.config.NMDBeta,
			NMDMaturityYears:      s.config.NMDMaturityYears,
			ShockAdjustmentFactor: s.config.ShockAdjustmentFactor,
		},
	})
	if err != nil {
		return nil, err
	}

	run := &models.ValuationRun{
		ValuationDate: valuationDate,
		PVAssets:      result.Baseline.PVAssets,
		PVLiabilities: result.Baseline.PVLiabilities,
		BaselineEve:   result.Baseline.EVE,
		Tier1Capital:  s.config.Tier1Capital,
	}
	if err := s.repo.CreateRun(run); err != nil {
		return nil, err
	}
	if err := s.repo.SaveScenarioResults(run.ID, result.Report); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastResult = result
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"run_id":       run.ID,
		"baseline_eve": result.Baseline.EVE,
		"excluded":     len(result.Excluded),
	}).Info("Valuation run complete")

	s.alertOnBreach(valuationDate, result.Report)
	return result, nil
}

// LastResult returns the most recent in-memory run result, or nil if no
// run has completed since startup
func (s *Service) LastResult() *engine.RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// marketPoints fetches the live rate table, falling back to the static
// default table when the feed is unavailable.
func (s *Service) marketPoints() []models.MarketPoint {
	points, err := s.rates.GetMarketRates()
	if err != nil {
		s.log.Warnf("Rate feed unavailable, using default market rates: %v", err)
		return models.DefaultMarketRates()
	}
	return points
}

func (s *Service) valuationDate() (time.Time, error) {
	if s.config.ValuationDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", s.config.ValuationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid VALUATION_DATE %q: %w", s.config.ValuationDate, err)
	}
	return d, nil
}

func (s *Service) alertOnBreach(valuationDate time.Time, report models.DeltaEveReport) {
	if s.mailer == nil || s.config.AlertRecipient == "" || s.config.SMTPHost == "" {
		return
	}

	var breaches []models.DeltaEveRow
	for _, row := range report {
		if math.Abs(row.PctTier1) >= s.config.AlertThresholdPct {
			breaches = append(breaches, row)
		}
	}
	if len(breaches) == 0 {
		return
	}

	if err := s.mailer.SendBreachAlert(s.config.AlertRecipient, valuationDate, breaches, s.config.AlertThresholdPct); err != nil {
		s.log.Errorf("Breach alert delivery failed: %v", err)
	}
}
