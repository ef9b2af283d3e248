package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/dkrylov/irrbb-service/internal/config"
	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBreachAlert notifies the risk desk that one or more shock scenarios
// moved EVE beyond the reporting threshold.
func (s *Sender) SendBreachAlert(to string, valuationDate time.Time, breaches []models.DeltaEveRow, thresholdPct float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("IRRBB Alert: Delta EVE threshold breached (%s)", valuationDate.Format("2006-01-02"))

	body := fmt.Sprintf(
		"Delta EVE exceeded %.1f%% of Tier 1 capital in %d scenario(s) as of %s:\n\n",
		thresholdPct, len(breaches), valuationDate.Format("2006-01-02"),
	)
	for _, row := range breaches {
		body += fmt.Sprintf(
			"  %s: Delta EVE %.2f (%.2f%% of Tier 1 capital)\n",
			row.Scenario, row.DeltaEve, row.PctTier1,
		)
	}
	body += "\nPlease review the latest valuation run.\n\nBest regards,\nIRRBB Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send breach alert to %s: %v", to, err)
		return fmt.Errorf("failed to send breach alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// SendRunSummary sends a short summary of a completed valuation run
func (s *Sender) SendRunSummary(to string, run *models.ValuationRun) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("IRRBB Valuation Run %d Complete", run.ID)

	body := fmt.Sprintf(
		"Valuation run %d completed for %s.\n\n"+
			"  PV assets:      %.2f\n"+
			"  PV liabilities: %.2f\n"+
			"  Baseline EVE:   %.2f\n",
		run.ID, run.ValuationDate.Format("2006-01-02"),
		run.PVAssets, run.PVLiabilities, run.BaselineEve,
	)
	body += "\nBest regards,\nIRRBB Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send run summary to %s: %v", to, err)
		return fmt.Errorf("failed to send run summary: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
