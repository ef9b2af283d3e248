package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO irrbb.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM irrbb.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ReplacePositions replaces the stored banking book with the supplied
// position set in a single transaction.
func (r *Repository) ReplacePositions(positions []models.Position) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM irrbb.positions`); err != nil {
		return fmt.Errorf("failed to clear positions: %w", err)
	}

	query := `
		INSERT INTO irrbb.positions (
			id, side, notional, rate_type, index_name, spread_bps, current_rate,
			payment_freq_months, issue_date, maturity_date, next_repricing_date, behavioral_tag
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	for _, p := range positions {
		_, err := tx.Exec(query,
			p.ID, p.Side, p.Notional, p.RateType, p.IndexName, p.SpreadBps, p.CurrentRate,
			p.PaymentFreqMonths, p.IssueDate, p.MaturityDate, p.NextRepricingDate, p.Behavior)
		if err != nil {
			return fmt.Errorf("failed to insert position %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit positions: %w", err)
	}
	return nil
}

// ListPositions retrieves the stored banking book
func (r *Repository) ListPositions() ([]models.Position, error) {
	query := `
		SELECT id, side, notional, rate_type, index_name, spread_bps, current_rate,
		       payment_freq_months, issue_date, maturity_date, next_repricing_date, behavioral_tag
		FROM irrbb.positions
		ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []models.Position
	for rows.Next() {
		var p models.Position
		var maturity, repricing sql.NullTime
		err := rows.Scan(&p.ID, &p.Side, &p.Notional, &p.RateType, &p.IndexName, &p.SpreadBps,
			&p.CurrentRate, &p.PaymentFreqMonths, &p.IssueDate, &maturity, &repricing, &p.Behavior)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		if maturity.Valid {
			m := maturity.Time
			p.MaturityDate = &m
		}
		if repricing.Valid {
			d := repricing.Time
			p.NextRepricingDate = &d
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}
	return positions, nil
}

// CreateRun persists the baseline outcome of one valuation run
func (r *Repository) CreateRun(run *models.ValuationRun) error {
	query := `
		INSERT INTO irrbb.valuation_runs (valuation_date, pv_assets, pv_liabilities, baseline_eve, tier1_capital, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, run.ValuationDate, run.PVAssets, run.PVLiabilities, run.BaselineEve, run.Tier1Capital).
		Scan(&run.ID, &run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create valuation run: %w", err)
	}
	return nil
}

// SaveScenarioResults persists the per-scenario delta-EVE rows of a run
func (r *Repository) SaveScenarioResults(runID int64, report models.DeltaEveReport) error {
	query := `
		INSERT INTO irrbb.run_scenarios (run_id, scenario, scenario_eve, delta_eve, pct_tier1)
		VALUES ($1, $2, $3, $4, $5)`
	for _, row := range report {
		if _, err := r.db.Exec(query, runID, row.Scenario, row.ScenarioEve, row.DeltaEve, row.PctTier1); err != nil {
			return fmt.Errorf("failed to save scenario result %s: %w", row.Scenario, err)
		}
	}
	return nil
}

// LatestRun retrieves the most recent valuation run
func (r *Repository) LatestRun() (*models.ValuationRun, error) {
	run := &models.ValuationRun{}
	var valuationDate, createdAt time.Time
	query := `
		SELECT id, valuation_date, pv_assets, pv_liabilities, baseline_eve, tier1_capital, created_at
		FROM irrbb.valuation_runs
		ORDER BY created_at DESC
		LIMIT 1`
	err := r.db.QueryRow(query).
		Scan(&run.ID, &valuationDate, &run.PVAssets, &run.PVLiabilities, &run.BaselineEve, &run.Tier1Capital, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no valuation runs recorded")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	run.ValuationDate = valuationDate
	run.CreatedAt = createdAt
	return run, nil
}
