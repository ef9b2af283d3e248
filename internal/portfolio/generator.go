package portfolio

import (
	"math/rand"
	"time"

	"github.com/dkrylov/irrbb-service/internal/models"
	"github.com/google/uuid"
)

var paymentFrequencies = []int{1, 3, 6, 12}

var floatingIndexes = []string{"TAIBOR 1M", "TAIBOR 3M", "TAIBOR 6M"}

// Generator produces synthetic banking-book portfolios conforming to the
// position schema. A fixed seed yields a reproducible portfolio.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator initializes a generator with the given seed
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate samples n positions relative to the valuation date. Maturities
// are aligned to whole multiples of the payment frequency so every
// generated schedule is regular; roughly a third of liabilities are tagged
// as core non-maturity deposits and a share of fixed-rate assets as
// prepaying mortgages.
func (g *Generator) Generate(n int, valuationDate time.Time) []models.Position {
	positions := make([]models.Position, 0, n)
	for i := 0; i < n; i++ {
		positions = append(positions, g.position(valuationDate))
	}
	return positions
}

func (g *Generator) position(valuationDate time.Time) models.Position {
	pos := models.Position{
		ID:          uuid.NewString(),
		Side:        models.SideAsset,
		Notional:    float64(int(g.uniform(10_000, 10_000_000))),
		RateType:    models.RateFixed,
		CurrentRate: g.uniform(0.01, 0.05),
		Behavior:    models.BehaviorNone,
	}
	if g.rng.Float64() < 0.5 {
		pos.Side = models.SideLiability
	}

	// Core NMDs: a third of liabilities, no contractual maturity.
	if pos.Side == models.SideLiability && g.rng.Float64() < 0.3 {
		pos.Behavior = models.BehaviorNonMaturity
		return pos
	}

	freq := paymentFrequencies[g.rng.Intn(len(paymentFrequencies))]
	pos.PaymentFreqMonths = freq

	// Issue in the past and maturity in the future, both on the payment
	// grid so the schedule divides evenly.
	issuePeriods := 1 + g.rng.Intn(60/freq)
	remainingPeriods := 1 + g.rng.Intn(240/freq)
	pos.IssueDate = addMonths(valuationDate, -issuePeriods*freq)
	maturity := addMonths(pos.IssueDate, (issuePeriods+remainingPeriods)*freq)
	pos.MaturityDate = &maturity

	if g.rng.Float64() < 0.4 {
		pos.RateType = models.RateFloating
		pos.IndexName = floatingIndexes[g.rng.Intn(len(floatingIndexes))]
		pos.SpreadBps = 5 + g.rng.Intn(46)
		reprice := addMonths(valuationDate, g.rng.Intn(freq)+1)
		if reprice.After(maturity) {
			reprice = maturity
		}
		pos.NextRepricingDate = &reprice
	}

	// Prepaying mortgages: fixed-rate assets with longer maturities.
	if pos.Side == models.SideAsset && pos.RateType == models.RateFixed && g.rng.Float64() < 0.3 {
		pos.Behavior = models.BehaviorPrepayment
	}

	return pos
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// addMonths mirrors the engine's EDATE-style month arithmetic so that
// generated maturities land on the same grid the projector walks.
func addMonths(t time.Time, months int) time.Time {
	d := t.AddDate(0, months, 0)
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if d.Month() == target.Month() {
		return d
	}
	origMonth := d.Month()
	for d.Month() == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
