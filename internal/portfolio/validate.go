package portfolio

import (
	"github.com/dkrylov/irrbb-service/internal/models"
)

// Rejected records a position that failed ingestion validation.
type Rejected struct {
	Position models.Position `json:"position"`
	Reason   string          `json:"reason"`
}

// Partition validates a supplied position set against the schema
// invariants and splits it into accepted and rejected positions.
// Validation happens once at ingestion so malformed records are caught
// before any valuation run touches them.
func Partition(positions []models.Position) ([]models.Position, []Rejected) {
	var (
		accepted []models.Position
		rejected []Rejected
	)
	for _, p := range positions {
		if err := p.Validate(); err != nil {
			rejected = append(rejected, Rejected{Position: p, Reason: err.Error()})
			continue
		}
		accepted = append(accepted, p)
	}
	return accepted, rejected
}
