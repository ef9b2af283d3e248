package models

import (
	"fmt"
	"time"
)

// Side distinguishes banking-book assets from liabilities.
type Side string

const (
	SideAsset     Side = "Asset"
	SideLiability Side = "Liability"
)

// RateType distinguishes fixed-rate instruments from floating-rate ones.
type RateType string

const (
	RateFixed    RateType = "Fixed"
	RateFloating RateType = "Floating"
)

// Behavior tags the behavioral overlay applied to a position's cash flows.
type Behavior string

const (
	BehaviorNone        Behavior = "None"
	BehaviorPrepayment  Behavior = "Prepayment"
	BehaviorNonMaturity Behavior = "NonMaturity"
)

// Position represents one interest-sensitive banking-book instrument.
// MaturityDate is nil for non-maturity instruments; NextRepricingDate is
// set only on floating-rate positions.
type Position struct {
	ID                string     `json:"id"`
	Side              Side       `json:"side"`
	Notional          float64    `json:"notional"`
	RateType          RateType   `json:"rate_type"`
	IndexName         string     `json:"index,omitempty"`
	SpreadBps         int        `json:"spread_bps,omitempty"`
	CurrentRate       float64    `json:"current_rate"`
	PaymentFreqMonths int        `json:"payment_freq_months"`
	IssueDate         time.Time  `json:"issue_date"`
	MaturityDate      *time.Time `json:"maturity_date,omitempty"`
	NextRepricingDate *time.Time `json:"next_repricing_date,omitempty"`
	Behavior          Behavior   `json:"behavioral_tag"`
}

// Validate checks the schema invariants at ingestion time.
func (p Position) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("position id is required")
	}
	if p.Side != SideAsset && p.Side != SideLiability {
		return fmt.Errorf("position %s: invalid side %q", p.ID, p.Side)
	}
	if p.Notional <= 0 {
		return fmt.Errorf("position %s: notional must be positive, got %f", p.ID, p.Notional)
	}
	if p.RateType != RateFixed && p.RateType != RateFloating {
		return fmt.Errorf("position %s: invalid rate type %q", p.ID, p.RateType)
	}
	switch p.Behavior {
	case BehaviorNone, BehaviorPrepayment, BehaviorNonMaturity:
	default:
		return fmt.Errorf("position %s: invalid behavioral tag %q", p.ID, p.Behavior)
	}
	if p.MaturityDate == nil {
		if p.Behavior != BehaviorNonMaturity {
			return fmt.Errorf("position %s: missing maturity date on a maturing instrument", p.ID)
		}
	} else {
		if !p.MaturityDate.After(p.IssueDate) {
			return fmt.Errorf("position %s: maturity date must be after issue date", p.ID)
		}
		if p.PaymentFreqMonths <= 0 {
			return fmt.Errorf("position %s: payment frequency must be positive", p.ID)
		}
	}
	if p.RateType == RateFloating {
		if p.NextRepricingDate == nil {
			return fmt.Errorf("position %s: floating position requires a next repricing date", p.ID)
		}
		if p.MaturityDate != nil && p.NextRepricingDate.After(*p.MaturityDate) {
			return fmt.Errorf("position %s: next repricing date is after maturity", p.ID)
		}
	}
	return nil
}
