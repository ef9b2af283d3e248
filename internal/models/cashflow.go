package models

import "time"

// CashFlowKind distinguishes interest payments from principal repayments.
type CashFlowKind string

const (
	FlowInterest  CashFlowKind = "Interest"
	FlowPrincipal CashFlowKind = "Principal"
)

// CashFlow is one scheduled payment of a position. Amount is signed:
// positive for asset-side inflows, negative for liability-side outflows.
type CashFlow struct {
	PositionID string       `json:"position_id"`
	Date       time.Time    `json:"date"`
	Amount     float64      `json:"amount"`
	Kind       CashFlowKind `json:"kind"`
	Side       Side         `json:"side"`
}
