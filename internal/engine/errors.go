package engine

import "errors"

// Typed validation failures surfaced at the component boundary that
// detects them. All are local and non-retryable; callers are expected to
// match with errors.Is.
var (
	// ErrInsufficientCurveData is returned when fewer than two market
	// points are supplied to the curve builder.
	ErrInsufficientCurveData = errors.New("insufficient curve data: at least two market points required")

	// ErrCurveDomain is returned when interpolation is attempted on a
	// date curve with fewer than two points.
	ErrCurveDomain = errors.New("curve domain error: at least two curve points required to interpolate")

	// ErrInvalidSchedule is returned when a position's payment frequency
	// does not evenly divide its issue-to-maturity span.
	ErrInvalidSchedule = errors.New("invalid schedule: payment frequency does not evenly divide issue-to-maturity span")

	// ErrNegativeBaseDiscounting is returned when a shocked rate drives
	// the discount base (1+r) non-positive at a fractional tenor.
	ErrNegativeBaseDiscounting = errors.New("negative base discounting: cannot evaluate (1+rate)^t with 1+rate <= 0")

	// ErrInvalidCapital is returned when the Tier 1 capital denominator
	// is zero or negative.
	ErrInvalidCapital = errors.New("invalid capital: tier 1 capital must be positive")
)
