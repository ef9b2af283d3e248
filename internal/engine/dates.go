package engine

import "time"

const (
	daysPerYear  = 365.25
	daysPerMonth = 30.4375
)

// addMonths behaves like Excel's EDATE, clamping to the last day of the
// target month instead of letting Go normalize (Jan 31 + 1M = Feb 28, not
// Mar 3).
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

// daysBetween returns the day count between two dates as a float.
func daysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// wholeMonthsBetween returns the calendar-month span between two dates,
// ignoring the day-of-month component.
func wholeMonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// sameDay reports whether two dates fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
