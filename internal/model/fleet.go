// Package model defines domain types for fleet mileage billing.
package model

import "time"

// Vehicle is one member of the billed operator's fleet.
// Only LicensePlate takes part in billing.
type Vehicle struct {
	LicensePlate string
	VIN          string
	Make         string
	Model        string
}

// Period identifies which billing boundary a history record belongs to.
type Period int

const (
	PeriodStart Period = iota + 1
	PeriodEnd
)

func (p Period) String() string {
	switch p {
	case PeriodStart:
		return "start"
	case PeriodEnd:
		return "end"
	default:
		return "unknown"
	}
}

// HistoryRecord is an odometer snapshot for one vehicle, tagged with the
// period of the fetch that produced it.
type HistoryRecord struct {
	LicensePlate   string
	OdometerMeters float64
	Timestamp      time.Time
	Period         Period
}

// BillingPeriod is the pair of boundary timestamps for one billing cycle.
type BillingPeriod struct {
	Start time.Time
	End   time.Time
}

// At returns the boundary timestamp for p.
func (bp BillingPeriod) At(p Period) time.Time {
	if p == PeriodEnd {
		return bp.End
	}
	return bp.Start
}
