package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one vehicle's mileage and charge for the billing cycle.
type LineItem struct {
	LicensePlate        string
	StartOdometerMeters float64
	EndOdometerMeters   float64
	DistanceMeters      float64
	DistanceMiles       float64
	Charge              decimal.Decimal // rounded to 2 places
}

// Invoice is the assembled billing statement for one run.
type Invoice struct {
	ID            string
	Operator      string
	GeneratedAt   time.Time
	Period        BillingPeriod
	RatePerMile   float64
	MetersPerMile float64
	Currency      string
	Link          string
	Items         []LineItem

	// Total is the sum of the already-rounded item charges.
	Total decimal.Decimal
}
