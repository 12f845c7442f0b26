// Package invoice turns reconciled line items into an invoice and its
// JSON bill document.
package invoice

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/fleetbill/internal/config"
	"github.com/theirongolddev/fleetbill/internal/model"
	"github.com/theirongolddev/fleetbill/internal/pipeline"
)

// DefaultLink is the static link printed on every bill unless configured otherwise.
const DefaultLink = "http://www.zetiorg.com"

const longDate = "Monday, 2 January 2006"

// Input carries everything Assemble needs for one run.
type Input struct {
	Operator string
	Period   model.BillingPeriod
	Rates    config.Rates
	Link     string
	Result   pipeline.Result

	// GeneratedAt stamps the invoice; zero means now.
	GeneratedAt time.Time
}

// Assemble builds the invoice for a reconciled run. It cannot fail.
func Assemble(in Input) model.Invoice {
	generated := in.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	link := in.Link
	if link == "" {
		link = DefaultLink
	}

	items := in.Result.Items
	if items == nil {
		items = []model.LineItem{}
	}

	return model.Invoice{
		ID:            uuid.NewString(),
		Operator:      in.Operator,
		GeneratedAt:   generated,
		Period:        in.Period,
		RatePerMile:   in.Rates.RatePerMile,
		MetersPerMile: in.Rates.MetersPerMile,
		Currency:      in.Rates.Currency,
		Link:          link,
		Items:         items,
		Total:         in.Result.Total,
	}
}

// Title returns "Invoice <operator>".
func Title(inv model.Invoice) string {
	return "Invoice " + inv.Operator
}

// Subtitle returns the generation date line.
func Subtitle(inv model.Invoice) string {
	return "Generated on " + inv.GeneratedAt.Format(longDate)
}

// Description states the rate per mile.
func Description(inv model.Invoice) string {
	return "Rate per Mile in " + inv.Currency + ": " + strconv.FormatFloat(inv.RatePerMile, 'f', -1, 64)
}

// Summary states the total due, always with two decimal places.
func Summary(inv model.Invoice) string {
	return "Total Due in " + inv.Currency + ": " + inv.Total.StringFixed(2)
}
