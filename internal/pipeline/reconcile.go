// Package pipeline acquires fleet telemetry and reconciles it into billed line items.
package pipeline

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fleetbill/internal/config"
	"github.com/theirongolddev/fleetbill/internal/model"
)

// Snapshot is the fully materialized input of one billing run.
type Snapshot struct {
	Period model.BillingPeriod
	Fleet  []model.Vehicle
	Start  []model.HistoryRecord
	End    []model.HistoryRecord
}

// Result holds the itemized charges of one billing run, in fleet order.
type Result struct {
	Items []model.LineItem
	Total decimal.Decimal
}

// Reconcile matches every fleet vehicle to exactly one start-period and one
// end-period odometer reading and prices the distance between them.
//
// Total is the sum of each item's already-rounded charge; it is never
// recomputed from unrounded values. The first vehicle that cannot be billed
// aborts the run and no partial result is returned.
func Reconcile(snap Snapshot, rates config.Rates) (Result, error) {
	merged := MergeHistory(snap.Start, snap.End)

	byPlate := make(map[string][]MergedRecord)
	for _, m := range merged {
		byPlate[m.LicensePlate] = append(byPlate[m.LicensePlate], m)
	}

	res := Result{
		Items: make([]model.LineItem, 0, len(snap.Fleet)),
		Total: decimal.Zero,
	}
	seen := make(map[string]struct{}, len(snap.Fleet))

	for _, v := range snap.Fleet {
		plate := v.LicensePlate
		if _, dup := seen[plate]; dup {
			return Result{}, &DuplicateVehicleError{LicensePlate: plate}
		}
		seen[plate] = struct{}{}

		start, err := readingFor(plate, byPlate[plate], model.PeriodStart)
		if err != nil {
			return Result{}, err
		}
		end, err := readingFor(plate, byPlate[plate], model.PeriodEnd)
		if err != nil {
			return Result{}, err
		}

		item, err := priceItem(plate, start.OdometerMeters, end.OdometerMeters, rates)
		if err != nil {
			return Result{}, err
		}

		res.Items = append(res.Items, item)
		res.Total = res.Total.Add(item.Charge)
	}

	return res, nil
}

// readingFor returns the single record for plate tagged with period p.
func readingFor(plate string, records []MergedRecord, p model.Period) (MergedRecord, error) {
	var (
		found MergedRecord
		count int
	)
	for _, r := range records {
		if !r.In(p) {
			continue
		}
		if count == 0 {
			found = r
		}
		count++
	}

	switch {
	case count == 0:
		return MergedRecord{}, &MissingHistoryDataError{LicensePlate: plate, Period: p}
	case count > 1:
		return MergedRecord{}, &AmbiguousHistoryDataError{LicensePlate: plate, Period: p, Count: count}
	}
	return found, nil
}

func priceItem(plate string, startMeters, endMeters float64, rates config.Rates) (model.LineItem, error) {
	distance := endMeters - startMeters
	if distance < 0 && !rates.AllowNegativeDistance {
		return model.LineItem{}, &NegativeDistanceError{
			LicensePlate: plate,
			StartMeters:  startMeters,
			EndMeters:    endMeters,
		}
	}

	miles := rates.Miles(distance)
	if !finite(distance) || !finite(miles*rates.RatePerMile) {
		return model.LineItem{}, &UnbillableDistanceError{
			LicensePlate: plate,
			StartMeters:  startMeters,
			EndMeters:    endMeters,
		}
	}
	return model.LineItem{
		LicensePlate:        plate,
		StartOdometerMeters: startMeters,
		EndOdometerMeters:   endMeters,
		DistanceMeters:      distance,
		DistanceMiles:       miles,
		Charge:              rates.Charge(miles),
	}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
