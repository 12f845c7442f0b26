package pipeline

import (
	"github.com/theirongolddev/fleetbill/internal/config"
	"github.com/theirongolddev/fleetbill/internal/model"
)

// Reading is the history matched to one fleet vehicle, before pricing.
type Reading struct {
	Vehicle model.Vehicle
	Start   []MergedRecord
	End     []MergedRecord

	// Err is what would stop this vehicle from being billed, or nil.
	Err error
}

// Inspect matches every fleet vehicle to its history the way Reconcile does
// but reports each vehicle's problem instead of stopping at the first one.
func Inspect(snap Snapshot, rates config.Rates) []Reading {
	byPlate := make(map[string][]MergedRecord)
	for _, m := range MergeHistory(snap.Start, snap.End) {
		byPlate[m.LicensePlate] = append(byPlate[m.LicensePlate], m)
	}

	out := make([]Reading, 0, len(snap.Fleet))
	seen := make(map[string]struct{}, len(snap.Fleet))
	for _, v := range snap.Fleet {
		r := Reading{Vehicle: v}
		for _, m := range byPlate[v.LicensePlate] {
			if m.InStart {
				r.Start = append(r.Start, m)
			}
			if m.InEnd {
				r.End = append(r.End, m)
			}
		}

		if _, dup := seen[v.LicensePlate]; dup {
			r.Err = &DuplicateVehicleError{LicensePlate: v.LicensePlate}
		}
		seen[v.LicensePlate] = struct{}{}

		if r.Err == nil {
			r.Err = checkReadings(v.LicensePlate, byPlate[v.LicensePlate], rates)
		}
		out = append(out, r)
	}
	return out
}

func checkReadings(plate string, records []MergedRecord, rates config.Rates) error {
	start, err := readingFor(plate, records, model.PeriodStart)
	if err != nil {
		return err
	}
	end, err := readingFor(plate, records, model.PeriodEnd)
	if err != nil {
		return err
	}
	_, err = priceItem(plate, start.OdometerMeters, end.OdometerMeters, rates)
	return err
}
