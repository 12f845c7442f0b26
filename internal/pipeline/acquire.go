package pipeline

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/fleetbill/internal/model"
)

// Source supplies the fleet roster and odometer snapshots for a billing run.
type Source interface {
	FetchFleet(ctx context.Context) ([]model.Vehicle, error)
	FetchHistory(ctx context.Context, at time.Time) ([]model.HistoryRecord, error)
}

// FetchObserver is called once per completed fetch with its operation name,
// duration, and error (nil on success). It may be called concurrently.
type FetchObserver func(op string, elapsed time.Duration, err error)

const (
	OpFleet        = "fleet"
	OpHistoryStart = "history:start"
	OpHistoryEnd   = "history:end"
)

// Acquire fetches the fleet and both period snapshots concurrently.
// The first failure cancels the remaining fetches and is returned as an
// *AcquisitionError. History records are tagged with the period they were
// fetched for.
func Acquire(ctx context.Context, src Source, period model.BillingPeriod, observe FetchObserver) (Snapshot, error) {
	if observe == nil {
		observe = func(string, time.Duration, error) {}
	}

	snap := Snapshot{Period: period}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		started := time.Now()
		fleet, err := src.FetchFleet(gctx)
		observe(OpFleet, time.Since(started), err)
		if err != nil {
			return &AcquisitionError{Op: OpFleet, Err: err}
		}
		snap.Fleet = fleet
		return nil
	})

	fetchHistory := func(p model.Period, op string, dst *[]model.HistoryRecord) func() error {
		return func() error {
			started := time.Now()
			records, err := src.FetchHistory(gctx, period.At(p))
			observe(op, time.Since(started), err)
			if err != nil {
				return &AcquisitionError{Op: op, Err: err}
			}
			for i := range records {
				records[i].Period = p
			}
			*dst = records
			return nil
		}
	}
	g.Go(fetchHistory(model.PeriodStart, OpHistoryStart, &snap.Start))
	g.Go(fetchHistory(model.PeriodEnd, OpHistoryEnd, &snap.End))

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
