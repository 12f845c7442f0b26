package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/theirongolddev/fleetbill/internal/model"
)

type fakeSource struct {
	fleet   func(ctx context.Context) ([]model.Vehicle, error)
	history func(ctx context.Context, at time.Time) ([]model.HistoryRecord, error)
}

func (f fakeSource) FetchFleet(ctx context.Context) ([]model.Vehicle, error) {
	return f.fleet(ctx)
}

func (f fakeSource) FetchHistory(ctx context.Context, at time.Time) ([]model.HistoryRecord, error) {
	return f.history(ctx, at)
}

var testPeriod = model.BillingPeriod{
	Start: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2021, 2, 28, 23, 59, 0, 0, time.UTC),
}

func TestAcquire_TagsRecordsByPeriod(t *testing.T) {
	src := fakeSource{
		fleet: func(context.Context) ([]model.Vehicle, error) {
			return fleetOf("AB12CDE"), nil
		},
		history: func(_ context.Context, at time.Time) ([]model.HistoryRecord, error) {
			odo := 1000.0
			if at.Equal(testPeriod.End) {
				odo = 5000
			}
			return []model.HistoryRecord{{LicensePlate: "AB12CDE", OdometerMeters: odo, Timestamp: at}}, nil
		},
	}

	var (
		mu  sync.Mutex
		ops = map[string]int{}
	)
	observe := func(op string, _ time.Duration, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			t.Errorf("observer got error for %s: %v", op, err)
		}
		ops[op]++
	}

	snap, err := Acquire(context.Background(), src, testPeriod, observe)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Period != testPeriod {
		t.Errorf("Period = %+v, want %+v", snap.Period, testPeriod)
	}
	if len(snap.Fleet) != 1 {
		t.Fatalf("Fleet = %d, want 1", len(snap.Fleet))
	}
	if len(snap.Start) != 1 || snap.Start[0].OdometerMeters != 1000 || snap.Start[0].Period != model.PeriodStart {
		t.Errorf("Start = %+v, want one start-tagged 1000m record", snap.Start)
	}
	if len(snap.End) != 1 || snap.End[0].OdometerMeters != 5000 || snap.End[0].Period != model.PeriodEnd {
		t.Errorf("End = %+v, want one end-tagged 5000m record", snap.End)
	}
	for _, op := range []string{OpFleet, OpHistoryStart, OpHistoryEnd} {
		if ops[op] != 1 {
			t.Errorf("observer saw %s %d times, want 1", op, ops[op])
		}
	}

	res, err := Reconcile(snap, flatRates())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if res.Items[0].DistanceMeters != 4000 {
		t.Errorf("DistanceMeters = %v, want 4000", res.Items[0].DistanceMeters)
	}
}

func TestAcquire_FailureCancelsOtherFetches(t *testing.T) {
	upstream := errors.New("connection refused")
	src := fakeSource{
		fleet: func(context.Context) ([]model.Vehicle, error) {
			return nil, upstream
		},
		history: func(ctx context.Context, _ time.Time) ([]model.HistoryRecord, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return nil, errors.New("history fetch was not cancelled")
			}
		},
	}

	_, err := Acquire(context.Background(), src, testPeriod, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("err = %T, want *AcquisitionError", err)
	}
	if acqErr.Op != OpFleet {
		t.Errorf("Op = %q, want %q", acqErr.Op, OpFleet)
	}
	if !errors.Is(err, upstream) {
		t.Errorf("err does not wrap upstream error: %v", err)
	}
}

func TestAcquire_HistoryFailureNamesPeriod(t *testing.T) {
	src := fakeSource{
		fleet: func(context.Context) ([]model.Vehicle, error) { return nil, nil },
		history: func(_ context.Context, at time.Time) ([]model.HistoryRecord, error) {
			if at.Equal(testPeriod.End) {
				return nil, errors.New("502 bad gateway")
			}
			return nil, nil
		},
	}

	_, err := Acquire(context.Background(), src, testPeriod, nil)
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) || acqErr.Op != OpHistoryEnd {
		t.Fatalf("err = %v, want AcquisitionError for %s", err, OpHistoryEnd)
	}
}

func TestAcquire_ParentContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := fakeSource{
		fleet: func(ctx context.Context) ([]model.Vehicle, error) { return nil, ctx.Err() },
		history: func(ctx context.Context, _ time.Time) ([]model.HistoryRecord, error) {
			return nil, ctx.Err()
		},
	}

	_, err := Acquire(ctx, src, testPeriod, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
