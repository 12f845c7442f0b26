package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/fleetbill/internal/model"
)

func TestMergeHistory_UnionDedup(t *testing.T) {
	ts := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	start := []model.HistoryRecord{
		{LicensePlate: "AAA", OdometerMeters: 100, Timestamp: ts},
		{LicensePlate: "AAA", OdometerMeters: 100, Timestamp: ts},
		{LicensePlate: "BBB", OdometerMeters: 200, Timestamp: ts},
	}
	end := []model.HistoryRecord{
		{LicensePlate: "BBB", OdometerMeters: 200, Timestamp: ts},
		{LicensePlate: "AAA", OdometerMeters: 900, Timestamp: ts.Add(time.Hour)},
	}

	got := MergeHistory(start, end)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}

	want := []struct {
		plate    string
		odometer float64
		inStart  bool
		inEnd    bool
	}{
		{"AAA", 100, true, false},
		{"BBB", 200, true, true},
		{"AAA", 900, false, true},
	}
	for i, w := range want {
		g := got[i]
		if g.LicensePlate != w.plate || g.OdometerMeters != w.odometer {
			t.Errorf("[%d] = %s/%v, want %s/%v", i, g.LicensePlate, g.OdometerMeters, w.plate, w.odometer)
		}
		if g.InStart != w.inStart || g.InEnd != w.inEnd {
			t.Errorf("[%d] tags = start:%v end:%v, want start:%v end:%v", i, g.InStart, g.InEnd, w.inStart, w.inEnd)
		}
	}
}

func TestMergeHistory_TimestampDistinguishesRecords(t *testing.T) {
	ts := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)
	start := []model.HistoryRecord{{LicensePlate: "AAA", OdometerMeters: 100, Timestamp: ts}}
	end := []model.HistoryRecord{{LicensePlate: "AAA", OdometerMeters: 100, Timestamp: ts.Add(time.Nanosecond)}}

	got := MergeHistory(start, end)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestMergeHistory_SameInstantDifferentZone(t *testing.T) {
	utc := time.Date(2021, 2, 1, 12, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("BST", 3600))

	got := MergeHistory(
		[]model.HistoryRecord{{LicensePlate: "AAA", OdometerMeters: 1, Timestamp: utc}},
		[]model.HistoryRecord{{LicensePlate: "AAA", OdometerMeters: 1, Timestamp: local}},
	)
	if len(got) != 1 || !got[0].InStart || !got[0].InEnd {
		t.Fatalf("got %+v, want one record tagged with both periods", got)
	}
}

func TestMergeHistory_IgnoresInputPeriodField(t *testing.T) {
	// A mislabelled record still takes its tag from the argument it arrives in.
	start := []model.HistoryRecord{{LicensePlate: "AAA", OdometerMeters: 1, Period: model.PeriodEnd}}

	got := MergeHistory(start, nil)
	if len(got) != 1 || !got[0].In(model.PeriodStart) || got[0].In(model.PeriodEnd) {
		t.Fatalf("got %+v, want start-only tag", got)
	}
}

func TestMergeHistory_Empty(t *testing.T) {
	if got := MergeHistory(nil, nil); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}
