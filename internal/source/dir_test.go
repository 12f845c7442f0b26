package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/fleetbill/internal/model"
)

var period = model.BillingPeriod{
	Start: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2021, 2, 28, 23, 59, 0, 0, time.UTC),
}

// writeFiles creates a temp directory holding the given name/content pairs.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newDir(t *testing.T, path string) *Dir {
	t.Helper()
	d, err := NewDir(path, period)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	return d
}

func TestDir_FetchFleet(t *testing.T) {
	d := newDir(t, writeFiles(t, map[string]string{
		"vehicles.json": `[{"licensePlate":"AB12CDE","vin":"VIN1"}]`,
	}))

	fleet, err := d.FetchFleet(context.Background())
	if err != nil {
		t.Fatalf("FetchFleet: %v", err)
	}
	if len(fleet) != 1 || fleet[0].LicensePlate != "AB12CDE" {
		t.Fatalf("fleet = %+v", fleet)
	}
}

func TestDir_FetchHistoryAliases(t *testing.T) {
	d := newDir(t, writeFiles(t, map[string]string{
		"history-start.json": `[{"licensePlate":"AB12CDE","state":{"odometerInMeters":1000}}]`,
		"history-end.json":   `[{"licensePlate":"AB12CDE","state":{"odometerInMeters":5000}}]`,
	}))

	start, err := d.FetchHistory(context.Background(), period.Start)
	if err != nil {
		t.Fatalf("FetchHistory(start): %v", err)
	}
	end, err := d.FetchHistory(context.Background(), period.End)
	if err != nil {
		t.Fatalf("FetchHistory(end): %v", err)
	}
	if start[0].OdometerMeters != 1000 || end[0].OdometerMeters != 5000 {
		t.Errorf("odometers = %v, %v; want 1000, 5000", start[0].OdometerMeters, end[0].OdometerMeters)
	}
}

func TestDir_TimestampedFileWins(t *testing.T) {
	d := newDir(t, writeFiles(t, map[string]string{
		"history-start.json":            `[{"licensePlate":"AB12CDE","state":{"odometerInMeters":1}}]`,
		"history-20210201T000000Z.json": `[{"licensePlate":"AB12CDE","state":{"odometerInMeters":2}}]`,
	}))

	recs, err := d.FetchHistory(context.Background(), period.Start)
	if err != nil {
		t.Fatalf("FetchHistory: %v", err)
	}
	if recs[0].OdometerMeters != 2 {
		t.Errorf("OdometerMeters = %v, want 2 from timestamped file", recs[0].OdometerMeters)
	}
}

func TestDir_MissingSnapshot(t *testing.T) {
	d := newDir(t, t.TempDir())

	_, err := d.FetchHistory(context.Background(), period.Start.Add(time.Hour))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
	if _, err := d.FetchFleet(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("FetchFleet err = %v, want fs.ErrNotExist", err)
	}
}

func TestDir_CancelledContext(t *testing.T) {
	d := newDir(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.FetchFleet(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewDir_NotADirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{"vehicles.json": "[]"})
	if _, err := NewDir(filepath.Join(dir, "vehicles.json"), period); err == nil {
		t.Fatal("expected error for file path")
	}
	if _, err := NewDir(filepath.Join(dir, "missing"), period); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestHistoryFileName(t *testing.T) {
	at := time.Date(2021, 2, 28, 23, 59, 0, 0, time.FixedZone("X", 3600))
	if got := HistoryFileName(at); got != "history-20210228T225900Z.json" {
		t.Errorf("HistoryFileName = %q", got)
	}
}
