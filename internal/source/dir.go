// Package source reads fleet and odometer snapshots exported to a local directory.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/fleetbill/internal/fleetapi"
	"github.com/theirongolddev/fleetbill/internal/model"
)

const (
	vehiclesFile  = "vehicles.json"
	stampLayout   = "20060102T150405Z"
	historyPrefix = "history-"
)

// Dir is an offline source backed by a directory of API-shaped JSON files:
//
//	vehicles.json
//	history-20210201T000000Z.json   (or history-start.json)
//	history-20210228T235900Z.json   (or history-end.json)
//
// A timestamped history file takes precedence over the start/end alias.
type Dir struct {
	path   string
	period model.BillingPeriod
}

// NewDir returns a source reading from path. The period resolves the
// history-start.json and history-end.json aliases.
func NewDir(path string, period model.BillingPeriod) (*Dir, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: %s is not a directory", path)
	}
	return &Dir{path: path, period: period}, nil
}

// FetchFleet reads vehicles.json.
func (d *Dir) FetchFleet(ctx context.Context) ([]model.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(d.path, vehiclesFile))
	if err != nil {
		return nil, fmt.Errorf("source: reading fleet: %w", err)
	}
	return fleetapi.DecodeVehicles(data)
}

// FetchHistory reads the snapshot file for at.
func (d *Dir) FetchHistory(ctx context.Context, at time.Time) ([]model.HistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, name := range d.historyFiles(at) {
		data, err := os.ReadFile(filepath.Join(d.path, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("source: reading %s: %w", name, err)
		}
		return fleetapi.DecodeHistory(data)
	}
	return nil, fmt.Errorf("source: no history snapshot for %s in %s: %w",
		at.UTC().Format(time.RFC3339), d.path, fs.ErrNotExist)
}

// HistoryFileName returns the timestamped snapshot file name for at.
func HistoryFileName(at time.Time) string {
	return historyPrefix + at.UTC().Format(stampLayout) + ".json"
}

func (d *Dir) historyFiles(at time.Time) []string {
	names := []string{HistoryFileName(at)}
	switch {
	case at.Equal(d.period.Start):
		names = append(names, historyPrefix+model.PeriodStart.String()+".json")
	case at.Equal(d.period.End):
		names = append(names, historyPrefix+model.PeriodEnd.String()+".json")
	}
	return names
}
