package pipeline

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/fleetbill/internal/model"
)

var (
	// ErrMissingHistoryData matches a vehicle lacking a record for a period.
	ErrMissingHistoryData = errors.New("pipeline: missing history data")
	// ErrAmbiguousHistoryData matches a vehicle with several distinct records for a period.
	ErrAmbiguousHistoryData = errors.New("pipeline: ambiguous history data")
	// ErrNegativeDistance matches an end odometer reading below the start reading.
	ErrNegativeDistance = errors.New("pipeline: negative distance")
	// ErrUnbillableDistance matches a distance or charge that is not a finite number.
	ErrUnbillableDistance = errors.New("pipeline: unbillable distance")
	// ErrDuplicateVehicle matches a licence plate listed twice in one fleet.
	ErrDuplicateVehicle = errors.New("pipeline: duplicate vehicle")
)

// AcquisitionError reports a failed upstream fetch. It is fatal to the run.
type AcquisitionError struct {
	Op  string // "fleet", "history:start" or "history:end"
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquisition: %s: %v", e.Op, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// MissingHistoryDataError names a fleet vehicle with no record for Period.
type MissingHistoryDataError struct {
	LicensePlate string
	Period       model.Period
}

func (e *MissingHistoryDataError) Error() string {
	return fmt.Sprintf("pipeline: vehicle %s: no %s-period history record", e.LicensePlate, e.Period)
}

func (e *MissingHistoryDataError) Is(target error) bool { return target == ErrMissingHistoryData }

// AmbiguousHistoryDataError names a fleet vehicle with Count distinct records for Period.
type AmbiguousHistoryDataError struct {
	LicensePlate string
	Period       model.Period
	Count        int
}

func (e *AmbiguousHistoryDataError) Error() string {
	return fmt.Sprintf("pipeline: vehicle %s: %d distinct %s-period history records, want 1",
		e.LicensePlate, e.Count, e.Period)
}

func (e *AmbiguousHistoryDataError) Is(target error) bool { return target == ErrAmbiguousHistoryData }

// NegativeDistanceError names a vehicle whose end reading is below its start reading.
type NegativeDistanceError struct {
	LicensePlate string
	StartMeters  float64
	EndMeters    float64
}

func (e *NegativeDistanceError) Error() string {
	return fmt.Sprintf("pipeline: vehicle %s: end odometer %.0fm is below start odometer %.0fm",
		e.LicensePlate, e.EndMeters, e.StartMeters)
}

func (e *NegativeDistanceError) Is(target error) bool { return target == ErrNegativeDistance }

// UnbillableDistanceError names a vehicle whose readings produce a NaN or
// infinite distance or charge.
type UnbillableDistanceError struct {
	LicensePlate string
	StartMeters  float64
	EndMeters    float64
}

func (e *UnbillableDistanceError) Error() string {
	return fmt.Sprintf("pipeline: vehicle %s: odometer readings %g to %g do not give a finite charge",
		e.LicensePlate, e.StartMeters, e.EndMeters)
}

func (e *UnbillableDistanceError) Is(target error) bool { return target == ErrUnbillableDistance }

// DuplicateVehicleError names a licence plate that appears more than once in the fleet.
type DuplicateVehicleError struct {
	LicensePlate string
}

func (e *DuplicateVehicleError) Error() string {
	return fmt.Sprintf("pipeline: vehicle %s listed more than once in fleet", e.LicensePlate)
}

func (e *DuplicateVehicleError) Is(target error) bool { return target == ErrDuplicateVehicle }
