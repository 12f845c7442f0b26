package fleetapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/theirongolddev/fleetbill/internal/model"
)

// Vehicle is one entry of the /vehicles response.
type Vehicle struct {
	LicensePlate string `json:"licensePlate"`
	VIN          string `json:"vin"`
	Make         string `json:"make"`
	Model        string `json:"model"`
}

// VehicleHistory is one entry of the /history/{timestamp} response.
type VehicleHistory struct {
	VIN          string       `json:"vin"`
	LicensePlate string       `json:"licensePlate"`
	Timestamp    time.Time    `json:"timestamp"`
	State        VehicleState `json:"state"`
}

// VehicleState is the telemetry snapshot carried by a history entry.
// Only the odometer is used for billing.
type VehicleState struct {
	OdometerInMeters float64 `json:"odometerInMeters"`
}

// DecodeVehicles parses a /vehicles payload into domain vehicles.
func DecodeVehicles(data []byte) ([]model.Vehicle, error) {
	var raw []Vehicle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fleetapi: parsing vehicles: %w", err)
	}

	out := make([]model.Vehicle, 0, len(raw))
	for _, v := range raw {
		if v.LicensePlate == "" {
			return nil, fmt.Errorf("fleetapi: vehicle %q has no licence plate", v.VIN)
		}
		out = append(out, model.Vehicle{
			LicensePlate: v.LicensePlate,
			VIN:          v.VIN,
			Make:         v.Make,
			Model:        v.Model,
		})
	}
	return out, nil
}

// DecodeHistory parses a /history payload into untagged history records.
func DecodeHistory(data []byte) ([]model.HistoryRecord, error) {
	var raw []VehicleHistory
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("fleetapi: parsing history: %w", err)
	}

	out := make([]model.HistoryRecord, 0, len(raw))
	for _, h := range raw {
		out = append(out, model.HistoryRecord{
			LicensePlate:   h.LicensePlate,
			OdometerMeters: h.State.OdometerInMeters,
			Timestamp:      h.Timestamp,
		})
	}
	return out, nil
}
