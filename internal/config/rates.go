package config

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Rounding selects how per-vehicle charges are rounded to 2 places.
type Rounding string

const (
	// RoundHalfEven rounds midpoints to the even neighbour (banker's rounding).
	RoundHalfEven Rounding = "half_even"
	// RoundHalfAway rounds midpoints away from zero.
	RoundHalfAway Rounding = "half_away"
)

const chargePlaces = 2

// Rates holds the constants that turn a distance into a charge.
type Rates struct {
	MetersPerMile         float64  `toml:"meters_per_mile" yaml:"meters_per_mile"`
	RatePerMile           float64  `toml:"rate_per_mile" yaml:"rate_per_mile"`
	Currency              string   `toml:"currency" yaml:"currency"`
	Rounding              Rounding `toml:"rounding" yaml:"rounding"`
	AllowNegativeDistance bool     `toml:"allow_negative_distance" yaml:"allow_negative_distance"`
}

// DefaultRates returns 1609.34 metres per mile at 0.207 per mile.
func DefaultRates() Rates {
	return Rates{
		MetersPerMile: 1609.34,
		RatePerMile:   0.207,
		Currency:      "£",
		Rounding:      RoundHalfEven,
	}
}

// Miles converts metres to miles.
func (r Rates) Miles(meters float64) float64 {
	return meters / r.MetersPerMile
}

// Charge prices a distance in miles, rounded to 2 decimal places.
// miles*RatePerMile must be finite.
func (r Rates) Charge(miles float64) decimal.Decimal {
	raw := decimal.NewFromFloat(miles * r.RatePerMile)
	if r.Rounding == RoundHalfAway {
		return raw.Round(chargePlaces)
	}
	return raw.RoundBank(chargePlaces)
}

// Validate rejects rates that cannot produce a meaningful charge.
func (r Rates) Validate() error {
	if !finite(r.MetersPerMile) || r.MetersPerMile <= 0 {
		return fmt.Errorf("config: meters_per_mile must be a positive finite number, got %v", r.MetersPerMile)
	}
	if !finite(r.RatePerMile) {
		return fmt.Errorf("config: rate_per_mile must be a finite number, got %v", r.RatePerMile)
	}
	if r.RatePerMile < 0 {
		return fmt.Errorf("config: rate_per_mile must not be negative, got %v", r.RatePerMile)
	}
	switch r.Rounding {
	case RoundHalfEven, RoundHalfAway:
	default:
		return fmt.Errorf("config: unknown rounding %q", r.Rounding)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
