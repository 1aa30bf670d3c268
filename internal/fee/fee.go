// Package fee computes the tiered platform fee applied on top of a job's
// base price. Amounts are integer minor units (cents); tier thresholds are
// expressed in major units.
package fee

import (
	"errors"
	"math"
)

// FixedComponentCents is added to every tier except the top one.
const FixedComponentCents int64 = 30

var ErrInvalidAmount = errors.New("invalid_amount")

type tier struct {
	// upperCents is the exclusive upper bound of the tier in minor units.
	upperCents int64
	rate       float64
	fixed      int64
}

var tiers = []tier{
	{upperCents: 10_000, rate: 0.049, fixed: FixedComponentCents},
	{upperCents: 50_000, rate: 0.039, fixed: FixedComponentCents},
	{upperCents: 100_000, rate: 0.029, fixed: FixedComponentCents},
	{upperCents: 250_000, rate: 0.019, fixed: FixedComponentCents},
	{upperCents: math.MaxInt64, rate: 0.015, fixed: 0},
}

// Calculate returns the platform fee in minor units for a base charge amount
// in minor units. The percentage component is rounded half up.
func Calculate(baseCents int64) (int64, error) {
	if baseCents <= 0 {
		return 0, ErrInvalidAmount
	}
	t := tierFor(baseCents)
	return int64(math.Round(float64(baseCents)*t.rate)) + t.fixed, nil
}

// Rate returns the percentage applied to a base amount, for display.
func Rate(baseCents int64) float64 {
	if baseCents <= 0 {
		return 0
	}
	return tierFor(baseCents).rate
}

func tierFor(baseCents int64) tier {
	for _, t := range tiers {
		if baseCents < t.upperCents {
			return t
		}
	}
	return tiers[len(tiers)-1]
}
