package fitscore

import (
	"fmt"
	"math"
	"strings"
)

// DistanceCategory scores trip length against the driver's comfort range.
// Unknown mileage scores zero, not neutral: a trip whose length cannot be
// established contributes nothing, unlike the missing-preference cases in
// the other categories.
type DistanceCategory struct {
	MaxPoints            int
	ToleranceBandMiles   float64 // soft band beyond the stated max
	ToleranceSoftening   float64 // multiplier inside the band
	BeyondToleranceShare float64 // flat share past the band
	ShortHaulMiles       float64 // absolute bands when no max is stated
	MidHaulMiles         float64
	ShortHaulShare       float64
	MidHaulShare         float64
	LongHaulShare        float64
	HomeBaseBonus        int
}

func (c *DistanceCategory) Key() string  { return "distance" }
func (c *DistanceCategory) Name() string { return "Distance" }

func (c *DistanceCategory) Evaluate(profile *DriverProfile, load Load) CategoryResult {
	result := CategoryResult{Key: c.Key(), Name: c.Name()}

	if load.Miles <= 0 {
		result.Points = 0
		result.Reasons = append(result.Reasons, "Unknown miles")
		return result
	}

	full := float64(c.MaxPoints)
	var points int

	switch {
	case profile.MaxDistance > 0:
		limit := profile.MaxDistance
		switch {
		case load.Miles <= limit:
			points = c.MaxPoints
			result.Reasons = append(result.Reasons, fmt.Sprintf("%.0f mi within comfort range (%.0f mi max)", load.Miles, limit))
		case load.Miles <= limit+c.ToleranceBandMiles:
			overrun := (load.Miles - limit) / c.ToleranceBandMiles
			points = int(math.Round(full * (1 - overrun) * c.ToleranceSoftening))
			result.Reasons = append(result.Reasons, fmt.Sprintf("%.0f mi slightly over comfort range (%.0f mi max)", load.Miles, limit))
		default:
			points = int(math.Round(full * c.BeyondToleranceShare))
			result.Reasons = append(result.Reasons, fmt.Sprintf("%.0f mi well beyond comfort range (%.0f mi max)", load.Miles, limit))
		}
	case load.Miles <= c.ShortHaulMiles:
		points = int(math.Round(full * c.ShortHaulShare))
		result.Reasons = append(result.Reasons, fmt.Sprintf("Short haul (%.0f mi)", load.Miles))
	case load.Miles <= c.MidHaulMiles:
		points = int(math.Round(full * c.MidHaulShare))
		result.Reasons = append(result.Reasons, fmt.Sprintf("Medium haul (%.0f mi)", load.Miles))
	default:
		points = int(math.Round(full * c.LongHaulShare))
		result.Reasons = append(result.Reasons, fmt.Sprintf("Long haul (%.0f mi)", load.Miles))
	}

	// Home-base bonus: pickup in the driver's home state.
	if origin := strings.ToUpper(strings.TrimSpace(load.OriginState)); origin != "" {
		if home := homeBaseState(profile.HomeBase); home != "" && home == origin {
			points += c.HomeBaseBonus
			result.Reasons = append(result.Reasons, fmt.Sprintf("Pickup near home base (%s)", home))
		}
	}

	result.Points = clampInt(points, 0, c.MaxPoints)
	return result
}
