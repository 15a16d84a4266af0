package fitscore

import (
	"fmt"
	"strings"
)

// RegionCategory scores the overlap between the load's derived region tags
// and the driver's preferred regions.
type RegionCategory struct {
	MatchPoints   int // nonempty intersection
	NeutralPoints int // no stated preference
	MissPoints    int // preferences exist, no overlap
	MaxPoints     int
}

func (c *RegionCategory) Key() string  { return "region" }
func (c *RegionCategory) Name() string { return "Region" }

func (c *RegionCategory) Evaluate(profile *DriverProfile, load Load) CategoryResult {
	result := CategoryResult{Key: c.Key(), Name: c.Name()}

	tags := RegionTagsForLoad(load)
	result.MatchedRegionTags = tags

	prefs := normalizeAll(profile.PreferredRegions)
	if len(prefs) == 0 {
		result.Points = clampInt(c.NeutralPoints, 0, c.MaxPoints)
		result.Reasons = append(result.Reasons, "No region preference stated")
		return result
	}

	prefSet := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		prefSet[p] = true
	}

	var hit string
	for _, tag := range tags {
		if prefSet[strings.ToLower(tag)] {
			hit = tag
			break
		}
	}

	if hit != "" {
		result.Points = clampInt(c.MatchPoints, 0, c.MaxPoints)
		result.Reasons = append(result.Reasons, fmt.Sprintf("Lane runs through preferred region (%s)", hit))
		return result
	}

	result.Points = clampInt(c.MissPoints, 0, c.MaxPoints)
	result.Reasons = append(result.Reasons, "Lane is outside preferred regions")
	return result
}
