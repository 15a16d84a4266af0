package fitscore

import (
	"fmt"
	"strings"
)

// ComplianceCategory penalizes loads that touch a driver's avoid states.
// Penalty-based: the category starts at full points and each avoid-state hit
// (origin and destination independently) deducts from it.
type ComplianceCategory struct {
	Start     int // starting balance
	PerAvoid  int // deducted per matched avoid state
	MaxPoints int
}

func (c *ComplianceCategory) Key() string  { return "compliance" }
func (c *ComplianceCategory) Name() string { return "Compliance" }

func (c *ComplianceCategory) Evaluate(profile *DriverProfile, load Load) CategoryResult {
	result := CategoryResult{
		Key:  c.Key(),
		Name: c.Name(),
		Hits: map[string]int{"avoid_penalty": 0},
	}

	avoid := make(map[string]bool, len(profile.AvoidStates))
	for _, s := range profile.AvoidStates {
		code := strings.ToUpper(strings.TrimSpace(s))
		if code != "" {
			avoid[code] = true
		}
	}

	points := c.Start
	deducted := 0

	if origin := strings.ToUpper(strings.TrimSpace(load.OriginState)); origin != "" && avoid[origin] {
		points -= c.PerAvoid
		deducted += c.PerAvoid
		result.Reasons = append(result.Reasons, fmt.Sprintf("Pickup in avoided state %s", origin))
	}
	if dest := strings.ToUpper(strings.TrimSpace(load.DestState)); dest != "" && avoid[dest] {
		points -= c.PerAvoid
		deducted += c.PerAvoid
		result.Reasons = append(result.Reasons, fmt.Sprintf("Delivery in avoided state %s", dest))
	}

	// Saturating: two hits can zero the category even though the raw balance
	// would go negative.
	result.Points = clampInt(points, 0, c.MaxPoints)
	result.Hits["avoid_penalty"] = deducted

	return result
}
