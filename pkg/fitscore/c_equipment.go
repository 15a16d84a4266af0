package fitscore

import (
	"fmt"
	"regexp"
	"strings"
)

// EquipmentCategory scores how well the load's trailer requirement matches
// the driver's stated equipment preferences. Matching is fuzzy text matching
// over normalized labels; a miss is deliberately non-disqualifying since a
// driver may still take a load outside their usual equipment.
type EquipmentCategory struct {
	MatchPoints    int // any of the three passes hit
	NeutralPoints  int // no stated preference
	MismatchPoints int // preferences exist, none matched
	MaxPoints      int
}

// equipmentAlias maps free-text equipment phrasing to the canonical keys a
// driver's preference list may use.
type equipmentAlias struct {
	pattern *regexp.Regexp
	keys    []string
}

var equipmentAliases = []equipmentAlias{
	{regexp.MustCompile(`\bdry\s*van\b|\bvan\b`), []string{"van", "dry van"}},
	{regexp.MustCompile(`\breefer\b|\brefrigerated\b`), []string{"reefer", "refrigerated"}},
	{regexp.MustCompile(`\bflat\s*bed\b`), []string{"flatbed", "flat bed"}},
	{regexp.MustCompile(`\bstep\s*deck\b`), []string{"step deck", "stepdeck"}},
	{regexp.MustCompile(`\bpower\s*only\b`), []string{"power only"}},
}

func (c *EquipmentCategory) Key() string  { return "equipment" }
func (c *EquipmentCategory) Name() string { return "Equipment" }

func (c *EquipmentCategory) Evaluate(profile *DriverProfile, load Load) CategoryResult {
	result := CategoryResult{Key: c.Key(), Name: c.Name()}

	prefs := normalizeAll(profile.PreferredEquipment)
	if len(prefs) == 0 {
		result.Points = clampInt(c.NeutralPoints, 0, c.MaxPoints)
		result.Reasons = append(result.Reasons, "No equipment preference stated")
		return result
	}

	loadText := normalizeToken(load.EquipmentType)
	matched := matchEquipment(loadText, prefs)
	if matched != "" {
		result.Points = clampInt(c.MatchPoints, 0, c.MaxPoints)
		result.MatchedEquipment = matched
		result.Reasons = append(result.Reasons, fmt.Sprintf("Equipment matches preference (%s)", matched))
		return result
	}

	result.Points = clampInt(c.MismatchPoints, 0, c.MaxPoints)
	result.Reasons = append(result.Reasons, fmt.Sprintf("Equipment %q not in stated preferences", load.EquipmentType))
	return result
}

// matchEquipment runs the three matching passes in order and returns the
// matched preference token, or "" when nothing hits.
//
// Pass 1: a preferred token appears inside the load's equipment text.
// Pass 2: the load text matches an alias group whose canonical key the
// driver listed ("Refrigerated" load vs "reefer" preference).
// Pass 3: the load text appears inside a preferred token, catching short
// load labels against longer preference phrasing ("Van" vs "dry van").
func matchEquipment(loadText string, prefs []string) string {
	if loadText == "" {
		return ""
	}

	for _, p := range prefs {
		if p != "" && strings.Contains(loadText, p) {
			return p
		}
	}

	prefSet := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		prefSet[p] = true
	}
	for _, alias := range equipmentAliases {
		if !alias.pattern.MatchString(loadText) {
			continue
		}
		for _, key := range alias.keys {
			if prefSet[key] {
				return key
			}
		}
	}

	for _, p := range prefs {
		if p != "" && strings.Contains(p, loadText) {
			return p
		}
	}

	return ""
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(items []string) []string {
	var out []string
	for _, item := range items {
		if t := normalizeToken(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}
