// Package fitscore implements the Atlas Fit driver–load compatibility engine.
// It blends equipment, region, distance, and compliance signals into a single
// explainable 0–100 fit score.
package fitscore

// DriverProfile is a driver's stated preference record. Rows come from the
// roster store or directly from an API payload; every field is optional and
// absence degrades to a neutral score contribution.
type DriverProfile struct {
	DriverID           string   `json:"driver_id"`
	HomeBase           string   `json:"home_base,omitempty"`
	PreferredRegions   []string `json:"preferred_regions,omitempty"`
	PreferredEquipment []string `json:"preferred_equipment,omitempty"`
	AvoidStates        []string `json:"avoid_states,omitempty"`
	MaxDistance        float64  `json:"max_distance,omitempty"` // miles; 0 means unset

	// Error carries the error marker of an access-denied preference lookup.
	// A non-empty value makes FitLoadForDriver return the zero-score sentinel.
	Error string `json:"error,omitempty"`
}

// Load is a candidate load to score a driver against. Descriptive fields
// beyond the four scoring inputs are accepted but ignored.
type Load struct {
	LoadID        string  `json:"load_id,omitempty"`
	OriginState   string  `json:"origin_state,omitempty"`
	DestState     string  `json:"dest_state,omitempty"`
	OriginCity    string  `json:"origin_city,omitempty"`
	DestCity      string  `json:"dest_city,omitempty"`
	EquipmentType string  `json:"equipment_type,omitempty"`
	Miles         float64 `json:"miles,omitempty"`
}

// Verdict is the categorical label derived solely from the fit score.
type Verdict string

const (
	VerdictExcellent Verdict = "excellent"
	VerdictGood      Verdict = "good"
	VerdictOK        Verdict = "ok"
	VerdictPoor      Verdict = "poor"
)

// VerdictFromScore maps a fit score to its verdict. A plain threshold ladder
// with no hysteresis; presentation only, never used in scoring decisions.
func VerdictFromScore(score int) Verdict {
	switch {
	case score >= 85:
		return VerdictExcellent
	case score >= 70:
		return VerdictGood
	case score >= 55:
		return VerdictOK
	default:
		return VerdictPoor
	}
}

// Breakdown holds the per-category point totals. Each field stays within its
// documented bound and the clamped sum equals the total score.
type Breakdown struct {
	Equipment  int `json:"equipment"`  // 0–30
	Region     int `json:"region"`     // 0–30
	Distance   int `json:"distance"`   // 0–25
	Compliance int `json:"compliance"` // 0–15
}

// Meta carries diagnostic detail alongside the score.
type Meta struct {
	MatchedEquipment  string         `json:"matched_equipment,omitempty"`
	MatchedRegionTags []string       `json:"matched_region_tags,omitempty"`
	Hits              map[string]int `json:"hits"`
}

// FitResult is the complete output of scoring one driver against one load.
// Immutable once computed.
type FitResult struct {
	DriverID  string    `json:"driver_id,omitempty"`
	LoadID    string    `json:"load_id,omitempty"`
	Score     int       `json:"score"` // 0–100
	Verdict   Verdict   `json:"verdict"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
	Meta      Meta      `json:"meta"`
}

// CategoryResult is the output of a single scoring category.
type CategoryResult struct {
	Key     string   `json:"key"`    // machine key: "equipment"
	Name    string   `json:"name"`   // human name: "Equipment"
	Points  int      `json:"points"` // clamped contribution
	Reasons []string `json:"reasons"`

	// Diagnostic fields folded into FitResult.Meta by the engine.
	MatchedEquipment  string
	MatchedRegionTags []string
	Hits              map[string]int
}
