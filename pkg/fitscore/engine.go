package fitscore

// Category is the interface all scoring categories implement.
type Category interface {
	// Key returns the machine-readable category identifier.
	Key() string
	// Name returns the human-readable category name.
	Name() string
	// Evaluate computes the category's points for a driver/load pair.
	// Implementations must be pure and must not fail: missing inputs fall
	// back to the category's documented neutral or zero contribution.
	Evaluate(profile *DriverProfile, load Load) CategoryResult
}

// Engine runs the configured categories against a driver/load pair and
// assembles a FitResult. The zero-dependency core of Atlas Fit: no I/O, no
// shared state, safe for concurrent use.
type Engine struct {
	categories []Category
}

// NewEngine creates an engine with the given categories. Categories run in
// the order given; reason strings keep that order in the result.
func NewEngine(categories ...Category) *Engine {
	return &Engine{categories: categories}
}

// DefaultEngine returns an engine with the standard category set.
func DefaultEngine() *Engine {
	return NewEngine(DefaultCategories()...)
}

// Fit scores one driver profile against one load. Pure and total: it never
// fails, and absent input fields degrade to their documented neutral or zero
// contributions.
func (e *Engine) Fit(profile *DriverProfile, load Load) FitResult {
	result := FitResult{
		LoadID:  load.LoadID,
		Reasons: []string{},
		Meta:    Meta{Hits: map[string]int{"avoid_penalty": 0}},
	}
	if profile != nil {
		result.DriverID = profile.DriverID
	} else {
		profile = &DriverProfile{}
	}

	total := 0
	for _, c := range e.categories {
		cr := c.Evaluate(profile, load)
		total += cr.Points
		result.Reasons = append(result.Reasons, cr.Reasons...)

		switch cr.Key {
		case "equipment":
			result.Breakdown.Equipment = cr.Points
		case "region":
			result.Breakdown.Region = cr.Points
		case "distance":
			result.Breakdown.Distance = cr.Points
		case "compliance":
			result.Breakdown.Compliance = cr.Points
		}

		if cr.MatchedEquipment != "" {
			result.Meta.MatchedEquipment = cr.MatchedEquipment
		}
		if cr.MatchedRegionTags != nil {
			result.Meta.MatchedRegionTags = cr.MatchedRegionTags
		}
		for k, v := range cr.Hits {
			result.Meta.Hits[k] = v
		}
	}

	// Per-category caps already bound the sum at 100; the final clamp is a
	// safety net kept for weight overrides that exceed the caps.
	result.Score = clampInt(total, 0, 100)
	result.Verdict = VerdictFromScore(result.Score)

	return result
}

// ComputeDriverFit scores a driver/load pair with the default category set.
func ComputeDriverFit(profile *DriverProfile, load Load) FitResult {
	return DefaultEngine().Fit(profile, load)
}

// FitLoadForDriver scores a possibly-unusable profile against a load. A nil
// profile, or one carrying the error marker of a denied preference lookup,
// short-circuits to a fully-formed zero-score result instead of failing.
func (e *Engine) FitLoadForDriver(profile *DriverProfile, load Load) FitResult {
	if profile == nil || profile.Error != "" {
		result := FitResult{
			LoadID:  load.LoadID,
			Score:   0,
			Verdict: VerdictPoor,
			Reasons: []string{"Driver preferences unavailable"},
			Meta:    Meta{Hits: map[string]int{"avoid_penalty": 0}},
		}
		if profile != nil {
			result.DriverID = profile.DriverID
		}
		return result
	}
	return e.Fit(profile, load)
}

// FitLoadForDriver scores with the default category set. See the Engine
// method for the unusable-profile contract.
func FitLoadForDriver(profile *DriverProfile, load Load) FitResult {
	return DefaultEngine().FitLoadForDriver(profile, load)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
