package fitscore

// Weights holds every scoring constant for all categories. The values come
// from Atlas Command dispatch policy and are tuned as a set; override them
// through pkg/config rather than editing here.
type Weights struct {
	// Compliance
	ComplianceStart   int // starting balance before penalties
	AvoidStatePenalty int // deducted per avoid-state hit (origin and dest count separately)
	ComplianceMax     int

	// Equipment
	EquipmentMatch    int // any of the three match passes hit
	EquipmentNeutral  int // driver stated no equipment preference
	EquipmentMismatch int // preferences exist, none matched
	EquipmentMax      int

	// Region
	RegionMatch   int
	RegionNeutral int
	RegionMiss    int
	RegionMax     int

	// Distance
	DistanceMax          int
	ToleranceBandMiles   float64 // soft band beyond the driver's max distance
	ToleranceSoftening   float64 // applied inside the tolerance band
	BeyondToleranceShare float64 // flat share beyond the band
	ShortHaulMiles       float64 // absolute bands when no max distance is set
	MidHaulMiles         float64
	ShortHaulShare       float64
	MidHaulShare         float64
	LongHaulShare        float64
	HomeBaseBonus        int // origin state matches the driver's home base
}

// Defaults returns the standard scoring weights.
func Defaults() Weights {
	return Weights{
		ComplianceStart:   15,
		AvoidStatePenalty: 10,
		ComplianceMax:     15,

		EquipmentMatch:    28,
		EquipmentNeutral:  18,
		EquipmentMismatch: 8,
		EquipmentMax:      30,

		RegionMatch:   26,
		RegionNeutral: 18,
		RegionMiss:    10,
		RegionMax:     30,

		DistanceMax:          25,
		ToleranceBandMiles:   200,
		ToleranceSoftening:   0.7,
		BeyondToleranceShare: 0.15,
		ShortHaulMiles:       400,
		MidHaulMiles:         900,
		ShortHaulShare:       0.9,
		MidHaulShare:         0.6,
		LongHaulShare:        0.3,
		HomeBaseBonus:        3,
	}
}

// DefaultCategories returns the standard category set in evaluation order.
// The order is load-bearing: reasons are appended as each category runs, so
// compliance penalties always lead the reason list.
func DefaultCategories() []Category {
	w := Defaults()
	return CategoriesFromWeights(w)
}

// CategoriesFromWeights builds the category set from an explicit weight set.
func CategoriesFromWeights(w Weights) []Category {
	return []Category{
		&ComplianceCategory{
			Start:     w.ComplianceStart,
			PerAvoid:  w.AvoidStatePenalty,
			MaxPoints: w.ComplianceMax,
		},
		&EquipmentCategory{
			MatchPoints:    w.EquipmentMatch,
			NeutralPoints:  w.EquipmentNeutral,
			MismatchPoints: w.EquipmentMismatch,
			MaxPoints:      w.EquipmentMax,
		},
		&RegionCategory{
			MatchPoints:   w.RegionMatch,
			NeutralPoints: w.RegionNeutral,
			MissPoints:    w.RegionMiss,
			MaxPoints:     w.RegionMax,
		},
		&DistanceCategory{
			MaxPoints:            w.DistanceMax,
			ToleranceBandMiles:   w.ToleranceBandMiles,
			ToleranceSoftening:   w.ToleranceSoftening,
			BeyondToleranceShare: w.BeyondToleranceShare,
			ShortHaulMiles:       w.ShortHaulMiles,
			MidHaulMiles:         w.MidHaulMiles,
			ShortHaulShare:       w.ShortHaulShare,
			MidHaulShare:         w.MidHaulShare,
			LongHaulShare:        w.LongHaulShare,
			HomeBaseBonus:        w.HomeBaseBonus,
		},
	}
}
