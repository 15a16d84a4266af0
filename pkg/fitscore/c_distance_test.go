package fitscore

import "testing"

func newDistanceCategory() *DistanceCategory {
	w := Defaults()
	return &DistanceCategory{
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
	}
}

func TestDistanceCategory(t *testing.T) {
	c := newDistanceCategory()

	tests := []struct {
		name       string
		profile    DriverProfile
		load       Load
		wantPoints int
	}{
		{
			name:       "unknown miles scores zero",
			profile:    DriverProfile{MaxDistance: 600},
			load:       Load{},
			wantPoints: 0,
		},
		{
			name:       "negative miles scores zero",
			profile:    DriverProfile{MaxDistance: 600},
			load:       Load{Miles: -10},
			wantPoints: 0,
		},
		{
			name:       "within comfort range is full points",
			profile:    DriverProfile{MaxDistance: 600},
			load:       Load{Miles: 600},
			wantPoints: 25,
		},
		{
			name:       "halfway into tolerance band",
			profile:    DriverProfile{MaxDistance: 600},
			load:       Load{Miles: 700},
			wantPoints: 9, // round(25 * 0.5 * 0.7)
		},
		{
			name:       "quarter into tolerance band",
			profile:    DriverProfile{MaxDistance: 600},
			load:       Load{Miles: 650},
			wantPoints: 13, // round(25 * 0.75 * 0.7)
		},
		{
			name:       "beyond tolerance band",
			profile:    DriverProfile{MaxDistance: 600},
			load:       Load{Miles: 801},
			wantPoints: 4, // round(25 * 0.15)
		},
		{
			name:       "no max, short haul",
			profile:    DriverProfile{},
			load:       Load{Miles: 400},
			wantPoints: 23, // round(25 * 0.9)
		},
		{
			name:       "no max, medium haul",
			profile:    DriverProfile{},
			load:       Load{Miles: 900},
			wantPoints: 15, // 25 * 0.6
		},
		{
			name:       "no max, long haul",
			profile:    DriverProfile{},
			load:       Load{Miles: 901},
			wantPoints: 8, // round(25 * 0.3)
		},
		{
			name:       "home base bonus",
			profile:    DriverProfile{HomeBase: "Fresno, CA"},
			load:       Load{OriginState: "CA", Miles: 850},
			wantPoints: 18, // 15 + 3
		},
		{
			name:       "home base bonus clamps at category max",
			profile:    DriverProfile{HomeBase: "Fresno, CA", MaxDistance: 1000},
			load:       Load{OriginState: "CA", Miles: 300},
			wantPoints: 25,
		},
		{
			name:       "lowercase home base text earns no bonus",
			profile:    DriverProfile{HomeBase: "fresno, ca"},
			load:       Load{OriginState: "CA", Miles: 850},
			wantPoints: 15,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := c.Evaluate(&tc.profile, tc.load)
			if result.Points != tc.wantPoints {
				t.Errorf("points = %d, want %d", result.Points, tc.wantPoints)
			}
			if len(result.Reasons) == 0 {
				t.Error("expected at least one reason")
			}
		})
	}
}

func TestDistanceCategoryUnknownMilesReason(t *testing.T) {
	c := newDistanceCategory()
	result := c.Evaluate(&DriverProfile{}, Load{})

	if len(result.Reasons) != 1 || result.Reasons[0] != "Unknown miles" {
		t.Errorf("reasons = %v, want [Unknown miles]", result.Reasons)
	}
}
