package fitscore

import "testing"

func newComplianceCategory() *ComplianceCategory {
	w := Defaults()
	return &ComplianceCategory{
		Start:     w.ComplianceStart,
		PerAvoid:  w.AvoidStatePenalty,
		MaxPoints: w.ComplianceMax,
	}
}

func TestComplianceCategory(t *testing.T) {
	c := newComplianceCategory()

	tests := []struct {
		name        string
		avoid       []string
		load        Load
		wantPoints  int
		wantPenalty int
		wantReasons int
	}{
		{
			name:        "no avoid states",
			avoid:       nil,
			load:        Load{OriginState: "CA", DestState: "TX"},
			wantPoints:  15,
			wantPenalty: 0,
			wantReasons: 0,
		},
		{
			name:        "origin hit",
			avoid:       []string{"CA"},
			load:        Load{OriginState: "CA", DestState: "TX"},
			wantPoints:  5,
			wantPenalty: 10,
			wantReasons: 1,
		},
		{
			name:        "destination hit",
			avoid:       []string{"NJ"},
			load:        Load{OriginState: "PA", DestState: "NJ"},
			wantPoints:  5,
			wantPenalty: 10,
			wantReasons: 1,
		},
		{
			name:        "double hit saturates at zero",
			avoid:       []string{"CA", "TX"},
			load:        Load{OriginState: "CA", DestState: "TX"},
			wantPoints:  0,
			wantPenalty: 20,
			wantReasons: 2,
		},
		{
			name:        "same avoided state both ends",
			avoid:       []string{"NY"},
			load:        Load{OriginState: "NY", DestState: "NY"},
			wantPoints:  0,
			wantPenalty: 20,
			wantReasons: 2,
		},
		{
			name:        "lowercase avoid codes still match",
			avoid:       []string{"ca"},
			load:        Load{OriginState: "CA"},
			wantPoints:  5,
			wantPenalty: 10,
			wantReasons: 1,
		},
		{
			name:        "missing load states never penalize",
			avoid:       []string{"CA"},
			load:        Load{},
			wantPoints:  15,
			wantPenalty: 0,
			wantReasons: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := &DriverProfile{AvoidStates: tc.avoid}
			result := c.Evaluate(profile, tc.load)

			if result.Points != tc.wantPoints {
				t.Errorf("points = %d, want %d", result.Points, tc.wantPoints)
			}
			if result.Hits["avoid_penalty"] != tc.wantPenalty {
				t.Errorf("avoid_penalty = %d, want %d", result.Hits["avoid_penalty"], tc.wantPenalty)
			}
			if len(result.Reasons) != tc.wantReasons {
				t.Errorf("reasons = %v, want %d entries", result.Reasons, tc.wantReasons)
			}
		})
	}
}
