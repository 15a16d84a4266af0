package fitscore_test

import (
	"strings"
	"testing"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

func TestComputeDriverFit_PerfectLane(t *testing.T) {
	profile := &fitscore.DriverProfile{
		DriverID:           "drv-1",
		PreferredEquipment: []string{"Dry Van"},
		PreferredRegions:   []string{"West Coast"},
	}
	load := fitscore.Load{
		LoadID:        "load-1",
		EquipmentType: "Dry Van",
		OriginState:   "CA",
		DestState:     "CA",
		Miles:         300,
	}

	result := fitscore.ComputeDriverFit(profile, load)

	if result.Breakdown.Equipment != 28 {
		t.Errorf("equipment = %d, want 28", result.Breakdown.Equipment)
	}
	if result.Breakdown.Region != 26 {
		t.Errorf("region = %d, want 26", result.Breakdown.Region)
	}
	if result.Breakdown.Distance != 23 {
		t.Errorf("distance = %d, want 23", result.Breakdown.Distance)
	}
	if result.Breakdown.Compliance != 15 {
		t.Errorf("compliance = %d, want 15", result.Breakdown.Compliance)
	}
	if result.Score != 92 {
		t.Errorf("score = %d, want 92", result.Score)
	}
	if result.Verdict != fitscore.VerdictExcellent {
		t.Errorf("verdict = %q, want excellent", result.Verdict)
	}
	if result.Meta.MatchedEquipment != "dry van" {
		t.Errorf("matched equipment = %q, want %q", result.Meta.MatchedEquipment, "dry van")
	}
	if len(result.Meta.MatchedRegionTags) != 1 || result.Meta.MatchedRegionTags[0] != "West Coast" {
		t.Errorf("matched region tags = %v, want [West Coast]", result.Meta.MatchedRegionTags)
	}
}

func TestComputeDriverFit_AvoidStateAndMismatch(t *testing.T) {
	profile := &fitscore.DriverProfile{
		DriverID:           "drv-2",
		PreferredEquipment: []string{"Reefer"},
		AvoidStates:        []string{"NJ"},
		MaxDistance:        600,
	}
	load := fitscore.Load{
		EquipmentType: "Flatbed",
		OriginState:   "PA",
		DestState:     "NJ",
		Miles:         500,
	}

	result := fitscore.ComputeDriverFit(profile, load)

	if result.Breakdown.Compliance != 5 {
		t.Errorf("compliance = %d, want 5", result.Breakdown.Compliance)
	}
	if result.Breakdown.Equipment != 8 {
		t.Errorf("equipment = %d, want 8", result.Breakdown.Equipment)
	}
	if result.Breakdown.Region != 18 {
		t.Errorf("region = %d, want 18", result.Breakdown.Region)
	}
	if result.Breakdown.Distance != 25 {
		t.Errorf("distance = %d, want 25", result.Breakdown.Distance)
	}
	if result.Score != 56 {
		t.Errorf("score = %d, want 56", result.Score)
	}
	if result.Verdict != fitscore.VerdictOK {
		t.Errorf("verdict = %q, want ok", result.Verdict)
	}
	if result.Meta.Hits["avoid_penalty"] != 10 {
		t.Errorf("avoid_penalty = %d, want 10", result.Meta.Hits["avoid_penalty"])
	}
}

func TestComputeDriverFit_RangeAndSumInvariants(t *testing.T) {
	profiles := []*fitscore.DriverProfile{
		{},
		{PreferredEquipment: []string{"Reefer"}, PreferredRegions: []string{"South"}},
		{AvoidStates: []string{"CA", "TX"}, MaxDistance: 100},
		{HomeBase: "Fresno, CA", PreferredRegions: []string{"West Coast", "West"}, MaxDistance: 2500},
		{PreferredEquipment: []string{"Power Only", "step deck"}, AvoidStates: []string{"NY", "NJ", "CT"}},
	}
	loads := []fitscore.Load{
		{},
		{OriginState: "CA", DestState: "TX", EquipmentType: "Reefer", Miles: 1500},
		{OriginState: "NJ", DestState: "NY", EquipmentType: "Conestoga", Miles: 80},
		{OriginState: "ZZ", DestState: "", EquipmentType: "53' Dry Van", Miles: 450},
		{OriginState: "CA", DestState: "CA", Miles: 90},
	}

	for _, profile := range profiles {
		for _, load := range loads {
			result := fitscore.ComputeDriverFit(profile, load)

			if result.Score < 0 || result.Score > 100 {
				t.Errorf("score %d out of range for profile %+v load %+v", result.Score, profile, load)
			}
			b := result.Breakdown
			if b.Equipment < 0 || b.Equipment > 30 {
				t.Errorf("equipment %d out of range", b.Equipment)
			}
			if b.Region < 0 || b.Region > 30 {
				t.Errorf("region %d out of range", b.Region)
			}
			if b.Distance < 0 || b.Distance > 25 {
				t.Errorf("distance %d out of range", b.Distance)
			}
			if b.Compliance < 0 || b.Compliance > 15 {
				t.Errorf("compliance %d out of range", b.Compliance)
			}
			if sum := b.Equipment + b.Region + b.Distance + b.Compliance; result.Score != sum {
				t.Errorf("score %d != breakdown sum %d", result.Score, sum)
			}
		}
	}
}

func TestVerdictFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  fitscore.Verdict
	}{
		{100, fitscore.VerdictExcellent},
		{85, fitscore.VerdictExcellent},
		{84, fitscore.VerdictGood},
		{70, fitscore.VerdictGood},
		{69, fitscore.VerdictOK},
		{55, fitscore.VerdictOK},
		{54, fitscore.VerdictPoor},
		{0, fitscore.VerdictPoor},
	}

	for _, tc := range tests {
		if got := fitscore.VerdictFromScore(tc.score); got != tc.want {
			t.Errorf("VerdictFromScore(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestFitLoadForDriver_UnusableProfile(t *testing.T) {
	load := fitscore.Load{
		LoadID:        "load-9",
		OriginState:   "CA",
		EquipmentType: "Dry Van",
		Miles:         300,
	}

	tests := []struct {
		name    string
		profile *fitscore.DriverProfile
	}{
		{name: "nil profile", profile: nil},
		{name: "access denied", profile: &fitscore.DriverProfile{DriverID: "drv-3", Error: "access_denied"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := fitscore.FitLoadForDriver(tc.profile, load)

			if result.Score != 0 {
				t.Errorf("score = %d, want 0", result.Score)
			}
			if result.Verdict != fitscore.VerdictPoor {
				t.Errorf("verdict = %q, want poor", result.Verdict)
			}
			if result.Breakdown != (fitscore.Breakdown{}) {
				t.Errorf("breakdown = %+v, want zeros", result.Breakdown)
			}
			if len(result.Reasons) == 0 {
				t.Error("expected a diagnostic reason")
			}
		})
	}
}

func TestFitLoadForDriver_UsableProfileDelegates(t *testing.T) {
	profile := &fitscore.DriverProfile{PreferredEquipment: []string{"Dry Van"}}
	load := fitscore.Load{EquipmentType: "Dry Van", Miles: 300}

	got := fitscore.FitLoadForDriver(profile, load)
	want := fitscore.ComputeDriverFit(profile, load)

	if got.Score != want.Score || got.Verdict != want.Verdict {
		t.Errorf("wrapper result (%d, %s) differs from direct result (%d, %s)",
			got.Score, got.Verdict, want.Score, want.Verdict)
	}
}

func TestComputeDriverFit_ReasonOrder(t *testing.T) {
	profile := &fitscore.DriverProfile{
		PreferredEquipment: []string{"Reefer"},
		PreferredRegions:   []string{"Midwest"},
		AvoidStates:        []string{"IL"},
		MaxDistance:        500,
	}
	load := fitscore.Load{
		OriginState:   "IL",
		DestState:     "OH",
		EquipmentType: "Reefer",
		Miles:         320,
	}

	result := fitscore.ComputeDriverFit(profile, load)

	if len(result.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %d: %v", len(result.Reasons), result.Reasons)
	}
	checks := []string{"avoided state", "Equipment", "region", "comfort range"}
	for i, fragment := range checks {
		if !strings.Contains(result.Reasons[i], fragment) {
			t.Errorf("reason[%d] = %q, want fragment %q", i, result.Reasons[i], fragment)
		}
	}
}
