package surface_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
	"github.com/atlascommand/atlasfit/pkg/surface"
)

func sampleResult() *fitscore.FitResult {
	return &fitscore.FitResult{
		DriverID: "drv-17",
		LoadID:   "LD-1001",
		Score:    92,
		Verdict:  fitscore.VerdictExcellent,
		Reasons: []string{
			"Equipment matches preference (dry van)",
			"Lane runs through preferred region (West Coast)",
		},
		Breakdown: fitscore.Breakdown{
			Equipment:  28,
			Region:     26,
			Distance:   23,
			Compliance: 15,
		},
		Meta: fitscore.Meta{
			MatchedEquipment:  "dry van",
			MatchedRegionTags: []string{"West Coast"},
			Hits:              map[string]int{"avoid_penalty": 0},
		},
	}
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleResult())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()

	// Check header
	if !strings.Contains(output, "92/100") {
		t.Error("expected 92/100 in output")
	}
	if !strings.Contains(output, "excellent") {
		t.Error("expected verdict in output")
	}
	if !strings.Contains(output, "LD-1001") {
		t.Error("expected load ID in output")
	}

	// Check breakdown
	if !strings.Contains(output, "compliance 15") {
		t.Error("expected compliance points in breakdown")
	}
	if !strings.Contains(output, "equipment 28") {
		t.Error("expected equipment points in breakdown")
	}

	// Check reasons
	if !strings.Contains(output, "Equipment matches preference (dry van)") {
		t.Error("expected equipment reason")
	}

	// Check diagnostics
	if !strings.Contains(output, "matched equipment: dry van") {
		t.Error("expected matched equipment diagnostic")
	}
	if !strings.Contains(output, "West Coast") {
		t.Error("expected lane region diagnostic")
	}
}

func TestTerminalRenderer_NoReasons(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	result := &fitscore.FitResult{
		DriverID: "drv-1",
		LoadID:   "LD-1",
		Score:    50,
		Verdict:  fitscore.VerdictPoor,
	}

	err := r.Render(&buf, result)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "No reasons recorded") {
		t.Error("expected 'No reasons recorded' message")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	err := r.Render(&buf, sampleResult())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}

func TestTerminalRenderer_Ranking(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	results := []fitscore.FitResult{
		{DriverID: "drv-1", LoadID: "LD-A", Score: 88, Verdict: fitscore.VerdictExcellent, Reasons: []string{"Equipment matches preference (reefer)"}},
		{DriverID: "drv-1", LoadID: "LD-B", Score: 61, Verdict: fitscore.VerdictOK},
	}

	if err := r.RenderRanking(&buf, "drv-1", results); err != nil {
		t.Fatalf("RenderRanking() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "ranking for drv-1") {
		t.Error("expected ranking header")
	}
	if !strings.Contains(output, "1. LD-A") {
		t.Error("expected first-ranked load")
	}
	if !strings.Contains(output, "2. LD-B") {
		t.Error("expected second-ranked load")
	}
	if !strings.Contains(output, "Equipment matches preference (reefer)") {
		t.Error("expected top reason under first entry")
	}
}

func TestTerminalRenderer_EmptyRanking(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.RenderRanking(&buf, "drv-1", nil); err != nil {
		t.Fatalf("RenderRanking() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No open loads to rank") {
		t.Error("expected empty-ranking message")
	}
}

func TestNoteRenderer(t *testing.T) {
	r := &surface.NoteRenderer{}
	note := r.BuildDispatchNote(sampleResult())

	if !strings.Contains(note.Title, "92/100") {
		t.Errorf("title = %q, expected score", note.Title)
	}
	if note.Tone != "positive" {
		t.Errorf("tone = %q, want positive", note.Tone)
	}
	if !strings.Contains(note.Body, "| Compliance | 15 |") {
		t.Error("expected compliance row in body")
	}
	if !strings.Contains(note.Body, "- Equipment matches preference (dry van)") {
		t.Error("expected reason bullet in body")
	}

	poor := &fitscore.FitResult{Verdict: fitscore.VerdictPoor}
	if tone := r.BuildDispatchNote(poor).Tone; tone != "negative" {
		t.Errorf("poor tone = %q, want negative", tone)
	}
	ok := &fitscore.FitResult{Verdict: fitscore.VerdictOK}
	if tone := r.BuildDispatchNote(ok).Tone; tone != "neutral" {
		t.Errorf("ok tone = %q, want neutral", tone)
	}
}
