package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// NoteRenderer produces a markdown dispatch note from a FitResult, suitable
// for posting to an ops channel or attaching to a load record.
type NoteRenderer struct{}

// DispatchNote holds the data needed to post a dispatch note.
type DispatchNote struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tone  string `json:"tone"`
}

func (r *NoteRenderer) Render(w io.Writer, result *fitscore.FitResult) error {
	note := r.BuildDispatchNote(result)
	_, err := io.WriteString(w, note.Body)
	return err
}

// BuildDispatchNote creates the DispatchNote struct from a FitResult.
func (r *NoteRenderer) BuildDispatchNote(result *fitscore.FitResult) DispatchNote {
	title := fmt.Sprintf("Atlas Fit: %s for %s — %d/100 (%s)",
		result.LoadID, result.DriverID, result.Score, result.Verdict)

	return DispatchNote{
		Title: title,
		Body:  buildMarkdownBody(title, result),
		Tone:  verdictTone(result.Verdict),
	}
}

func verdictTone(verdict fitscore.Verdict) string {
	switch verdict {
	case fitscore.VerdictExcellent, fitscore.VerdictGood:
		return "positive"
	case fitscore.VerdictOK:
		return "neutral"
	default:
		return "negative"
	}
}

func buildMarkdownBody(title string, result *fitscore.FitResult) string {
	var sb strings.Builder

	sb.WriteString("## " + title + "\n\n")

	sb.WriteString("### Breakdown\n\n")
	sb.WriteString("| Category | Points |\n|----------|--------|\n")
	sb.WriteString(fmt.Sprintf("| Compliance | %d |\n", result.Breakdown.Compliance))
	sb.WriteString(fmt.Sprintf("| Equipment | %d |\n", result.Breakdown.Equipment))
	sb.WriteString(fmt.Sprintf("| Region | %d |\n", result.Breakdown.Region))
	sb.WriteString(fmt.Sprintf("| Distance | %d |\n", result.Breakdown.Distance))
	sb.WriteString("\n")

	if len(result.Reasons) > 0 {
		sb.WriteString("### Reasons\n\n")
		for _, reason := range result.Reasons {
			sb.WriteString("- " + reason + "\n")
		}
		sb.WriteString("\n")
	}

	if result.Meta.MatchedEquipment != "" {
		sb.WriteString(fmt.Sprintf("_Matched equipment: %s_\n", result.Meta.MatchedEquipment))
	}
	if len(result.Meta.MatchedRegionTags) > 0 {
		sb.WriteString(fmt.Sprintf("_Lane regions: %s_\n", strings.Join(result.Meta.MatchedRegionTags, ", ")))
	}

	return sb.String()
}
