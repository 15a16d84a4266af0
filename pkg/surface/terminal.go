package surface

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// TerminalRenderer renders FitResult as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func verdictColor(verdict fitscore.Verdict) string {
	if noColor() {
		return ""
	}
	switch verdict {
	case fitscore.VerdictExcellent, fitscore.VerdictGood:
		return colorGreen
	case fitscore.VerdictOK:
		return colorYellow
	case fitscore.VerdictPoor:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *fitscore.FitResult) error {
	vc := verdictColor(result.Verdict)

	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Atlas Fit: %s for %s — %d/100 (%s)",
			result.LoadID, result.DriverID, result.Score,
			colored(string(result.Verdict), vc))))

	// Breakdown
	fmt.Fprintf(w, "Breakdown: compliance %d / equipment %d / region %d / distance %d\n\n",
		result.Breakdown.Compliance, result.Breakdown.Equipment,
		result.Breakdown.Region, result.Breakdown.Distance)

	// Reasons
	if len(result.Reasons) > 0 {
		fmt.Fprintln(w, "Reasons:")
		for _, reason := range result.Reasons {
			fmt.Fprintf(w, "  • %s\n", reason)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No reasons recorded.")
		fmt.Fprintln(w)
	}

	// Match diagnostics
	if result.Meta.MatchedEquipment != "" {
		fmt.Fprintf(w, "  %s\n", dim("matched equipment: "+result.Meta.MatchedEquipment))
	}
	if len(result.Meta.MatchedRegionTags) > 0 {
		fmt.Fprintf(w, "  %s\n", dim("lane regions: "+strings.Join(result.Meta.MatchedRegionTags, ", ")))
	}
	if len(result.Meta.Hits) > 0 {
		keys := make([]string, 0, len(result.Meta.Hits))
		for k := range result.Meta.Hits {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("%s: %d", k, result.Meta.Hits[k])))
		}
	}

	return nil
}

// RenderRanking writes a ranked list of fit results for one driver, best
// first. Results are assumed already sorted.
func (r *TerminalRenderer) RenderRanking(w io.Writer, driverID string, results []fitscore.FitResult) error {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Atlas Fit ranking for %s (%d loads)", driverID, len(results))))

	if len(results) == 0 {
		fmt.Fprintln(w, "No open loads to rank.")
		return nil
	}

	for i, result := range results {
		vc := verdictColor(result.Verdict)
		fmt.Fprintf(w, "  %2d. %s — %3d/100 (%s)\n",
			i+1, bold(result.LoadID), result.Score, colored(string(result.Verdict), vc))
		if len(result.Reasons) > 0 {
			fmt.Fprintf(w, "      %s\n", dim(result.Reasons[0]))
		}
	}
	fmt.Fprintln(w)
	return nil
}
