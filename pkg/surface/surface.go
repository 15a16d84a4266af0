// Package surface defines output rendering for fit results.
// Implementations handle different output targets: terminal, dispatch notes, JSON.
package surface

import (
	"io"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// Renderer produces formatted output from a FitResult.
type Renderer interface {
	// Render writes the formatted fit result to the writer.
	Render(w io.Writer, result *fitscore.FitResult) error
}
