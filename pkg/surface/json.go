package surface

import (
	"encoding/json"
	"io"

	"github.com/atlascommand/atlasfit/pkg/fitscore"
)

// JSONRenderer marshals FitResult to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *fitscore.FitResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
