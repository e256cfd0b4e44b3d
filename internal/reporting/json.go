package reporting

import (
	"encoding/json"
	"io"

	"github.com/triage-ai/mcplint/internal/engine"
)

// WriteJSON encodes the result as indented JSON, unchanged in shape.
func WriteJSON(w io.Writer, result *engine.ValidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
