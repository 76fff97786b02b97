package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joseph-ayodele/docanalyzer/internal/core"
)

// WriteJSON writes the record as indented JSON. Tax results keep NOT_FOUND
// fields with a null amount.
func WriteJSON(w io.Writer, res core.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Payload()); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}
