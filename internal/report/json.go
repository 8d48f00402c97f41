package report

import (
	"encoding/json"
	"io"

	"github.com/latebind/latebind/internal/types"
)

// WriteJSON writes the report as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// ReadJSON decodes a report previously written by WriteJSON. The summary is
// recomputed from the findings.
func ReadJSON(rd io.Reader) (types.Report, error) {
	var r types.Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return types.Report{}, err
	}
	return types.NewReport(r.FilesScanned, r.Findings), nil
}
