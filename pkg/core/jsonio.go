package core

import (
	"io"

	"github.com/latebind/latebind/internal/report"
)

// MarshalReport writes the report as indented JSON.
func MarshalReport(w io.Writer, r Report) error {
	return report.WriteJSON(w, r)
}

// UnmarshalReport decodes a report, recomputing its summary.
func UnmarshalReport(r io.Reader) (Report, error) {
	return report.ReadJSON(r)
}
