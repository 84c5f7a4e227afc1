package output

import (
	"encoding/json"
	"io"
)

// section is the JSON structure for one result set.
type section struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Results []any  `json:"results"`
}

// writeJSONSection writes one section per line to w.
func writeJSONSection(w io.Writer, name, label string, docs []any) error {
	if docs == nil {
		docs = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(section{Name: name, Label: label, Results: docs})
}
