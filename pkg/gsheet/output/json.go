// Package output serializes gsheet results for the command line.
package output

import (
	"github.com/goccy/go-json"
)

// ToJSON encodes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
