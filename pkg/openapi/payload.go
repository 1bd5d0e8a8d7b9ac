package openapi

import (
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Violation is one structural problem found in a payload.
type Violation struct {
	// Path is the JSON pointer of the offending value, "/" for the root.
	Path   string `json:"path"`
	Rule   string `json:"rule"`
	Reason string `json:"reason"`
}

// CheckPayload reports every structural violation of payload against schema.
// The payload must hold JSON-compatible values (maps, slices, float64,
// strings, bools, nil).
func CheckPayload(schema *openapi3.Schema, payload map[string]any) []Violation {
	if schema == nil {
		return nil
	}
	err := schema.VisitJSON(payload, openapi3.MultiErrors(), openapi3.VisitAsRequest())
	if err == nil {
		return nil
	}

	var out []Violation
	collect(err, &out)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

func collect(err error, out *[]Violation) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collect(inner, out)
		}
	case *openapi3.SchemaError:
		*out = append(*out, Violation{
			Path:   "/" + strings.Join(e.JSONPointer(), "/"),
			Rule:   e.SchemaField,
			Reason: e.Reason,
		})
	default:
		*out = append(*out, Violation{Path: "/", Reason: err.Error()})
	}
}
