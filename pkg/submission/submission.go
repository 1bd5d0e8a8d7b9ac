package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/session"
)

// ErrNotObject is returned when a payload does not decode to a mapping.
var ErrNotObject = errors.New("submission: payload must be an object")

var wrapperKeys = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
	"form":       {},
}

// Submission is a decoded registration payload.
type Submission struct {
	// Values holds the raw field values keyed by form slot.
	Values map[model.FieldKey]string
	// Payload is the JSON-compatible object the values were read from, after
	// wrapper keys are removed. Keys are as written in the file.
	Payload map[string]any
	// Unknown lists keys that did not resolve to a form field, sorted.
	Unknown []string
}

// LoadFile decodes a JSON or YAML payload from disk.
func LoadFile(path string) (Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Submission{}, fmt.Errorf("submission: read %s: %w", path, err)
	}
	return Decode(data, path)
}

// LoadFS decodes a JSON or YAML payload from fsys.
func LoadFS(fsys fs.FS, path string) (Submission, error) {
	if fsys == nil {
		return Submission{}, errors.New("submission: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Submission{}, fmt.Errorf("submission: read %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses JSON, falling back to YAML. A single wrapper key such as
// "data" or "form" around the fields is unwrapped.
func Decode(data []byte, source string) (Submission, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Submission{}, fmt.Errorf("submission: file %s is empty", source)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		var doc yaml.Node
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return Submission{}, fmt.Errorf("submission: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
		value, err := nodeValue(&doc)
		if err != nil {
			return Submission{}, fmt.Errorf("submission: parse %s: %w", source, err)
		}
		raw = value
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return Submission{}, fmt.Errorf("%w (%s)", ErrNotObject, source)
	}
	obj = unwrap(obj)

	sub := Submission{
		Values:  make(map[model.FieldKey]string, len(obj)),
		Payload: obj,
	}
	for key, value := range obj {
		field, ok := render.ResolveFieldKey(key)
		if !ok {
			sub.Unknown = append(sub.Unknown, key)
			continue
		}
		sub.Values[field] = stringify(value)
	}
	sort.Strings(sub.Unknown)
	return sub, nil
}

// Apply dispatches a FieldChanged for every decoded value in form order.
func (s Submission) Apply(target *session.Session) error {
	if target == nil {
		return errors.New("submission: session is nil")
	}
	for _, key := range model.Fields {
		value, ok := s.Values[key]
		if !ok {
			continue
		}
		if _, err := target.Dispatch(session.FieldChanged{Key: key, Value: value}); err != nil {
			return fmt.Errorf("submission: apply %s: %w", key, err)
		}
	}
	return nil
}

// Canonical returns the values the session sees, keyed by canonical field
// name: text fields trimmed (passwords excepted) and physics as a boolean.
// Schema checks run against this shape so they agree with the engine.
func (s Submission) Canonical() map[string]any {
	out := make(map[string]any, len(s.Values))
	for key, value := range s.Values {
		switch key {
		case model.FieldPhysics:
			out[string(key)] = model.ParseAcknowledgement(value)
		case model.FieldPassword, model.FieldConfirmPassword:
			out[string(key)] = value
		default:
			out[string(key)] = strings.TrimSpace(value)
		}
	}
	return out
}

func unwrap(obj map[string]any) map[string]any {
	for len(obj) == 1 {
		var (
			key   string
			inner any
		)
		for k, v := range obj {
			key, inner = k, v
		}
		if _, ok := wrapperKeys[strings.ToLower(key)]; !ok {
			return obj
		}
		nested, ok := inner.(map[string]any)
		if !ok {
			return obj
		}
		obj = nested
	}
	return obj
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// nodeValue converts a YAML node tree into the shapes encoding/json produces.
// Timestamps and other non-JSON scalars keep their literal text so a date is
// never reformatted.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return nodeValue(node.Content[0])
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			value, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = value
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case yaml.ScalarNode:
		return scalarValue(node)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", node.Line)
	}
}

func scalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case "!!int", "!!float":
		var v float64
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return node.Value, nil
	}
}
