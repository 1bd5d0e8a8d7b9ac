package render

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrorMapping splits validation errors into field-level and form-level
// messages. Field keys use the form's field identifiers.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrors groups a validation pass's errors by field. Entries naming an
// unknown field are kept as form-level messages so they are not lost.
func MapErrors(errs []model.ValidationError) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	for _, entry := range errs {
		message := strings.TrimSpace(entry.Message)
		if message == "" {
			continue
		}
		if !entry.Field.Valid() {
			mapping.Form = append(mapping.Form, message)
			continue
		}
		key := string(entry.Field)
		mapping.Fields[key] = normalizeMessages(append(mapping.Fields[key], message))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ResolveFieldKey maps loosely formatted identifiers (JSON pointers, dotted
// paths with request wrappers, differing case) onto a form field.
func ResolveFieldKey(raw string) (model.FieldKey, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) != 1 {
		return "", false
	}
	return model.ParseFieldKey(segments[0])
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimPrefix(clean, "#")
		clean = strings.TrimPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, ".")
		clean = strings.TrimPrefix(clean, "$")
	}
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
		"form":       {},
	}

	out := segments
	for len(out) > 1 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
