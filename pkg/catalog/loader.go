package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrNoPrograms is returned when a catalog file lists no programs.
	ErrNoPrograms = errors.New("catalog: no programs defined")
	// ErrNoGenders is returned when a catalog file lists no gender options.
	ErrNoGenders = errors.New("catalog: no gender options defined")
)

// Default returns the built-in catalog.
func Default() model.Catalog {
	c, err := Parse(defaultCatalog, "catalog.yaml")
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// LoadFile reads a JSON or YAML catalog from disk.
func LoadFile(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads a JSON or YAML catalog from fsys.
func LoadFS(fsys fs.FS, path string) (model.Catalog, error) {
	if fsys == nil {
		return model.Catalog{}, errors.New("catalog: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return model.Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes JSON or YAML and normalises the result. Labels default to the
// program value; duplicate program values are kept in order so the first
// entry wins on lookup.
func Parse(data []byte, source string) (model.Catalog, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return model.Catalog{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	var raw model.Catalog
	if err := json.Unmarshal(data, &raw); err != nil {
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return model.Catalog{}, fmt.Errorf("catalog: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	return normalise(raw, source)
}

func normalise(raw model.Catalog, source string) (model.Catalog, error) {
	out := model.Catalog{
		Programs: make([]model.Program, 0, len(raw.Programs)),
		Genders:  make([]string, 0, len(raw.Genders)),
	}

	for i, program := range raw.Programs {
		value := strings.TrimSpace(program.Value)
		if value == "" {
			return model.Catalog{}, fmt.Errorf("catalog: %s: program %d has an empty value", source, i)
		}
		label := strings.TrimSpace(program.Label)
		if label == "" {
			label = value
		}
		out.Programs = append(out.Programs, model.Program{Value: value, Label: label})
	}
	for i, gender := range raw.Genders {
		trimmed := strings.TrimSpace(gender)
		if trimmed == "" {
			return model.Catalog{}, fmt.Errorf("catalog: %s: gender option %d is empty", source, i)
		}
		out.Genders = append(out.Genders, trimmed)
	}

	if len(out.Programs) == 0 {
		return model.Catalog{}, fmt.Errorf("%w (%s)", ErrNoPrograms, source)
	}
	if len(out.Genders) == 0 {
		return model.Catalog{}, fmt.Errorf("%w (%s)", ErrNoGenders, source)
	}
	return out, nil
}

// ProgramLabels returns the program labels in catalog order, for select prompts.
func ProgramLabels(c model.Catalog) []string {
	out := make([]string, 0, len(c.Programs))
	for _, program := range c.Programs {
		out = append(out, program.Label)
	}
	return out
}

// ProgramValue maps a label chosen from ProgramLabels back to its value.
func ProgramValue(c model.Catalog, label string) (string, bool) {
	for _, program := range c.Programs {
		if program.Label == label {
			return program.Value, true
		}
	}
	return "", false
}
