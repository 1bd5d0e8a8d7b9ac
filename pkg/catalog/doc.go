// Package catalog loads the static Program and Gender option lists from JSON
// or YAML. A default catalog is embedded.
package catalog
