// Package model defines the registration form data shared by the validation
// engine, the summary renderer and the session dispatcher. FormState keeps raw
// string values (the acknowledgement field is a boolean), exactly one error
// slot per field, and the overall Status of the last validation pass. Catalog
// carries the static Program and Gender option lists; program lookups fall
// back to the raw value so render-time lookups never fail.
package model
