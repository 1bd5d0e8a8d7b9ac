// Package validation implements the registration checks. The validators are
// pure functions over raw field strings; Engine orchestrates them over a
// model.FormState in a fixed order and reports failures as data rather than
// Go errors. Age checks read "today" from an injectable clock so boundary
// cases can be pinned in tests.
package validation
