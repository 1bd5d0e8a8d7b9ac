// Package session wires FormState, the validation engine and the summary
// renderer behind a single-threaded message dispatcher.
//
// Three messages drive a session: FieldChanged edits one value and clears its
// error slot, SubmitRequested runs a validation pass and snapshots the
// confirmation summary on success, and ResetRequested restores the pristine
// form. Dispatch handles each message to completion; calling Dispatch again
// from inside an Observer returns ErrReentrantDispatch.
package session
