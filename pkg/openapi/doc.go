// Package openapi exports the registration payload as an OpenAPI 3 document
// and checks submitted payloads against it with kin-openapi.
//
// The schema is structural: it pins required keys, types, the email pattern
// and the minimum password length. Age limits and the password character
// rules stay with the validation engine, which remains the source of the
// user-facing messages.
package openapi
