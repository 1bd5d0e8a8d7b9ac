// Package submission decodes registration payloads from JSON or YAML files
// and replays them into a session as FieldChanged messages.
package submission
