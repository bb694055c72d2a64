// Package command is the boundary between raw webhook notifications and the
// lifecycle coordinator. It turns untrusted JSON payloads into validated,
// typed commands.
//
// Validation happens in two passes. Structural validation unifies the
// payload with an embedded CUE schema (event discriminator, required
// fields, field types); anything the schema rejects is a validation error
// carrying CUE's field-level diagnostics. Semantic validation then parses
// the individual fields: ids must be UUIDs, instants must be RFC 3339,
// sequence numbers non-negative, language tags well-formed BCP 47.
//
// The coordinator never sees a command that failed either pass.
package command
