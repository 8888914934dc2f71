// Package schema implements the validation pipeline every tool and
// structured-output call depends on: converting a declarative schema of any
// supported dialect into a canonical JSON Schema document, and compiling
// that document into a reusable validator with coercion and default-filling
// rules.
//
// Two dialects are supported:
//
//   - JSON-Schema-shaped maps (map[string]any), normalized structurally
//   - Go structs, reflected into JSON Schema via struct tags
//
// Normalization is idempotent and guarantees every object node carries a
// required array (empty when absent). Dialect constructs with no static
// shape — function or channel values smuggled into the schema — are
// rejected with a ConversionError rather than silently dropped.
//
// Compilation surfaces inconsistent schemas synchronously via CompileError,
// so a bad tool schema is caught at registration rather than mid-run.
package schema
