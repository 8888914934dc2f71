// Package memory provides MemoryStore implementations: component-scoped
// key/value state plus append-only searchable records.
package memory
