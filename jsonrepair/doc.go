// Package jsonrepair recovers structured values from text blobs that are
// almost-but-not-quite valid JSON, the typical shape of model output around
// a tool call. Recovery is strictly best effort: strict parsing first, then
// optional delimiter-pair extraction, then a syntax-repair pass. When
// nothing can be extracted the result is nil, never an error — callers must
// treat nil as "could not extract", not as an exceptional condition.
package jsonrepair
