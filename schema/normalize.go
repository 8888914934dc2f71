package schema

import (
	"reflect"
)

// Subschema positions inside a schema node. Recursion is keyword-aware so
// plain data under enum/const/default is never mistaken for a schema.
var (
	singleSubschemaKeywords = []string{
		"items", "additionalItems", "additionalProperties", "contains",
		"propertyNames", "if", "then", "else", "not", "unevaluatedItems",
		"unevaluatedProperties",
	}
	mapSubschemaKeywords = []string{
		"properties", "patternProperties", "$defs", "definitions",
		"dependentSchemas",
	}
	listSubschemaKeywords = []string{"anyOf", "oneOf", "allOf", "prefixItems"}
)

// Normalize converts a declarative schema into its canonical JSON-Schema
// form. Supported inputs are JSON-Schema-shaped maps and Go structs
// (reflected via struct tags); anything else — including schemas that embed
// function or channel values — fails with a *ConversionError.
//
// Normalization is idempotent: normalizing a canonical schema yields the
// same document. Every object node in the output carries a required array;
// an object with no required fields gets an empty slice. Note that this
// makes "explicitly no required fields" indistinguishable from "required
// not specified" — callers needing that distinction must inspect the input
// before normalizing.
func Normalize(input any) (map[string]any, error) {
	if input == nil {
		return nil, conversionErrorf("nil schema")
	}

	if m, ok := input.(map[string]any); ok {
		if err := checkConvertible(m); err != nil {
			return nil, err
		}
		return normalizeNode(m), nil
	}

	t := reflect.TypeOf(input)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Struct {
		m, err := reflectSchema(input)
		if err != nil {
			return nil, err
		}
		return normalizeNode(m), nil
	}

	return nil, conversionErrorf("unsupported schema dialect %T", input)
}

// checkConvertible walks the raw input rejecting values with no static,
// serializable shape.
func checkConvertible(v any) error {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		for _, item := range val {
			if err := checkConvertible(item); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, item := range val {
			if err := checkConvertible(item); err != nil {
				return err
			}
		}
		return nil
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Func:
		return conversionErrorf("schema contains a function value; code-based refinement has no static shape")
	case reflect.Chan, reflect.UnsafePointer:
		return conversionErrorf("schema contains a non-serializable %s value", reflect.TypeOf(v).Kind())
	default:
		return nil
	}
}

// normalizeNode deep-copies and canonicalizes one schema node. Every nested
// property value is re-normalized even if it looks converted already, which
// is what guarantees idempotence and forces missing required arrays in.
func normalizeNode(node map[string]any) map[string]any {
	out := make(map[string]any, len(node)+2)
	for k, v := range node {
		out[k] = copyValue(v)
	}

	for _, kw := range singleSubschemaKeywords {
		if sub, ok := out[kw].(map[string]any); ok {
			out[kw] = normalizeNode(sub)
		}
	}
	for _, kw := range mapSubschemaKeywords {
		if subs, ok := out[kw].(map[string]any); ok {
			normalized := make(map[string]any, len(subs))
			for name, sub := range subs {
				if m, ok := sub.(map[string]any); ok {
					normalized[name] = normalizeNode(m)
				} else {
					normalized[name] = sub
				}
			}
			out[kw] = normalized
		}
	}
	for _, kw := range listSubschemaKeywords {
		if subs, ok := out[kw].([]any); ok {
			normalized := make([]any, len(subs))
			for i, sub := range subs {
				if m, ok := sub.(map[string]any); ok {
					normalized[i] = normalizeNode(m)
				} else {
					normalized[i] = sub
				}
			}
			out[kw] = normalized
		}
	}

	if isObjectNode(out) {
		out["type"] = "object"
		props, _ := out["properties"].(map[string]any)
		if props == nil {
			props = map[string]any{}
			out["properties"] = props
		}
		out["required"] = normalizeRequired(out["required"], props)
	}

	return out
}

// isObjectNode reports whether a node describes an object, explicitly or by
// carrying object-only keywords.
func isObjectNode(node map[string]any) bool {
	if t, ok := node["type"].(string); ok {
		return t == "object"
	}
	_, hasProps := node["properties"]
	_, hasRequired := node["required"]
	return hasProps || hasRequired
}

// normalizeRequired canonicalizes a required entry: always a []string,
// deduplicated, restricted to declared properties.
func normalizeRequired(raw any, props map[string]any) []string {
	var names []string
	switch v := raw.(type) {
	case []string:
		names = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				names = append(names, s)
			}
		}
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		if _, declared := props[name]; !declared {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = copyValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}
