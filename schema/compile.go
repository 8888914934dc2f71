package schema

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// CompileOptions controls validator behavior fixed at compile time.
type CompileOptions struct {
	// CoerceTypes enables lossless pre-validation coercion: numeric strings
	// to numbers, "true"/"false" to booleans, single values to one-element
	// arrays where the schema expects an array.
	CoerceTypes bool

	// UseDefaults fills absent object properties from the schema's default
	// values before validation.
	UseDefaults bool

	// StrictFormats makes format annotations assertive (e.g. "email",
	// "date-time") instead of purely documentary.
	StrictFormats bool
}

// Violation describes one constraint breach found during validation.
type Violation struct {
	// Path locates the offending value in the instance as a JSON Pointer;
	// empty for the root.
	Path string

	// Reason is a human-readable description of the breached constraint.
	Reason string
}

// Validator is a reusable compiled validation artifact. It is safe for
// concurrent use and performs no further schema processing per call.
type Validator struct {
	canonical map[string]any
	compiled  *jsonschema.Schema
	opts      CompileOptions
}

// Compile builds a Validator from a canonical schema document, typically the
// output of Normalize. Internally inconsistent schemas fail here with a
// *CompileError; validation calls on the returned Validator never re-check
// the schema itself.
func Compile(canonical map[string]any, optFns ...func(o *CompileOptions)) (*Validator, error) {
	opts := CompileOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if canonical == nil {
		return nil, &CompileError{Reason: "nil schema document"}
	}

	doc, err := json.Marshal(canonical)
	if err != nil {
		return nil, &CompileError{Reason: "schema document not serializable", Err: err}
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = opts.StrictFormats

	if err := compiler.AddResource("schema.json", bytes.NewReader(doc)); err != nil {
		return nil, &CompileError{Reason: "schema document rejected", Err: err}
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, &CompileError{Reason: "schema is internally inconsistent", Err: err}
	}

	return &Validator{canonical: canonical, compiled: compiled, opts: opts}, nil
}

// Validate checks value against the compiled schema. It returns the value in
// plain JSON form — with defaults filled and coercions applied when the
// validator was compiled with those options — together with the list of
// violations. An empty violation list means the returned value conforms.
//
// The input is never mutated; all adjustments happen on a decoded copy.
func (v *Validator) Validate(value any) (any, []Violation) {
	instance, err := toJSONValue(value)
	if err != nil {
		return nil, []Violation{{Path: "", Reason: "value is not representable as JSON: " + err.Error()}}
	}

	if v.opts.UseDefaults || v.opts.CoerceTypes {
		instance = v.adjust(v.canonical, instance)
	}

	if err := v.compiled.Validate(instance); err != nil {
		return instance, flattenViolations(err)
	}
	return instance, nil
}

// toJSONValue round-trips an arbitrary Go value through JSON so the
// validator and the adjustment pass see the same plain representation
// (map[string]any, []any, float64, string, bool, nil).
func toJSONValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// adjust walks schema and instance together applying defaults and coercions.
// It only ever reshapes values it can do so losslessly; anything else is
// left for validation to report.
func (v *Validator) adjust(node map[string]any, instance any) any {
	if node == nil {
		return instance
	}

	if v.opts.CoerceTypes {
		instance = coerce(node, instance)
	}

	switch inst := instance.(type) {
	case map[string]any:
		props, _ := node["properties"].(map[string]any)
		for name, rawSub := range props {
			sub, ok := rawSub.(map[string]any)
			if !ok {
				continue
			}
			child, present := inst[name]
			if !present {
				if v.opts.UseDefaults {
					if def, hasDefault := sub["default"]; hasDefault {
						inst[name] = copyValue(def)
					}
				}
				continue
			}
			inst[name] = v.adjust(sub, child)
		}
		return inst
	case []any:
		items, ok := node["items"].(map[string]any)
		if !ok {
			return inst
		}
		for i, item := range inst {
			inst[i] = v.adjust(items, item)
		}
		return inst
	default:
		return instance
	}
}

// coerce applies the lossless type conversions for one node. Conversions
// that would lose or invent information are never attempted.
func coerce(node map[string]any, instance any) any {
	want, _ := node["type"].(string)

	switch want {
	case "number":
		if s, ok := instance.(string); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
		}
	case "integer":
		if s, ok := instance.(string); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return float64(n)
			}
		}
	case "boolean":
		if s, ok := instance.(string); ok {
			switch s {
			case "true":
				return true
			case "false":
				return false
			}
		}
	case "string":
		switch val := instance.(type) {
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(val)
		}
	case "array":
		if _, ok := instance.([]any); !ok && instance != nil {
			return []any{instance}
		}
	}
	return instance
}

// flattenViolations converts the compiler's error tree into the leaf-level
// violation list callers consume.
func flattenViolations(err error) []Violation {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Violation{{Path: "", Reason: err.Error()}}
	}

	var out []Violation
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Violation{Path: e.InstanceLocation, Reason: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return out
}
