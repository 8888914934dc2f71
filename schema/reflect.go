package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// reflectSchema derives a JSON-Schema-shaped map from a Go struct using its
// json and jsonschema struct tags. The document is inlined (no $ref
// indirection) so downstream normalization sees one self-contained tree.
func reflectSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}

	s := reflector.Reflect(v)
	if s == nil {
		return nil, conversionErrorf("cannot reflect schema from %T", v)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, conversionErrorf("cannot serialize reflected schema for %T: %v", v, err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, conversionErrorf("cannot decode reflected schema for %T: %v", v, err)
	}

	delete(m, "$schema")
	delete(m, "$id")
	return m, nil
}
