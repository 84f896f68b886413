package literal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/xeipuuv/gojsonschema"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// documentSchema is the JSON Schema every YAML literal document must satisfy.
const documentSchema = `{
  "type": "object",
  "required": ["lists"],
  "additionalProperties": false,
  "properties": {
    "lists": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "type"],
        "additionalProperties": false,
        "properties": {
          "name":   {"type": "string", "minLength": 1},
          "type":   {"type": "string", "minLength": 1},
          "values": {"type": "array"},
          "select": {"type": "string", "minLength": 1}
        },
        "oneOf": [
          {"required": ["values"]},
          {"required": ["select"]}
        ]
      }
    },
    "data": {}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// parseYAML reads every entry of a YAML literal document.
func parseYAML(filename string, src []byte) ([]definition, error) {
	jsonDoc, err := yaml.YAMLToJSON(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	if err := validateDocument(jsonDoc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	parsed, err := oj.Parse(jsonDoc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	doc, _ := parsed.(map[string]any)
	entries, _ := doc["lists"].([]any)

	defs := make([]definition, 0, len(entries))
	for i, raw := range entries {
		entry, _ := raw.(map[string]any)
		def, err := decodeYAMLEntry(filename, entry, doc["data"])
		if err != nil {
			return nil, fmt.Errorf("%s: lists[%d]: %w", filename, i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func validateDocument(jsonDoc []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(jsonDoc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]error, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, errors.New(re.String()))
	}
	return fmt.Errorf("invalid literal document: %w", errors.Join(errs...))
}

func decodeYAMLEntry(filename string, entry map[string]any, data any) (definition, error) {
	name, _ := entry["name"].(string)
	if err := validateName(name); err != nil {
		return definition{}, err
	}
	typeName, _ := entry["type"].(string)
	desc, err := resolveType(typeName)
	if err != nil {
		return definition{}, fmt.Errorf("list %q: %w", name, err)
	}

	values := entry["values"]
	if sel, ok := entry["select"].(string); ok {
		values, err = selectValues(sel, data)
		if err != nil {
			return definition{}, fmt.Errorf("list %q: %w", name, err)
		}
	}

	raw, err := oj.Marshal(values)
	if err != nil {
		return definition{}, fmt.Errorf("list %q: %w", name, err)
	}
	val, err := ctyjson.Unmarshal(raw, desc.CtyType())
	if err != nil {
		return definition{}, fmt.Errorf("list %q: values do not fit %s: %w", name, desc.Name(), err)
	}

	return definition{name: name, source: filename, desc: desc, values: val}, nil
}

// selectValues evaluates a JSONPath expression against the document's data
// section. Every match becomes one list element.
func selectValues(sel string, data any) ([]any, error) {
	if data == nil {
		return nil, fmt.Errorf("select %q needs a data section", sel)
	}
	expr, err := jp.ParseString(sel)
	if err != nil {
		return nil, fmt.Errorf("invalid select expression %q: %w", sel, err)
	}
	matches := expr.Get(data)
	if matches == nil {
		matches = []any{}
	}
	return matches, nil
}

func isYAML(filename string) bool {
	lower := strings.ToLower(filename)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
