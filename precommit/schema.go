package precommit

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

//go:generate go run ../tools/schema-generator/

// GenerateSchema generates the JSON Schema for the hook configuration
// file. It reflects the Config struct from types.go; the result is
// embedded by the schema package and kept current by go generate.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// The YAML decoder is already strict, keep the schema strict too.
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Hook Configuration"
	schema.Description = "Schema for .pre-commit-config.yaml hook declarations."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
