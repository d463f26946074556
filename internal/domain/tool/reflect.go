package tool

import (
	"encoding/json"

	invopop "github.com/invopop/jsonschema"
)

// GenerateSchema reflects a Go struct into the JSON Schema dialect the
// registry compiles. Field names follow the json tags; jsonschema tags add
// enums, bounds and descriptions.
func GenerateSchema(input any) (json.RawMessage, error) {
	reflector := invopop.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(input)
	return json.MarshalIndent(schema, "", "  ")
}
