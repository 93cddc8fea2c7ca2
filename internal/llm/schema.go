package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

var reflector = jsonschema.Reflector{
	RequiredFromJSONSchemaTags: true,
	ExpandedStruct:             true,
	AllowAdditionalProperties:  true,
	DoNotReference:             true,
}

// Schema reflects the JSON schema of v's type.
func Schema(v any) *jsonschema.Schema {
	return reflector.Reflect(v)
}

// SchemaJSON renders the schema of v for inclusion in a prompt.
func SchemaJSON(v any) (string, error) {
	b, err := json.MarshalIndent(Schema(v), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(b), nil
}

// RequiredFields lists the top-level properties marked as required on v.
func RequiredFields(v any) []string {
	return Schema(v).Required
}
