package expected

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/dmitriyb/cinnamon/schemas/expected-results-v0.json"

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document for the
// expected results file: an object whose values are Records.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.Anonymous = true

	rec := r.Reflect(&Record{})
	rec.Version = ""
	rec.ID = ""
	rec.AdditionalProperties = jsonschema.FalseSchema

	s := &jsonschema.Schema{
		Version:              jsonschema.Version,
		ID:                   schemaID,
		Title:                "Expected results v0",
		Description:          "Maps test identifiers to the users expected to pass or fail them",
		Type:                 "object",
		AdditionalProperties: rec,
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
