package transcript

import "github.com/invopop/jsonschema"

// Schema describes the transcript document format.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	return reflector.Reflect(&Document{})
}
