package internal

import "github.com/invopop/jsonschema"

// GenerateSchema reflects the JSON schema of a node parameter struct. Field
// names come from the mapstructure tags the parameters are decoded with.
func GenerateSchema[S any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}

	return reflector.Reflect(new(S))
}
