package devtools

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"

	"mapassist/pkg/game/mapdata"
	"mapassist/pkg/game/settings"
)

// Schema names accepted by BuildSchema.
const (
	SchemaLevel    = "level"
	SchemaSettings = "settings"
)

// BuildSchema reflects the JSON Schema for one of the input formats.
func BuildSchema(name string) (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}
	switch name {
	case SchemaLevel:
		schema := reflector.Reflect(new(mapdata.Document))
		schema.Title = "Map Assist Level"
		schema.Description = "Level document served by the map server, one per area"
		return schema, nil
	case SchemaSettings:
		schema := reflector.Reflect(new(settings.File))
		schema.Title = "Map Assist Settings"
		schema.Description = "Minimap render settings; every field overrides a default"
		return schema, nil
	default:
		return nil, fmt.Errorf("unknown schema %q (want %s or %s)", name, SchemaLevel, SchemaSettings)
	}
}

// WriteSchema writes the named schema as indented JSON.
func WriteSchema(w io.Writer, name string) error {
	schema, err := BuildSchema(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
