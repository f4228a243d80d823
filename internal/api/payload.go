package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/amterp/sprintboard/internal/board"
	kanerr "github.com/amterp/sprintboard/internal/errors"
)

//go:embed schemas/drag_end.schema.json
var dragEndSchemaJSON []byte

const dragEndSchemaURL = "https://github.com/amterp/sprintboard/schemas/drag_end.schema.json"

var dragEndSchema = mustCompileSchema(dragEndSchemaURL, dragEndSchemaJSON)

func mustCompileSchema(url string, data []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("add schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// decodeDragEnd validates a raw drag-end payload against the schema and
// narrows it into a Gesture. Anything the schema rejects is a ValidationError.
func decodeDragEnd(data []byte) (board.Gesture, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, kanerr.InvalidField("gesture", "invalid JSON body")
	}
	return narrowDragEnd(raw)
}

func narrowDragEnd(raw any) (board.Gesture, error) {
	if err := dragEndSchema.Validate(raw); err != nil {
		return nil, kanerr.InvalidField("gesture", err.Error())
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, kanerr.InvalidField("gesture", "must be an object")
	}
	return board.ParseDragEnd(payload)
}
