package mcplite

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/invopop/jsonschema"
	jsonschemav6 "github.com/santhosh-tekuri/jsonschema/v6"
)

// Handler is the callable behind a tool. args holds the "arguments" object of a
// tools/call request keyed by parameter name. Values are passed through as decoded
// JSON without coercion, with numbers as json.Number (see Float and Int). The returned
// value is stringified into the tool result; a non-nil error is reported as a tool error.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Metadata is the caller-supplied part of a tool registration.
type Metadata struct {
	// Title defaults to the tool name.
	Title string
	// Description defaults to "".
	Description string
	// Doc is free text scanned for "name: description" lines when a Param has no
	// explicit Description.
	Doc string
	// Params declares the handler's parameters in order.
	Params []Param
}

// ParameterSpec is one inspected parameter of a tool.
type ParameterSpec struct {
	Name string
	// Schema is the JSON Schema fragment for the parameter, description included.
	Schema      *jsonschema.Schema
	Required    bool
	Description string
}

// JSONType returns the primitive JSON type of the parameter, or "" when untyped.
func (p ParameterSpec) JSONType() string {
	if p.Schema == nil {
		return ""
	}
	return p.Schema.Type
}

// ToolRecord is an immutable registry entry.
type ToolRecord struct {
	Name        string
	Title       string
	Description string
	// Schema is the tool's input schema: type object, ordered properties, ordered required.
	Schema *jsonschema.Schema
	Params []ParameterSpec

	handler   Handler // as registered
	call      Handler // handler wrapped with registry middlewares
	validator *jsonschemav6.Schema
}

// Call invokes the tool handler (with registry middlewares applied).
func (r *ToolRecord) Call(ctx context.Context, args map[string]any) (any, error) {
	return r.call(ctx, args)
}

// MarshalJSON emits the tools/list descriptor of the record.
func (r *ToolRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(toolDescriptor{
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		InputSchema: wireSchema(r.Schema),
	})
}

type toolDescriptor struct {
	Name        string             `json:"name"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// wireSchema returns s with the required list always present on the wire. invopop
// omits an empty Required, so the empty list travels in Extras instead.
func wireSchema(s *jsonschema.Schema) *jsonschema.Schema {
	if s == nil {
		s = BuildSchema(nil)
	}
	if len(s.Required) > 0 {
		return s
	}
	wire := *s
	wire.Extras = make(map[string]any, len(s.Extras)+1)
	maps.Copy(wire.Extras, s.Extras)
	wire.Extras["required"] = []string{}
	return &wire
}
