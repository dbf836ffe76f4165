package mcplite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/invopop/jsonschema"
	jsonschemav6 "github.com/santhosh-tekuri/jsonschema/v6"
)

// BuildSchema assembles a tool input schema from inspected parameters. properties keep
// declaration order on the wire and required lists the required names in the same order.
// It is a pure function of specs.
func BuildSchema(specs []ParameterSpec) *jsonschema.Schema {
	props := jsonschema.NewProperties()
	required := make([]string, 0, len(specs))
	for _, s := range specs {
		frag := s.Schema
		if frag == nil {
			frag = anySchema()
			frag.Description = s.Description
		}
		props.Set(s.Name, frag)
		if s.Required {
			required = append(required, s.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       TypeObject,
		Properties: props,
		Required:   required,
	}
}

// newToolRecord builds the record for a registration. strict compiles the schema into
// an argument validator.
func newToolRecord(name string, h Handler, meta Metadata, strict bool) (*ToolRecord, error) {
	if err := checkParams(meta.Params); err != nil {
		return nil, err
	}
	specs := Inspect(meta.Params, meta.Doc)
	title := meta.Title
	if title == "" {
		title = name
	}
	rec := &ToolRecord{
		Name:        name,
		Title:       title,
		Description: meta.Description,
		Schema:      BuildSchema(specs),
		Params:      specs,
		handler:     h,
		call:        h,
	}
	if strict {
		v, err := compileSchema(name, rec.Schema)
		if err != nil {
			return nil, fmt.Errorf("compile input schema: %w", err)
		}
		rec.validator = v
	}
	return rec, nil
}

// compileSchema compiles an input schema for strict argument validation.
func compileSchema(name string, s *jsonschema.Schema) (*jsonschemav6.Schema, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschemav6.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	loc := "https://mcplite.invalid/tools/" + url.PathEscape(name) + ".json"
	c := jsonschemav6.NewCompiler()
	if err := c.AddResource(loc, doc); err != nil {
		return nil, err
	}
	return c.Compile(loc)
}
