package mcplite

import (
	"fmt"
	"reflect"
	"strings"
)

// Param declares one handler parameter. Go function signatures carry no parameter
// names, so tools declare them alongside the handler (see Arg, Untyped, ParamsOf).
type Param struct {
	Name string
	// Type is the parameter's Go type; nil means untyped (any JSON value).
	Type reflect.Type
	// Optional marks a parameter that has a default and may be omitted.
	Optional bool
	// Required forces the parameter into the required list, overriding Optional and
	// a nullable type.
	Required bool
	// Variadic parameters cannot be described as a fixed property and are left out of the schema.
	Variadic    bool
	Description string
}

// ParamOption configures a Param built with Arg or Untyped.
type ParamOption func(*Param)

// Optional marks the parameter as having a default value.
func Optional() ParamOption {
	return func(p *Param) {
		p.Optional = true
	}
}

// Required marks the parameter as required even when its type is nullable.
func Required() ParamOption {
	return func(p *Param) {
		p.Required = true
	}
}

// Variadic marks the parameter as variadic (excluded from the schema).
func Variadic() ParamOption {
	return func(p *Param) {
		p.Variadic = true
	}
}

// Describe sets the parameter description.
func Describe(text string) ParamOption {
	return func(p *Param) {
		p.Description = text
	}
}

// Arg declares a parameter of Go type T.
func Arg[T any](name string, opts ...ParamOption) Param {
	p := Param{Name: name, Type: reflect.TypeFor[T]()}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Untyped declares a parameter without a type annotation; its schema accepts anything.
func Untyped(name string, opts ...ParamOption) Param {
	p := Param{Name: name}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// ParamsOf derives parameters from the fields of argument struct T (or *T), in field order.
// The json tag names the parameter (fields without one use the Go field name, json:"-" and
// unexported fields are skipped). omitempty/omitzero or a pointer type make it optional unless
// the jsonschema tag is "required". The description tag, or any other jsonschema tag text,
// becomes the description. Embedded structs without a json name are flattened.
// A non-struct T yields no parameters.
func ParamsOf[T any]() []Param {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return structParams(t)
}

func structParams(t reflect.Type) []Param {
	var params []Param
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(jsonTag, ",")
		if field.Anonymous && name == "" {
			ft := field.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				params = append(params, structParams(ft)...)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		p := Param{Name: name, Type: field.Type}
		schemaTag := field.Tag.Get("jsonschema")
		switch {
		case schemaTag == "required":
			p.Required = true
		case hasTagOption(opts, "omitempty"), hasTagOption(opts, "omitzero"), field.Type.Kind() == reflect.Pointer:
			p.Optional = true
		}
		p.Description = field.Tag.Get("description")
		if p.Description == "" && schemaTag != "required" {
			p.Description = schemaTag
		}
		params = append(params, p)
	}
	return params
}

func hasTagOption(opts, want string) bool {
	for opt := range strings.SplitSeq(opts, ",") {
		if opt == want {
			return true
		}
	}
	return false
}

// Inspect turns declared parameters into ordered ParameterSpecs. Variadic parameters
// are skipped and duplicate names keep their first declaration. A parameter is required
// when it is marked Required, or is neither Optional nor of a nullable (pointer) type.
// Missing descriptions are looked up in doc by a best-effort line scan (see Metadata.Doc).
// Unnamed parameters are skipped; registration rejects them (see checkParams).
func Inspect(params []Param, doc string) []ParameterSpec {
	specs := make([]ParameterSpec, 0, len(params))
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if p.Variadic || p.Name == "" {
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		mapped, nullable := MapType(p.Type)
		desc := p.Description
		if desc == "" {
			desc = docDescription(doc, p.Name)
		}
		frag := *mapped
		frag.Description = desc
		specs = append(specs, ParameterSpec{
			Name:        p.Name,
			Schema:      &frag,
			Required:    p.Required || (!p.Optional && !nullable),
			Description: desc,
		})
	}
	return specs
}

// checkParams reports the first declared parameter without a name.
func checkParams(params []Param) error {
	for i, p := range params {
		if p.Name == "" {
			return fmt.Errorf("%w: parameter %d", ErrUnnamedParam, i)
		}
	}
	return nil
}

// docParamPrefixes are stripped (case-insensitively) before matching a parameter name.
var docParamPrefixes = []string{":param ", "@param ", "parameter ", "param "}

// docDescription scans doc for a line describing name, in one of the forms
// "name: text", "- name: text", "name (type): text", "param name: text" or
// ":param name: text". It returns "" when no line matches.
func docDescription(doc, name string) string {
	if doc == "" || name == "" {
		return ""
	}
	for line := range strings.SplitSeq(doc, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		lower := strings.ToLower(line)
		for _, prefix := range docParamPrefixes {
			if strings.HasPrefix(lower, prefix) {
				line = strings.TrimSpace(line[len(prefix):])
				break
			}
		}
		rest, ok := strings.CutPrefix(line, name)
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, "(") {
			if end := strings.Index(rest, ")"); end >= 0 {
				rest = strings.TrimSpace(rest[end+1:])
			}
		}
		if desc, ok := strings.CutPrefix(rest, ":"); ok {
			return strings.TrimSpace(desc)
		}
	}
	return ""
}
