package mcplite

import (
	"encoding/json"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
)

// JSON Schema primitive type names.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
)

var (
	customTypesMu sync.RWMutex
	customTypes   = make(map[reflect.Type]jsonschema.Schema)
)

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// RegisterType maps a custom Go type to a JSON Schema type/format in generated schemas,
// overriding the built-in table. emptyInstance is a value of the type to register
// (e.g. time.Time{}); it must not be nil. jsonType must not be empty; format is optional.
// Pointer parameters (*T) use the same mapping as T.
// Call RegisterType at application startup before the first registration that uses the type.
func RegisterType(emptyInstance any, jsonType, format string) {
	if emptyInstance == nil {
		panic("mcplite: RegisterType emptyInstance must not be nil")
	}
	if jsonType == "" {
		panic("mcplite: RegisterType jsonType must not be empty")
	}
	t := reflect.TypeOf(emptyInstance)
	customTypesMu.Lock()
	defer customTypesMu.Unlock()
	customTypes[t] = jsonschema.Schema{Type: jsonType, Format: format}
}

func lookupCustomType(t reflect.Type) (*jsonschema.Schema, bool) {
	customTypesMu.RLock()
	defer customTypesMu.RUnlock()
	s, ok := customTypes[t]
	if !ok {
		return nil, false
	}
	return &s, true
}

// MapType converts a Go type into a JSON Schema fragment. nullable reports whether
// the type admits an absent value (pointers), in which case the parameter is not
// required. Unknown types, interfaces and a nil type map to the permissive {} fragment;
// MapType never fails.
func MapType(t reflect.Type) (schema *jsonschema.Schema, nullable bool) {
	if t == nil {
		return anySchema(), false
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}
	return mapElem(t), nullable
}

func mapElem(t reflect.Type) *jsonschema.Schema {
	if s, ok := lookupCustomType(t); ok {
		return s
	}
	if t == rawMessageType {
		return anySchema()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &jsonschema.Schema{Type: TypeInteger}
	case reflect.Float32, reflect.Float64:
		return &jsonschema.Schema{Type: TypeNumber}
	case reflect.Bool:
		return &jsonschema.Schema{Type: TypeBoolean}
	case reflect.String:
		return &jsonschema.Schema{Type: TypeString}
	case reflect.Slice, reflect.Array:
		items, _ := MapType(t.Elem())
		return &jsonschema.Schema{Type: TypeArray, Items: items}
	case reflect.Map, reflect.Struct:
		return &jsonschema.Schema{Type: TypeObject}
	default:
		return anySchema()
	}
}

// anySchema returns the permissive {} fragment. Extras must stay non-nil: the encoder
// writes a zero Schema as the boolean schema true.
func anySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Extras: map[string]any{}}
}
