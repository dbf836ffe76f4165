package mcplite

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
)

// Validatable is implemented by argument structs with checks the schema cannot express
// (e.g. Low <= High). Typed calls Validate after decoding.
type Validatable interface {
	Validate() error
}

// Typed adapts a typed function into a Handler. The arguments object is decoded into T
// with encoding/json, then checked with Validatable when T (or *T) implements it. A
// decoding or validation failure (e.g. a string where T has an int) is returned as the
// handler's error and therefore reported as a tool error.
func Typed[T any, R any](fn func(ctx context.Context, args T) (R, error)) Handler {
	return func(ctx context.Context, args map[string]any) (any, error) {
		var in T
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := validateCustom(&in); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		out, err := fn(ctx, in)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// RegisterFunc registers a typed function. When meta.Params is nil the parameters are
// derived from T with ParamsOf; an empty name is derived from fn's declared name.
//
//	type AddArgs struct {
//	    X int `json:"x" description:"first addend"`
//	    Y int `json:"y" description:"second addend"`
//	}
//	func add(_ context.Context, a AddArgs) (int, error) { return a.X + a.Y, nil }
//
//	err := mcplite.RegisterFunc(reg, "", add, mcplite.Metadata{Description: "Add two numbers"})
func RegisterFunc[T any, R any](r *Registry, name string, fn func(ctx context.Context, args T) (R, error), meta Metadata) error {
	if fn == nil {
		return &RegistrationError{Name: name, Err: ErrNilHandler}
	}
	if name == "" {
		name = funcName(fn)
		if name == "" {
			return &RegistrationError{Err: ErrUnnamedTool}
		}
	}
	if meta.Params == nil {
		meta.Params = ParamsOf[T]()
	}
	return r.Register(name, Typed(fn), meta)
}

func decodeArgs(args map[string]any, target any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// validateCustom runs Validatable on *in, or on the value when only T implements it.
func validateCustom[T any](in *T) error {
	if v, ok := any(*in).(Validatable); ok {
		if reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil() {
			return nil
		}
		return v.Validate()
	}
	if v, ok := any(in).(Validatable); ok {
		return v.Validate()
	}
	return nil
}
