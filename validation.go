package mcplite

import (
	"bytes"
	"encoding/json"

	jsonschemav6 "github.com/santhosh-tekuri/jsonschema/v6"
)

// missingRequired returns the required parameters absent from args, in declaration order.
// Presence is all that is checked: values are not coerced.
func (r *ToolRecord) missingRequired(args map[string]any) []string {
	var missing []string
	for _, name := range r.Schema.Required {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// validateArguments runs the strict-mode schema check. It is a no-op for records
// registered without WithStrictValidation.
func (r *ToolRecord) validateArguments(args map[string]any) error {
	if r.validator == nil {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	inst, err := jsonschemav6.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return r.validator.Validate(inst)
}
