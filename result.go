package mcplite

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// ContentText is the type of a text content block.
const ContentText = "text"

// Content is a single content block of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the MCP tools/call result. A handler may return *ToolResult (or
// ToolResult) to control the content blocks itself.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// TextResult returns a result with one text block.
func TextResult(text string) *ToolResult {
	return &ToolResult{Content: []Content{{Type: ContentText, Text: text}}}
}

// ErrorResult returns a result with one text block and isError set.
func ErrorResult(text string) *ToolResult {
	res := TextResult(text)
	res.IsError = true
	return res
}

// shapeResult wraps a handler return value as a tool result.
func shapeResult(v any) *ToolResult {
	switch r := v.(type) {
	case *ToolResult:
		if r != nil {
			return r
		}
	case ToolResult:
		return &r
	}
	return TextResult(Stringify(v))
}

// Stringify renders a handler return value as text: strings and byte slices as is,
// fmt.Stringer and error through their methods, nil as "null", maps, slices and
// structs as JSON, floats in plain decimal notation and anything else through fmt.Sprint.
// json.Number arguments keep their original digits.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case []byte:
		return string(x)
	case json.RawMessage:
		return string(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "null"
		}
		return Stringify(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}
