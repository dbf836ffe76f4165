package mcplite

import (
	"bytes"
	"encoding/json"
)

// JSONRPCVersion is the only accepted value of the envelope "jsonrpc" field.
const JSONRPCVersion = "2.0"

// ProtocolVersion is reported by initialize.
const ProtocolVersion = "2024-11-05"

// Method names served by the Dispatcher.
const (
	MethodInitialize        = "initialize"
	MethodInitialized       = "notifications/initialized"
	MethodInitializedLegacy = "initialized"
	MethodPing              = "ping"
	MethodToolsList         = "tools/list"
	MethodToolsCall         = "tools/call"
)

// JSON-RPC 2.0 reserved error codes.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a parsed JSON-RPC request envelope.
type Request struct {
	JSONRPC string
	// ID is the raw request id (string, number or null); nil when absent.
	ID     json.RawMessage
	Method string
	Params json.RawMessage
}

// Response is a JSON-RPC response envelope. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ProtocolError  `json:"error,omitempty"`
}

func successResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Result: result}
}

func errorResponse(id json.RawMessage, err *ProtocolError) *Response {
	return &Response{JSONRPC: JSONRPCVersion, ID: id, Error: err}
}

func newProtocolError(code int, text, detail string) *ProtocolError {
	if detail != "" {
		text += ": " + detail
	}
	return &ProtocolError{Code: code, Message: text}
}

func invalidRequest(detail string) *ProtocolError {
	return newProtocolError(CodeInvalidRequest, "Invalid Request", detail)
}

func methodNotFound(method string) *ProtocolError {
	return newProtocolError(CodeMethodNotFound, "Method not found", method)
}

func invalidParams(detail string) *ProtocolError {
	return newProtocolError(CodeInvalidParams, "Invalid params", detail)
}

func internalError(detail string) *ProtocolError {
	return newProtocolError(CodeInternalError, "Internal error", detail)
}

// parseRequest decodes one envelope. On failure the returned request still carries the
// id when it could be recovered, so the error response can echo it.
func parseRequest(body []byte) (*Request, *ProtocolError) {
	req := &Request{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req, invalidRequest("malformed JSON")
	}
	if fields == nil {
		return req, invalidRequest("envelope must be an object")
	}
	if raw, ok := fields["id"]; ok {
		if !validID(raw) {
			return req, invalidRequest("id must be a string, number or null")
		}
		req.ID = bytes.TrimSpace(raw)
	}
	if err := json.Unmarshal(fields["jsonrpc"], &req.JSONRPC); err != nil || req.JSONRPC != JSONRPCVersion {
		return req, invalidRequest(`missing or invalid "jsonrpc" version`)
	}
	if err := json.Unmarshal(fields["method"], &req.Method); err != nil || req.Method == "" {
		return req, invalidRequest(`missing "method"`)
	}
	req.Params = fields["params"]
	return req, nil
}

func validID(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v.(type) {
	case nil, string, float64:
		return true
	default:
		return false
	}
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
