package mcplite

import (
	"errors"
	"fmt"
)

// Sentinel errors for mcplite. Use errors.Is to check.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrDuplicateTool = errors.New("tool already registered")
	ErrUnnamedTool   = errors.New("tool name is required and cannot be derived from the handler")
	ErrNilHandler    = errors.New("tool handler must not be nil")
	ErrUnnamedParam  = errors.New("parameter name is required")

	// Protocol sentinels match a *ProtocolError carrying the corresponding code.
	ErrInvalidRequest = errors.New("invalid request")
	ErrMethodNotFound = errors.New("method not found")
	ErrInvalidParams  = errors.New("invalid params")
	ErrInternal       = errors.New("internal error")
)

// RegistrationError is returned synchronously by Register. It is meant to abort startup.
type RegistrationError struct {
	Name string
	Err  error
}

func (e *RegistrationError) Error() string {
	if e.Name == "" {
		return "register tool: " + e.Err.Error()
	}
	return fmt.Sprintf("register tool %q: %v", e.Name, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// ProtocolError is a JSON-RPC level failure (malformed envelope, unknown method, invalid
// params). It doubles as the error object of a response envelope and is never returned
// past the Dispatcher.
type ProtocolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// Is reports whether target is the protocol sentinel for e.Code.
func (e *ProtocolError) Is(target error) bool {
	switch target {
	case ErrInvalidRequest:
		return e.Code == CodeInvalidRequest
	case ErrMethodNotFound:
		return e.Code == CodeMethodNotFound
	case ErrInvalidParams:
		return e.Code == CodeInvalidParams
	case ErrInternal:
		return e.Code == CodeInternalError
	}
	return false
}

// ToolError wraps a failure raised by a tool handler (returned error or recovered panic).
// The Dispatcher reports it inside a successful response with isError set.
type ToolError struct {
	Tool string
	Err  error
}

// Error returns the handler's own message; it becomes the text of the error result.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// IsProtocolError returns true if err is or wraps a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsToolError returns true if err is or wraps a ToolError.
func IsToolError(err error) bool {
	var te *ToolError
	return errors.As(err, &te)
}

// panicError wraps a recovered panic value.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
