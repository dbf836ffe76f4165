package mcplite

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationError(t *testing.T) {
	tests := []struct {
		name   string
		err    *RegistrationError
		expect string
	}{
		{"named", &RegistrationError{Name: "add", Err: ErrDuplicateTool}, `register tool "add": tool already registered`},
		{"unnamed", &RegistrationError{Err: ErrUnnamedTool}, "register tool: tool name is required and cannot be derived from the handler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.err.Error())
			assert.ErrorIs(t, tt.err, tt.err.Err)
		})
	}
}

func TestProtocolError(t *testing.T) {
	err := invalidParams("missing tool name")
	assert.Equal(t, CodeInvalidParams, err.Code)
	assert.Equal(t, "Invalid params: missing tool name", err.Message)
	assert.Equal(t, "jsonrpc error -32602: Invalid params: missing tool name", err.Error())
	assert.True(t, IsProtocolError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsProtocolError(errors.New("plain")))

	assert.Equal(t, "Method not found", newProtocolError(CodeMethodNotFound, "Method not found", "").Message)
}

func TestProtocolError_Is(t *testing.T) {
	tests := []struct {
		err    *ProtocolError
		target error
	}{
		{invalidRequest("x"), ErrInvalidRequest},
		{methodNotFound("x"), ErrMethodNotFound},
		{invalidParams("x"), ErrInvalidParams},
		{internalError("x"), ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.target.Error(), func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.target)
			for _, other := range []error{ErrInvalidRequest, ErrMethodNotFound, ErrInvalidParams, ErrInternal} {
				if other != tt.target {
					assert.NotErrorIs(t, tt.err, other)
				}
			}
		})
	}
}

func TestToolError(t *testing.T) {
	inner := errors.New("division by zero")
	err := &ToolError{Tool: "divide", Err: inner}
	assert.Equal(t, "division by zero", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, IsToolError(fmt.Errorf("call: %w", err)))
	assert.False(t, IsToolError(inner))

	var te *ToolError
	require.ErrorAs(t, fmt.Errorf("call: %w", err), &te)
	assert.Equal(t, "divide", te.Tool)
}

func TestPanicError(t *testing.T) {
	assert.Equal(t, "panic: kaboom", (&panicError{p: "kaboom"}).Error())
	assert.Equal(t, "panic: 42", (&panicError{p: 42}).Error())
}
