// Package testutil provides test helpers for mcplite (e.g. MockTool).
package testutil

import (
	"context"

	"github.com/skosovsky/mcplite"
)

// MockTool is a configurable tool for tests.
type MockTool struct {
	NameVal   string
	Meta      mcplite.Metadata
	ResultVal any
	ErrVal    error
	CallFn    func(ctx context.Context, args map[string]any) (any, error)
}

// Name returns the tool name.
func (m *MockTool) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "mock"
}

// Handler returns CallFn if set, otherwise a handler returning ResultVal and ErrVal.
func (m *MockTool) Handler() mcplite.Handler {
	if m.CallFn != nil {
		return m.CallFn
	}
	return func(_ context.Context, _ map[string]any) (any, error) {
		return m.ResultVal, m.ErrVal
	}
}
