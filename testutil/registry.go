package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/skosovsky/mcplite"
)

// NewTestRegistry returns a Registry with the given mock tools registered and logging
// discarded. It panics if a tool cannot be registered.
func NewTestRegistry(tools ...*MockTool) *mcplite.Registry {
	reg := mcplite.NewRegistry(mcplite.WithRegistryLogger(slog.New(slog.DiscardHandler)))
	for _, t := range tools {
		reg.MustRegister(t.Name(), t.Handler(), t.Meta)
	}
	return reg
}

// NewTestDispatcher returns a quiet Dispatcher over NewTestRegistry(tools...).
func NewTestDispatcher(tools ...*MockTool) *mcplite.Dispatcher {
	return mcplite.NewDispatcher(NewTestRegistry(tools...), mcplite.WithLogger(slog.New(slog.DiscardHandler)))
}

// Request encodes a JSON-RPC request envelope with a numeric id.
func Request(id int, method string, params any) []byte {
	env := map[string]any{"jsonrpc": mcplite.JSONRPCVersion, "id": id, "method": method}
	if params != nil {
		env["params"] = params
	}
	b, err := json.Marshal(env)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode request: %v", err))
	}
	return b
}

// Call runs a tools/call request through d and returns the response.
func Call(ctx context.Context, d *mcplite.Dispatcher, name string, args map[string]any) *mcplite.Response {
	return d.Handle(ctx, Request(1, mcplite.MethodToolsCall, map[string]any{"name": name, "arguments": args}))
}

// List runs a tools/list request through d and returns the response.
func List(ctx context.Context, d *mcplite.Dispatcher) *mcplite.Response {
	return d.Handle(ctx, Request(1, mcplite.MethodToolsList, nil))
}
