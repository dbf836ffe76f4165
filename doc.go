// Package mcplite exposes ordinary Go functions as Model Context Protocol (MCP) tools.
//
// # Overview
//
// A host registers handlers once at startup; each registration derives a JSON Schema
// for the handler's parameters from declared parameter descriptors (or from an
// argument struct), so no schema is written by hand. A Dispatcher then serves
// JSON-RPC 2.0 envelopes: it routes tools/list and tools/call, checks required
// arguments, invokes the handler and shapes an MCP tool result.
//
// Pipeline: Param list (or ParamsOf[T]) → Inspect (Type Mapper + doc scan) →
// BuildSchema → Registry → Dispatcher.Handle (parse, route, validate, call, shape).
//
// # Key concepts
//
//   - Protocol errors (malformed envelope, unknown method, invalid params) become
//     JSON-RPC error objects and never escape the Dispatcher.
//   - Tool errors (handler returned an error or panicked) become successful
//     responses whose result carries isError: true.
//   - Registration errors (duplicate or unnamed tool) are returned synchronously
//     and are expected to abort startup.
//
// The Registry is meant to be filled before serving starts. It is guarded by a
// read-write lock, so registering while requests are in flight is also safe.
//
// # Example
//
//	func add(_ context.Context, args map[string]any) (any, error) {
//	    x, _ := mcplite.Float(args, "x")
//	    y, _ := mcplite.Float(args, "y")
//	    return x + y, nil
//	}
//
//	reg := mcplite.NewRegistry()
//	reg.MustRegister("", add, mcplite.Metadata{
//	    Description: "Add two numbers",
//	    Params:      []mcplite.Param{mcplite.Arg[int]("x"), mcplite.Arg[int]("y")},
//	})
//	d := mcplite.NewDispatcher(reg)
//	out := d.HandleBytes(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/call",
//	    "params":{"name":"add","arguments":{"x":5,"y":3}}}`))
package mcplite
