package mcplite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Dispatcher turns JSON-RPC request envelopes into response envelopes against a Registry.
// Each call processes one request to completion; a blocking handler blocks the call.
// A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	opts     dispatcherOptions
}

// NewDispatcher creates a Dispatcher serving the tools of reg.
func NewDispatcher(reg *Registry, opts ...DispatcherOption) *Dispatcher {
	if reg == nil {
		panic("mcplite: nil Registry")
	}
	o := dispatcherOptions{
		name:    "MCP Server",
		version: "1.0.0",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Dispatcher{registry: reg, opts: o}
}

// Registry returns the registry the dispatcher serves.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Handle processes one raw request envelope. It always returns a response; the id is
// null when the envelope was too malformed to recover it.
func (d *Dispatcher) Handle(ctx context.Context, body []byte) *Response {
	req, perr := parseRequest(body)
	if perr != nil {
		d.opts.logger.WarnContext(ctx, "invalid request", "id", idString(req.ID), "code", perr.Code, "error", perr.Message)
		return errorResponse(req.ID, perr)
	}
	return d.HandleRequest(ctx, req)
}

// HandleEnvelope processes a request given as a decoded JSON object.
func (d *Dispatcher) HandleEnvelope(ctx context.Context, envelope map[string]any) *Response {
	body, err := json.Marshal(envelope)
	if err != nil {
		return errorResponse(nil, invalidRequest("envelope is not JSON-encodable"))
	}
	return d.Handle(ctx, body)
}

// HandleRequest routes an already parsed request.
func (d *Dispatcher) HandleRequest(ctx context.Context, req *Request) (resp *Response) {
	start := time.Now()
	logger := d.opts.logger.With("method", req.Method, "id", idString(req.ID))
	defer func() {
		if p := recover(); p != nil {
			logger.ErrorContext(ctx, "request panicked", "panic", fmt.Sprint(p))
			resp = errorResponse(req.ID, internalError(fmt.Sprint(p)))
		}
	}()

	logger.DebugContext(ctx, "processing request")
	result, perr := d.route(ctx, req)
	if perr != nil {
		logger.WarnContext(ctx, "request failed", "code", perr.Code, "error", perr.Message, "duration", time.Since(start))
		return errorResponse(req.ID, perr)
	}
	logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
	return successResponse(req.ID, result)
}

// HandleBytes processes a raw envelope, or a JSON-RPC batch array, and returns the
// encoded response. A batch yields an array of responses in request order.
func (d *Dispatcher) HandleBytes(ctx context.Context, body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return d.handleBatch(ctx, trimmed)
	}
	return encodeResponse(d.Handle(ctx, trimmed))
}

func (d *Dispatcher) handleBatch(ctx context.Context, body []byte) []byte {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return encodeResponse(errorResponse(nil, invalidRequest("malformed JSON")))
	}
	if len(items) == 0 {
		return encodeResponse(errorResponse(nil, invalidRequest("empty batch")))
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		out = append(out, encodeResponse(d.Handle(ctx, item)))
	}
	b, err := json.Marshal(out)
	if err != nil {
		return encodeResponse(errorResponse(nil, internalError(err.Error())))
	}
	return b
}

const fallbackResponse = `{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`

func encodeResponse(resp *Response) []byte {
	b, err := json.Marshal(resp)
	if err == nil {
		return b
	}
	b, err = json.Marshal(errorResponse(resp.ID, internalError(err.Error())))
	if err != nil {
		return []byte(fallbackResponse)
	}
	return b
}

func (d *Dispatcher) route(ctx context.Context, req *Request) (any, *ProtocolError) {
	switch req.Method {
	case MethodToolsList:
		return d.listTools(), nil
	case MethodToolsCall:
		return d.callTool(ctx, req)
	case MethodInitialize:
		return d.initialize(ctx, req.Params), nil
	case MethodInitialized, MethodInitializedLegacy, MethodPing:
		return struct{}{}, nil
	default:
		return nil, methodNotFound(req.Method)
	}
}

// ListToolsResult is the tools/list result.
type ListToolsResult struct {
	Tools []*ToolRecord `json:"tools"`
}

func (d *Dispatcher) listTools() *ListToolsResult {
	return &ListToolsResult{Tools: d.registry.List()}
}

// InitializeResult is the initialize result.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Instructions    string       `json:"instructions,omitempty"`
}

// Capabilities declares the server capabilities: tools only.
type Capabilities struct {
	Tools ToolsCapability `json:"tools"`
}

// ToolsCapability declares tool support. The tool list never changes after setup.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ServerInfo identifies the server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (d *Dispatcher) initialize(ctx context.Context, params json.RawMessage) *InitializeResult {
	var p struct {
		ProtocolVersion string     `json:"protocolVersion"`
		ClientInfo      ServerInfo `json:"clientInfo"`
	}
	if !isNull(params) {
		// Client info is only logged; malformed params do not fail initialize.
		_ = json.Unmarshal(params, &p)
	}
	d.opts.logger.InfoContext(ctx, "initializing server",
		"server", d.opts.name, "version", d.opts.version,
		"client", p.ClientInfo.Name, "client_protocol", p.ProtocolVersion,
		"tools", d.registry.Len())
	return &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      ServerInfo{Name: d.opts.name, Version: d.opts.version},
		Instructions:    d.opts.instructions,
	}
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (d *Dispatcher) callTool(ctx context.Context, req *Request) (*ToolResult, *ProtocolError) {
	if isNull(req.Params) {
		return nil, invalidParams("missing tool name")
	}
	var p callParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return nil, invalidParams("params must be an object with a string name")
	}
	if p.Name == "" {
		return nil, invalidParams("missing tool name")
	}
	rec, err := d.registry.Get(p.Name)
	if err != nil {
		return nil, invalidParams(err.Error())
	}
	args, perr := decodeArguments(p.Arguments)
	if perr != nil {
		return nil, perr
	}
	if missing := rec.missingRequired(args); len(missing) > 0 {
		return nil, invalidParams("missing required parameters: " + strings.Join(missing, ", "))
	}
	if err := rec.validateArguments(args); err != nil {
		return nil, invalidParams(err.Error())
	}
	res := d.invoke(ctx, rec, args)
	d.opts.logger.InfoContext(ctx, "tool executed", "tool", rec.Name, "id", idString(req.ID), "is_error", res.IsError)
	return res, nil
}

// decodeArguments decodes the arguments object with numbers kept as json.Number, so
// integers beyond float64 precision and large literals reach the handler unchanged.
func decodeArguments(raw json.RawMessage) (map[string]any, *ProtocolError) {
	args := make(map[string]any)
	if isNull(raw) {
		return args, nil
	}
	if trimmed := bytes.TrimSpace(raw); trimmed[0] != '{' {
		return nil, invalidParams("arguments must be an object")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, invalidParams(fmt.Sprintf("malformed arguments: %v", err))
	}
	return args, nil
}

// invoke calls the handler, converting returned errors and panics into an error result.
func (d *Dispatcher) invoke(ctx context.Context, rec *ToolRecord, args map[string]any) (res *ToolResult) {
	defer func() {
		if p := recover(); p != nil {
			res = d.toolError(ctx, &ToolError{Tool: rec.Name, Err: &panicError{p: p}})
		}
	}()
	out, err := rec.Call(ctx, args)
	if err != nil {
		return d.toolError(ctx, &ToolError{Tool: rec.Name, Err: err})
	}
	return shapeResult(out)
}

func (d *Dispatcher) toolError(ctx context.Context, te *ToolError) *ToolResult {
	d.opts.logger.ErrorContext(ctx, "tool failed", "tool", te.Tool, "error", te.Err)
	if d.opts.onToolError != nil {
		d.opts.onToolError(te)
	}
	return ErrorResult(te.Error())
}

func idString(id json.RawMessage) string {
	if id == nil {
		return "null"
	}
	return string(id)
}
