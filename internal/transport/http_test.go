package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/skosovsky/mcplite"
	"github.com/skosovsky/mcplite/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newDispatcher() *mcplite.Dispatcher {
	return testutil.NewTestDispatcher(
		&testutil.MockTool{
			NameVal: "add",
			Meta:    mcplite.Metadata{Params: []mcplite.Param{mcplite.Arg[int]("x"), mcplite.Arg[int]("y")}},
			CallFn: func(_ context.Context, args map[string]any) (any, error) {
				x, _ := mcplite.Float(args, "x")
				y, _ := mcplite.Float(args, "y")
				return x + y, nil
			},
		},
		&testutil.MockTool{NameVal: "fail", ErrVal: errors.New("boom")},
	)
}

func serve(h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func quiet() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestHTTPHandler_Health(t *testing.T) {
	h := HTTPHandler(newDispatcher(), HTTPOptions{Token: "x", Logger: quiet()})
	rr := serve(h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","tools":2}`, rr.Body.String())
}

func TestHTTPHandler_Call(t *testing.T) {
	h := HTTPHandler(newDispatcher(), HTTPOptions{Logger: quiet()})
	rr := serve(h, http.MethodPost, "/mcp",
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"add","arguments":{"x":5,"y":3}}}`, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"8"}]}}`, rr.Body.String())
}

func TestHTTPHandler_ProtocolErrorsAre200(t *testing.T) {
	h := HTTPHandler(newDispatcher(), HTTPOptions{Logger: quiet()})
	rr := serve(h, http.MethodPost, "/mcp", `{not json`, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Error *mcplite.ProtocolError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, mcplite.CodeInvalidRequest, resp.Error.Code)

	rr = serve(h, http.MethodPost, "/mcp", `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"fail"}}`, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"jsonrpc":"2.0","id":2,"result":{"content":[{"type":"text","text":"boom"}],"isError":true}}`, rr.Body.String())
}

func TestHTTPHandler_Auth(t *testing.T) {
	h := HTTPHandler(newDispatcher(), HTTPOptions{Path: "/rpc", Token: "secret", Logger: quiet()})
	body := `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`

	rr := serve(h, http.MethodPost, "/rpc", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	for _, header := range []string{"Bearer wrong", "Bearer secre", "Bearer secret2", "secret", "Basic secret"} {
		rr = serve(h, http.MethodPost, "/rpc", body, map[string]string{"Authorization": header})
		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
	}

	rr = serve(h, http.MethodPost, "/rpc", body, map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"add"`)
}

func TestHTTPHandler_BodyLimit(t *testing.T) {
	h := HTTPHandler(newDispatcher(), HTTPOptions{MaxBodyBytes: 16, Logger: quiet()})
	rr := serve(h, http.MethodPost, "/mcp", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHTTPHandler_WrongMethod(t *testing.T) {
	h := HTTPHandler(newDispatcher(), HTTPOptions{Logger: quiet()})
	rr := serve(h, http.MethodGet, "/mcp", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
