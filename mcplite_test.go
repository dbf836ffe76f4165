package mcplite

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParameterSpec_JSONType(t *testing.T) {
	specs := Inspect([]Param{Arg[int]("n"), Untyped("any")}, "")
	require.Len(t, specs, 2)
	assert.Equal(t, TypeInteger, specs[0].JSONType())
	assert.Empty(t, specs[1].JSONType())
	assert.Empty(t, ParameterSpec{Name: "bare"}.JSONType())
}

func TestDispatcher_ConcurrentCalls(t *testing.T) {
	d := newTestDispatcher(t)
	var wg sync.WaitGroup
	results := make([]string, 50)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"add","arguments":{"x":%d,"y":1}}}`, i, i)
			resp := d.Handle(context.Background(), []byte(body))
			if res, ok := resp.Result.(*ToolResult); ok {
				results[i] = res.Content[0].Text
			}
		}()
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, fmt.Sprint(i+1), got)
	}
}
