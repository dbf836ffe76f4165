package mcplite

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	h := WithLogging(logger)("log_me", func(_ context.Context, _ map[string]any) (any, error) {
		return "ok", nil
	})
	out, err := h(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	logStr := buf.String()
	assert.Contains(t, logStr, "tool start")
	assert.Contains(t, logStr, "tool end")
	assert.Contains(t, logStr, "log_me")
}

func TestWithLogging_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	boom := errors.New("boom")
	h := WithLogging(logger)("fails", func(_ context.Context, _ map[string]any) (any, error) {
		return nil, boom
	})
	_, err := h(context.Background(), nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "tool error")
}

func TestWithTimeout(t *testing.T) {
	h := WithTimeout(5*time.Millisecond)("slow", func(ctx context.Context, _ map[string]any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := h(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	called := false
	next := Handler(func(_ context.Context, _ map[string]any) (any, error) {
		called = true
		return nil, nil
	})
	_, err = WithTimeout(0)("fast", next)(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, called)
}

func tagMiddleware(tag string, trace *[]string) Middleware {
	return func(name string, next Handler) Handler {
		return func(ctx context.Context, args map[string]any) (any, error) {
			*trace = append(*trace, tag+":"+name)
			return next(ctx, args)
		}
	}
}

func TestRegistry_Use(t *testing.T) {
	reg := quietRegistry()
	require.NoError(t, reg.Register("before", nopHandler, Metadata{}))
	old, err := reg.Get("before")
	require.NoError(t, err)

	var trace []string
	reg.Use(tagMiddleware("outer", &trace), tagMiddleware("inner", &trace))
	require.NoError(t, reg.Register("after", nopHandler, Metadata{}))

	for _, name := range []string{"before", "after"} {
		rec, err := reg.Get(name)
		require.NoError(t, err)
		_, err = rec.Call(context.Background(), nil)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"outer:before", "inner:before", "outer:after", "inner:after"}, trace)

	// Records handed out before Use keep their original chain.
	trace = nil
	_, err = old.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, trace)

	// Use replaces the chain rather than stacking on it.
	reg.Use(tagMiddleware("only", &trace))
	rec, err := reg.Get("before")
	require.NoError(t, err)
	_, err = rec.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"only:before"}, trace)

	names := make([]string, 0, 2)
	for _, r := range reg.List() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"before", "after"}, names)
}
