package mcplite

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	args := map[string]any{
		"number": json.Number("2.5"),
		"float":  4.0,
		"int":    3,
		"uint":   uint8(7),
		"text":   "1",
		"bad":    json.Number("x"),
	}
	tests := []struct {
		key  string
		want float64
		ok   bool
	}{
		{"number", 2.5, true},
		{"float", 4, true},
		{"int", 3, true},
		{"uint", 7, true},
		{"text", 0, false},
		{"bad", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := Float(args, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 0)
		})
	}
}

func TestInt(t *testing.T) {
	args := map[string]any{
		"big":      json.Number("9007199254740993"),
		"fraction": json.Number("1.5"),
		"float":    6.0,
		"half":     6.5,
		"int":      -2,
		"text":     "1",
	}
	n, ok := Int(args, "big")
	assert.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	_, ok = Int(args, "fraction")
	assert.False(t, ok)

	n, ok = Int(args, "float")
	assert.True(t, ok)
	assert.Equal(t, int64(6), n)

	_, ok = Int(args, "half")
	assert.False(t, ok)

	n, ok = Int(args, "int")
	assert.True(t, ok)
	assert.Equal(t, int64(-2), n)

	_, ok = Int(args, "text")
	assert.False(t, ok)
	_, ok = Int(args, "missing")
	assert.False(t, ok)
}
