package mcplite

import (
	"encoding/json"
	"maps"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotAndRestoreCustomTypes backs up the global custom type registry and registers t.Cleanup
// to restore it. Use in tests that call RegisterType so they do not affect other tests.
// Do not run such tests with t.Parallel().
func snapshotAndRestoreCustomTypes(t *testing.T) {
	t.Helper()
	customTypesMu.Lock()
	before := maps.Clone(customTypes)
	customTypesMu.Unlock()
	t.Cleanup(func() {
		customTypesMu.Lock()
		customTypes = before
		customTypesMu.Unlock()
	})
}

func TestMapType_Table(t *testing.T) {
	type point struct{ X, Y int }
	tests := []struct {
		name     string
		typ      reflect.Type
		wantType string
		nullable bool
	}{
		{"int", reflect.TypeFor[int](), TypeInteger, false},
		{"int8", reflect.TypeFor[int8](), TypeInteger, false},
		{"int64", reflect.TypeFor[int64](), TypeInteger, false},
		{"uint32", reflect.TypeFor[uint32](), TypeInteger, false},
		{"float32", reflect.TypeFor[float32](), TypeNumber, false},
		{"float64", reflect.TypeFor[float64](), TypeNumber, false},
		{"bool", reflect.TypeFor[bool](), TypeBoolean, false},
		{"string", reflect.TypeFor[string](), TypeString, false},
		{"map", reflect.TypeFor[map[string]int](), TypeObject, false},
		{"struct", reflect.TypeFor[point](), TypeObject, false},
		{"pointer to string", reflect.TypeFor[*string](), TypeString, true},
		{"pointer to pointer", reflect.TypeFor[**int](), TypeInteger, true},
		{"interface", reflect.TypeFor[any](), "", false},
		{"raw message", reflect.TypeFor[json.RawMessage](), "", false},
		{"channel", reflect.TypeFor[chan int](), "", false},
		{"func", reflect.TypeFor[func()](), "", false},
		{"untyped", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, nullable := MapType(tt.typ)
			require.NotNil(t, s)
			assert.Equal(t, tt.wantType, s.Type)
			assert.Equal(t, tt.nullable, nullable)
		})
	}
}

func TestMapType_Arrays(t *testing.T) {
	s, _ := MapType(reflect.TypeFor[[]string]())
	assert.Equal(t, TypeArray, s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, TypeString, s.Items.Type)

	s, _ = MapType(reflect.TypeFor[[3]float64]())
	assert.Equal(t, TypeArray, s.Type)
	assert.Equal(t, TypeNumber, s.Items.Type)

	s, _ = MapType(reflect.TypeFor[[][]int]())
	assert.Equal(t, TypeArray, s.Items.Type)
	assert.Equal(t, TypeInteger, s.Items.Items.Type)

	s, _ = MapType(reflect.TypeFor[[]any]())
	assert.Equal(t, TypeArray, s.Type)
	data, err := json.Marshal(s.Items)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestMapType_UnknownIsPermissive(t *testing.T) {
	s, _ := MapType(reflect.TypeFor[complex128]())
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestRegisterType_OverridesTable(t *testing.T) {
	snapshotAndRestoreCustomTypes(t)
	RegisterType(time.Time{}, TypeString, "date-time")
	s, nullable := MapType(reflect.TypeFor[time.Time]())
	assert.Equal(t, TypeString, s.Type)
	assert.Equal(t, "date-time", s.Format)
	assert.False(t, nullable)

	s, nullable = MapType(reflect.TypeFor[*time.Time]())
	assert.Equal(t, "date-time", s.Format)
	assert.True(t, nullable)
}

func TestRegisterType_ReturnsCopies(t *testing.T) {
	snapshotAndRestoreCustomTypes(t)
	type money struct{}
	RegisterType(money{}, TypeNumber, "decimal")
	s, _ := MapType(reflect.TypeFor[money]())
	s.Description = "mutated"
	again, _ := MapType(reflect.TypeFor[money]())
	assert.Empty(t, again.Description)
}

func TestRegisterType_Panics(t *testing.T) {
	assert.Panics(t, func() { RegisterType(nil, TypeString, "") })
	assert.Panics(t, func() { RegisterType(0, "", "") })
}
