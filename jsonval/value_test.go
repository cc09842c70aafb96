package jsonval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInterface_Scalars(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input any
		kind  Kind
	}{
		"nil":     {input: nil, kind: KindNull},
		"bool":    {input: true, kind: KindBool},
		"float64": {input: 3.5, kind: KindNumber},
		"int":     {input: 42, kind: KindNumber},
		"string":  {input: "hello", kind: KindString},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := FromInterface(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.kind, v.Kind())
		})
	}
}

func TestFromInterface_Nested(t *testing.T) {
	t.Parallel()

	v, err := FromInterface(map[string]any{
		"name": "app",
		"ui": map[string]any{
			"theme": "dark",
			"zoom":  1.25,
		},
		"tags": []any{"a", "b"},
	})
	require.NoError(t, err)

	theme, ok := v.Get("ui.theme")
	require.True(t, ok)
	s, _ := theme.AsString()
	assert.Equal(t, "dark", s)

	tags, ok := v.Field("tags")
	require.True(t, ok)
	assert.Equal(t, KindArray, tags.Kind())
	assert.Equal(t, 2, tags.Len())
}

func TestFromInterface_RejectsNonJSON(t *testing.T) {
	t.Parallel()

	_, err := FromInterface(make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	orig := MustFromInterface(map[string]any{
		"a": map[string]any{"b": 1},
		"list": []any{1, 2},
	})
	clone := orig.Clone()

	require.NoError(t, clone.Set("a.b", Int(99)))

	got, ok := orig.Get("a.b")
	require.True(t, ok)
	n, _ := got.AsNumber()
	assert.Equal(t, 1.0, n, "mutating a clone must not leak into the original")
}

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b  any
		equal bool
	}{
		"same scalars":        {a: 1, b: 1, equal: true},
		"different scalars":   {a: 1, b: 2, equal: false},
		"kind mismatch":       {a: 1, b: "1", equal: false},
		"same objects":        {a: map[string]any{"x": 1}, b: map[string]any{"x": 1}, equal: true},
		"missing key":         {a: map[string]any{"x": 1}, b: map[string]any{}, equal: false},
		"same arrays":         {a: []any{1, 2}, b: []any{1, 2}, equal: true},
		"array order matters": {a: []any{1, 2}, b: []any{2, 1}, equal: false},
		"nested":              {a: map[string]any{"x": map[string]any{"y": true}}, b: map[string]any{"x": map[string]any{"y": true}}, equal: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a := MustFromInterface(test.a)
			b := MustFromInterface(test.b)
			assert.Equal(t, test.equal, a.Equal(b))
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	orig := MustFromInterface(map[string]any{
		"name":  "app",
		"count": 3,
		"ui":    map[string]any{"theme": "dark"},
		"tags":  []any{"a", nil, true},
	})

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Value
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, orig.Equal(back))
}

func TestUnmarshalJSON_Invalid(t *testing.T) {
	t.Parallel()

	var v Value
	require.Error(t, json.Unmarshal([]byte(`{"broken":`), &v))
}

func TestSet_CreatesIntermediates(t *testing.T) {
	t.Parallel()

	v := Object(nil)
	require.NoError(t, v.Set("a.b.c", String("deep")))

	got, ok := v.Get("a.b.c")
	require.True(t, ok)
	s, _ := got.AsString()
	assert.Equal(t, "deep", s)
}

func TestSet_ReplacesScalarOnPath(t *testing.T) {
	t.Parallel()

	v := MustFromInterface(map[string]any{"a": 1})
	require.NoError(t, v.Set("a.b", Int(2)))

	got, ok := v.Get("a.b")
	require.True(t, ok)
	n, _ := got.AsNumber()
	assert.Equal(t, 2.0, n)
}

func TestSet_OnScalarRootFails(t *testing.T) {
	t.Parallel()

	v := Int(1)
	require.Error(t, v.Set("a", Int(2)))
}

func TestSet_StoresCopy(t *testing.T) {
	t.Parallel()

	inner := Object(map[string]Value{"x": Int(1)})
	root := Object(nil)
	require.NoError(t, root.Set("sub", inner))

	require.NoError(t, inner.Set("x", Int(99)))

	got, ok := root.Get("sub.x")
	require.True(t, ok)
	n, _ := got.AsNumber()
	assert.Equal(t, 1.0, n, "Set must store a copy, not alias the argument")
}

func TestDelete(t *testing.T) {
	t.Parallel()

	v := MustFromInterface(map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
	})

	assert.True(t, v.Delete("a.b"))
	_, ok := v.Get("a.b")
	assert.False(t, ok)

	// Sibling untouched.
	_, ok = v.Get("a.c")
	assert.True(t, ok)

	assert.False(t, v.Delete("a.b"), "second delete finds nothing")
	assert.False(t, v.Delete("x.y.z"), "missing path")
}

func TestInterface_RoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"s":    "str",
		"n":    1.5,
		"b":    false,
		"null": nil,
		"arr":  []any{1.0, "two"},
		"obj":  map[string]any{"k": "v"},
	}
	v := MustFromInterface(in)
	assert.Equal(t, in, v.Interface())
}

func TestAccessors_KindMismatch(t *testing.T) {
	t.Parallel()

	v := String("hi")

	_, ok := v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsNumber()
	assert.False(t, ok)
	assert.Nil(t, v.Items())
	assert.Nil(t, v.Fields())
	_, ok = v.Field("x")
	assert.False(t, ok)
	_, ok = v.Index(0)
	assert.False(t, ok)
	assert.Equal(t, 0, v.Len())
}
