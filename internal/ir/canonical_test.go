package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalScalars(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(1234567890), "1234567890"},
		{"true", true, "true"},
		{"false", false, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonicalRejectsFloatsAndNulls(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(3.14)
	assert.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": nil})
	assert.Error(t, err)

	_, err = MarshalCanonical([]any{1, 2.5})
	assert.Error(t, err)
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	got, err := MarshalCanonical("{a} -> b & <c>")
	require.NoError(t, err)
	assert.Equal(t, `"{a} -> b & <c>"`, string(got))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9.
	got, err := MarshalCanonical("café")
	require.NoError(t, err)
	assert.Equal(t, "\"café\"", string(got))
}

func TestMarshalCanonicalLineSeparatorsUnescaped(t *testing.T) {
	// RFC 8785 emits U+2028/U+2029 literally, unlike encoding/json.
	got, err := MarshalCanonical("a b c")
	require.NoError(t, err)
	assert.Equal(t, "\"a b c\"", string(got))

	// A literal backslash followed by the text "u2028" stays escaped.
	got, err = MarshalCanonical("a\\u2028b")
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(got))
}

func TestMarshalCanonicalObjectKeyOrder(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{
		"outputs": []string{"y"},
		"name":    "add:0",
		"inputs":  []string{"x"},
		"op":      "add",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"inputs":["x"],"name":"add:0","op":"add","outputs":["y"]}`, string(got))
}

func TestMarshalCanonicalUTF16KeyOrder(t *testing.T) {
	// U+FF61 is a single UTF-16 unit 0xFF61; U+10000 is a surrogate pair
	// starting 0xD800. UTF-16 order puts the supplementary-plane key
	// first, UTF-8 byte order would not.
	got, err := MarshalCanonical(map[string]any{
		"｡":     1,
		"\U00010000": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"｡\":1}", string(got))
}

func TestMarshalCanonicalNestedStructure(t *testing.T) {
	got, err := MarshalCanonical(map[string]any{
		"nodes": []any{
			map[string]any{"name": "mul:1", "op": "mul"},
		},
		"placeholders": []string{"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[{"name":"mul:1","op":"mul"}],"placeholders":["x"]}`, string(got))
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	v := map[string]any{"b": 1, "a": 2, "c": []string{"x", "y"}}
	first, err := MarshalCanonical(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(v)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
