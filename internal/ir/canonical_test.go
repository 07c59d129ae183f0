package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "guestfs_", `"guestfs_"`},
		{"int", 80, "80"},
		{"negative int64", int64(-1), "-1"},
		{"uint64", uint64(1) << 63, "9223372036854775808"},
		{"bool", true, "true"},
		{"string list", []string{"b", "a"}, `["b","a"]`},
		{"empty object", map[string]any{}, "{}"},
		{"nested array", []any{1, "x", []any{}}, `[1,"x",[]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortsKeysByUTF16(t *testing.T) {
	result, err := MarshalCanonical(map[string]any{
		"width":  72,
		"name":   "stat",
		"markup": "Returns file information.",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"markup":"Returns file information.","name":"stat","width":72}`, string(result))

	// U+10000 is the surrogate pair D800 DC00, so it sorts before U+E000
	// in UTF-16 order even though its UTF-8 encoding sorts after.
	result, err = MarshalCanonical(map[string]any{"\ue000": 1, "\U00010000": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\ue000\":1}", string(result))
}

func TestMarshalCanonicalNoHTMLEscape(t *testing.T) {
	result, err := MarshalCanonical("C<guestfs_stat> & <b>")
	require.NoError(t, err)
	assert.Equal(t, `"C<guestfs_stat> & <b>"`, string(result))
}

func TestMarshalCanonicalNFC(t *testing.T) {
	composed, err := MarshalCanonical("caf\u00e9")
	require.NoError(t, err)
	decomposed, err := MarshalCanonical("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalCanonicalRejects(t *testing.T) {
	_, err := MarshalCanonical(nil)
	assert.Error(t, err)

	_, err = MarshalCanonical(1.5)
	assert.ErrorContains(t, err, "floats are forbidden")

	_, err = MarshalCanonical(map[string]any{"k": []any{nil}})
	assert.ErrorContains(t, err, `object["k"]`)

	_, err = MarshalCanonical(struct{}{})
	assert.ErrorContains(t, err, "unsupported type")
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"literal separators kept", "a\u2028b\u2029c", "\"a\u2028b\u2029c\""},
		{"escaped text untouched", `see \u2028`, `"see \\u2028"`},
		{"mixed", "x \\u2029 y \u2029", "\"x \\\\u2029 y \u2029\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}
