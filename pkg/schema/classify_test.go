package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferadev/infera/pkg/types"
)

func mustOutput(t *testing.T, raw string) *Output {
	t.Helper()
	var out Output
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return &out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		want   Kind
	}{
		{
			name:   "concatenate iterator",
			schema: `{"type":"array","items":{"type":"string"},"x-cog-array-type":"iterator","x-cog-array-display":"concatenate"}`,
			want:   KindConcatIterator,
		},
		{
			name:   "iterator of any item type",
			schema: `{"type":"array","items":{"type":"integer"},"x-cog-array-type":"iterator"}`,
			want:   KindIterator,
		},
		{
			name:   "iterator without items",
			schema: `{"type":"array","x-cog-array-type":"iterator"}`,
			want:   KindIterator,
		},
		{
			name:   "scalar uri",
			schema: `{"type":"string","format":"uri"}`,
			want:   KindScalarURI,
		},
		{
			name:   "list of uri",
			schema: `{"type":"array","items":{"type":"string","format":"uri"}}`,
			want:   KindListURI,
		},
		{
			name:   "plain list",
			schema: `{"type":"array","items":{"type":"string"}}`,
			want:   KindList,
		},
		{
			name:   "object with properties",
			schema: `{"type":"object","properties":{"f":{"type":"string","format":"uri"}}}`,
			want:   KindObject,
		},
		{
			name:   "object without properties is scalar",
			schema: `{"type":"object"}`,
			want:   KindScalar,
		},
		{
			name:   "plain string is scalar",
			schema: `{"type":"string"}`,
			want:   KindScalar,
		},
		{
			name:   "concatenate display on non-string items stays iterator",
			schema: `{"type":"array","items":{"type":"integer"},"x-cog-array-type":"iterator","x-cog-array-display":"concatenate"}`,
			want:   KindIterator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(mustOutput(t, tt.schema)))
		})
	}
}

func TestClassify_NilSchema(t *testing.T) {
	assert.Equal(t, KindScalar, Classify(nil))
}

func TestOutputSchema(t *testing.T) {
	doc := `{
		"components": {
			"schemas": {
				"Input": {"type": "object"},
				"Output": {"type": "array", "items": {"type": "string"}, "x-cog-array-type": "iterator"}
			}
		}
	}`

	version := &types.Version{ID: "v1", OpenAPISchema: json.RawMessage(doc)}
	out, err := OutputSchema(version)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, KindIterator, Classify(out))
}

func TestOutputSchema_Missing(t *testing.T) {
	tests := []struct {
		name    string
		version *types.Version
	}{
		{name: "nil version", version: nil},
		{name: "no schema document", version: &types.Version{ID: "v1"}},
		{name: "no Output component", version: &types.Version{ID: "v1", OpenAPISchema: json.RawMessage(`{"components":{"schemas":{}}}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := OutputSchema(tt.version)
			require.NoError(t, err)
			assert.Nil(t, out)
		})
	}
}

func TestOutputSchema_Malformed(t *testing.T) {
	version := &types.Version{ID: "v1", OpenAPISchema: json.RawMessage(`{`)}
	_, err := OutputSchema(version)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		schema     string
		cogVersion string
		want       string
	}{
		{
			name:       "below threshold array gets iterator marker",
			schema:     `{"type":"array","items":{"type":"string"}}`,
			cogVersion: "0.3.7",
			want:       "iterator",
		},
		{
			name:       "at threshold is a no-op",
			schema:     `{"type":"array","items":{"type":"string"}}`,
			cogVersion: "0.3.8",
			want:       "",
		},
		{
			name:       "above threshold is a no-op",
			schema:     `{"type":"array","items":{"type":"string"}}`,
			cogVersion: "0.4.0",
			want:       "",
		},
		{
			name:       "explicit marker is never overwritten",
			schema:     `{"type":"array","x-cog-array-type":"list"}`,
			cogVersion: "0.1.0",
			want:       "list",
		},
		{
			name:       "non-array output untouched",
			schema:     `{"type":"string"}`,
			cogVersion: "0.1.0",
			want:       "",
		},
		{
			name:       "unparseable version treated as modern",
			schema:     `{"type":"array"}`,
			cogVersion: "not-a-version",
			want:       "",
		},
		{
			name:       "empty version is a no-op",
			schema:     `{"type":"array"}`,
			cogVersion: "",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustOutput(t, tt.schema)
			Normalize(out, tt.cogVersion)
			assert.Equal(t, tt.want, out.ArrayType)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	out := mustOutput(t, `{"type":"array","items":{"type":"string"}}`)

	Normalize(out, "0.2.0")
	require.Equal(t, "iterator", out.ArrayType)

	// Repeated application must not change the result.
	Normalize(out, "0.2.0")
	assert.Equal(t, "iterator", out.ArrayType)
	assert.Equal(t, KindIterator, Classify(out))
}
