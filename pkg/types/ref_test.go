package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    Ref
		wantErr bool
	}{
		{
			name: "owner and name",
			ref:  "stability-ai/sdxl",
			want: Ref{Owner: "stability-ai", Name: "sdxl"},
		},
		{
			name: "owner name and version",
			ref:  "stability-ai/sdxl:39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b",
			want: Ref{Owner: "stability-ai", Name: "sdxl", Version: "39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"},
		},
		{name: "missing slash", ref: "sdxl", wantErr: true},
		{name: "empty owner", ref: "/sdxl", wantErr: true},
		{name: "empty name", ref: "owner/", wantErr: true},
		{name: "extra slash", ref: "owner/name/extra", wantErr: true},
		{name: "empty version after colon", ref: "owner/name:", wantErr: true},
		{name: "double colon", ref: "owner/name:v1:v2", wantErr: true},
		{name: "empty string", ref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				var refErr *RefError
				assert.ErrorAs(t, err, &refErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRef_String(t *testing.T) {
	assert.Equal(t, "owner/name", Ref{Owner: "owner", Name: "name"}.String())
	assert.Equal(t, "owner/name:v1", Ref{Owner: "owner", Name: "name", Version: "v1"}.String())
}
