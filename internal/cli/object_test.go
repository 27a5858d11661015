package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    map[string]string
		wantErr bool
	}{
		{name: "empty", args: nil, want: map[string]string{}},
		{name: "simple", args: []string{"Title=Brakes"}, want: map[string]string{"Title": "Brakes"}},
		{name: "split on first equals", args: []string{"Expr=a=b"}, want: map[string]string{"Expr": "a=b"}},
		{name: "empty value", args: []string{"Description="}, want: map[string]string{"Description": ""}},
		{name: "later wins", args: []string{"A=1", "A=2"}, want: map[string]string{"A": "2"}},
		{name: "spaces kept", args: []string{"Title=Anti lock"}, want: map[string]string{"Title": "Anti lock"}},
		{name: "no equals", args: []string{"Title"}, wantErr: true},
		{name: "empty key", args: []string{"=v"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAttributes(tt.args)
			if tt.wantErr {
				assert.ErrorIs(t, err, errBadAttribute)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Requirement", capitalize("requirement"))
	assert.Equal(t, "Use_case", capitalize("USE_CASE"))
	assert.Equal(t, "Été", capitalize("été"))
	assert.Equal(t, "", capitalize(""))
}
