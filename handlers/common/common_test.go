package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamID(t *testing.T) {
	id, err := ParamID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := ParamID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}

func TestJSONList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"array", `{"items":[{"degree":"PhD"}]}`, `[{"degree":"PhD"}]`, false},
		{"string holding array", `{"items":"[\"a\",\"b\"]"}`, `["a","b"]`, false},
		{"empty string", `{"items":""}`, `[]`, false},
		{"null", `{"items":null}`, `[]`, false},
		{"object rejected", `{"items":{"a":1}}`, "", true},
		{"string garbage rejected", `{"items":"nope"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				Items JSONList `json:"items"`
			}
			err := json.Unmarshal([]byte(tt.body), &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, dst.Items.Set)
			assert.JSONEq(t, tt.want, string(dst.Items.Value()))
		})
	}
}

func TestJSONListOmitted(t *testing.T) {
	var dst struct {
		Items JSONList `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &dst))
	assert.False(t, dst.Items.Set)
	assert.Equal(t, "[]", string(dst.Items.Value()))
}
