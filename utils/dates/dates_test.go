package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{" 2024-03-01 ", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), false},
		{"2024-03-01T10:30:00+05:30", time.Date(2024, 3, 1, 5, 0, 0, 0, time.UTC), false},
		{"2024-03-01T10:30", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), false},
		{"01/03/2024", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseOptional(t *testing.T) {
	got, err := ParseOptional(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	empty := ""
	got, err = ParseOptional(&empty)
	require.NoError(t, err)
	assert.Nil(t, got)

	bad := "nope"
	_, err = ParseOptional(&bad)
	assert.Error(t, err)

	ok := "2025-01-15"
	got, err = ParseOptional(&ok)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Day())
}
