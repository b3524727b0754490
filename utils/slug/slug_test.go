package slug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"title with dot", "Dr. Jane Doe", "dr-jane-doe"},
		{"surrounding space", "   Prof.  A.  K.  Singh  ", "prof-a-k-singh"},
		{"existing hyphens", "Mary--Anne  -  Smith", "mary-anne-smith"},
		{"tabs and newlines", "Ravi\tKumar\nSharma", "ravi-kumar-sharma"},
		{"accents folded", "José Müller", "jose-muller"},
		{"symbols stripped", "C++ & Go (Lab)", "c-go-lab"},
		{"digits kept", "Team 42", "team-42"},
		{"leading hyphens", "--edge--", "edge"},
		{"nothing usable", "!!!", Fallback},
		{"empty", "", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	assert.Equal(t, Generate("Dr. Jane Doe"), Generate("Dr. Jane Doe"))
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{
		"dr-jane-doe":   true,
		"dr-jane-doe-1": true,
	}
	exists := func(candidate string) (bool, error) {
		return taken[candidate], nil
	}

	got, err := Unique("dr-jane-doe", exists)
	require.NoError(t, err)
	assert.Equal(t, "dr-jane-doe-2", got)

	got, err = Unique("john-smith", exists)
	require.NoError(t, err)
	assert.Equal(t, "john-smith", got)
}

func TestUniquePropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := Unique("x", func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
