package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLength)

	got, err = Generate(8)
	require.NoError(t, err)
	assert.Len(t, got, 8)
	for _, r := range got {
		assert.True(t, strings.ContainsRune(alphabet, r))
	}
}

func TestNewRequestID(t *testing.T) {
	a := NewRequestID()
	b := NewRequestID()

	assert.True(t, strings.HasPrefix(a, "req_"))
	assert.NotEqual(t, a, b)
	assert.True(t, IsValidRequestID(a))
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"req_abc123", true},
		{"3f2c-11ee-b962", true},
		{"", false},
		{"has space", false},
		{"inject\nheader", false},
		{strings.Repeat("a", 65), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidRequestID(tt.input), tt.input)
	}
}
