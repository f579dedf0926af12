package logutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "empty string", input: "", maxLen: 10, expected: ""},
		{name: "zero maxLen", input: "", maxLen: 0, expected: "..."},
		{name: "shorter than maxLen", input: "hello", maxLen: 10, expected: "hello"},
		{name: "equal to maxLen", input: "hello", maxLen: 5, expected: "hello"},
		{name: "longer than maxLen", input: "hello world", maxLen: 5, expected: "hello..."},
		{name: "multibyte runes kept whole", input: "héllo wörld", maxLen: 4, expected: "héll..."},
		{name: "cjk text", input: "内容审核服务", maxLen: 2, expected: "内容..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateForLog(tt.input, tt.maxLen))
		})
	}
}
