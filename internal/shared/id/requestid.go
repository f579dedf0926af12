// Package id generates opaque identifiers for requests and cache members.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated IDs
	DefaultLength = 16

	// PrefixRequest marks request correlation IDs.
	PrefixRequest = "req"
)

// Generate creates a random Base62 ID with the specified length.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// MustGenerate creates a random ID and panics on error.
func MustGenerate(length int) string {
	id, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return id
}

// NewRequestID returns a "req_" prefixed correlation ID.
func NewRequestID() string {
	return PrefixRequest + "_" + MustGenerate(DefaultLength)
}

// IsValidRequestID reports whether a client-supplied request ID is safe to echo
// back: a short run of Base62 characters, dashes and underscores.
func IsValidRequestID(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		if r != '-' && r != '_' && !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
