package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenVerifier_Verify(t *testing.T) {
	verifier := NewTokenVerifier("secret")
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name        string
		token       string
		wantSubject string
		wantErr     bool
	}{
		{
			name:        "valid",
			token:       sign(t, jwt.SigningMethodHS256, "secret", jwt.RegisteredClaims{Subject: "alice", ExpiresAt: future}),
			wantSubject: "alice",
		},
		{
			name:    "wrong secret",
			token:   sign(t, jwt.SigningMethodHS256, "other", jwt.RegisteredClaims{Subject: "alice", ExpiresAt: future}),
			wantErr: true,
		},
		{
			name:    "expired",
			token:   sign(t, jwt.SigningMethodHS256, "secret", jwt.RegisteredClaims{Subject: "alice", ExpiresAt: past}),
			wantErr: true,
		},
		{
			name:    "other hmac algorithm",
			token:   sign(t, jwt.SigningMethodHS512, "secret", jwt.RegisteredClaims{Subject: "alice", ExpiresAt: future}),
			wantErr: true,
		},
		{
			name:    "no subject",
			token:   sign(t, jwt.SigningMethodHS256, "secret", jwt.RegisteredClaims{ExpiresAt: future}),
			wantErr: true,
		},
		{
			name:    "garbage",
			token:   "not.a.token",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.Verify(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, claims.Subject)
		})
	}
}

func TestTokenVerifier_Disabled(t *testing.T) {
	verifier := NewTokenVerifier("")
	assert.False(t, verifier.Enabled())

	_, err := verifier.Verify("anything")
	assert.Error(t, err)

	var nilVerifier *TokenVerifier
	assert.False(t, nilVerifier.Enabled())
}
