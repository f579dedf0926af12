package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/modgate/internal/infrastructure/auth"
	"github.com/orris-inc/modgate/internal/shared/logger"
)

const (
	ContextKeyClientID = "client_id"
	ContextKeySubject  = "subject"

	clientPrefixUser = "user:"
	clientPrefixIP   = "ip:"
)

// ClientIdentity resolves the identity the rate limiter keys on. A valid bearer
// token yields "user:<sub>"; anything else falls back to "ip:<client ip>".
// Invalid tokens are not rejected here.
func ClientIdentity(verifier *auth.TokenVerifier, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := clientPrefixIP + c.ClientIP()

		if verifier.Enabled() {
			if token := bearerToken(c.GetHeader("Authorization")); token != "" {
				claims, err := verifier.Verify(token)
				if err != nil {
					log.Debugw("ignoring invalid bearer token", "client_ip", c.ClientIP(), "error", err)
				} else {
					clientID = clientPrefixUser + claims.Subject
					c.Set(ContextKeySubject, claims.Subject)
				}
			}
		}

		c.Set(ContextKeyClientID, clientID)
		c.Next()
	}
}

// GetClientID returns the identity set by ClientIdentity, falling back to the
// client IP when the middleware did not run.
func GetClientID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyClientID); ok {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return clientPrefixIP + c.ClientIP()
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
