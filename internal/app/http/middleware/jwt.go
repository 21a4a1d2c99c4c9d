package middleware

import (
	"net/http"
	"strings"

	"gomeraway-api/internal/infra/supabase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Identify resolves the bearer token into an identity when one is present and
// valid. It never aborts: the serverless-style handlers decide themselves how
// to answer an anonymous call.
func Identify(verifier supabase.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || verifier == nil {
			c.Next()
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			log.Debug("bearer token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Set("user_id", identity.ID)
		c.Set("email", identity.Email)
		c.Next()
	}
}

// RequireIdentity aborts with 401 when Identify did not resolve anyone.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity resolved for this request.
func IdentityFrom(c *gin.Context) (*supabase.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*supabase.Identity)
	return identity, ok && identity != nil
}

// SetIdentity is used by tests and internal callers that already hold an
// identity.
func SetIdentity(c *gin.Context, identity *supabase.Identity) {
	c.Set(identityKey, identity)
	c.Set("user_id", identity.ID)
	c.Set("email", identity.Email)
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// AccessToken returns the raw bearer token of the request, if any.
func AccessToken(c *gin.Context) string {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	return token
}
