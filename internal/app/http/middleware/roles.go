package middleware

import (
	"context"
	"errors"
	"net/http"

	"gomeraway-api/internal/domain/users"
	"gomeraway-api/internal/store"

	"github.com/gin-gonic/gin"
)

// ProfileGetter loads the stored profile of an identity.
type ProfileGetter interface {
	GetProfile(ctx context.Context, id string) (*users.Profile, error)
}

// RequireRole checks the role on the stored profile, never a token claim.
func RequireRole(profiles ProfileGetter, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), identity.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}

		if profile.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

func RequireAdmin(profiles ProfileGetter) gin.HandlerFunc {
	return RequireRole(profiles, users.RoleAdmin)
}
