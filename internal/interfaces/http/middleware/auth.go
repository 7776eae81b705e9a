package middleware

import (
	"net/http"
	"strings"

	"github.com/estoquesaude/backend/internal/application/identityapp"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/infrastructure/auth"
	"github.com/estoquesaude/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	profileKey = "auth_profile"
	policyKey  = "auth_policy"
)

// Authentication validates the bearer token against the external identity
// provider's signature and resolves the local profile, provisioning it on
// first login. Inactive profiles are rejected.
func Authentication(verifier *auth.TokenVerifier, profiles *identityapp.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Authorization header must be a bearer token")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		profile, err := profiles.EnsureProfile(c.Request.Context(), claims.Subject, claims.Name, claims.Email)
		if err != nil {
			abortUnauthorized(c, "Unable to resolve user profile")
			return
		}
		if !profile.IsActive() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "This account has been deactivated", GetRequestID(c)))
			return
		}

		c.Set(profileKey, profile)
		c.Set(policyKey, identity.NewAccessPolicy(profile))
		c.Next()
	}
}

// RequireRole allows only the listed roles past this point
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := GetProfile(c)
		if profile == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, role := range roles {
			if profile.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role for this operation", GetRequestID(c)))
	}
}

// GetProfile returns the authenticated profile, or nil outside the
// authenticated route group
func GetProfile(c *gin.Context) *identity.UserProfile {
	if v, exists := c.Get(profileKey); exists {
		if profile, ok := v.(*identity.UserProfile); ok {
			return profile
		}
	}
	return nil
}

// GetPolicy returns the access policy of the authenticated actor
func GetPolicy(c *gin.Context) identity.AccessPolicy {
	if v, exists := c.Get(policyKey); exists {
		if policy, ok := v.(identity.AccessPolicy); ok {
			return policy
		}
	}
	return identity.AccessPolicy{}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
