package handler

import (
	"net/http"
	"strings"

	"github.com/ajaymaurya90/ecompointer-backend/internal/domain"
	"github.com/ajaymaurya90/ecompointer-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenVerifier checks a signed token of the given kind
type TokenVerifier interface {
	Verify(token string, kind domain.TokenKind) (*domain.TokenClaims, error)
}

// AccessGuard verifies the bearer access token and attaches the caller's identity
// to the context. It never touches the datastore.
func AccessGuard(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authorization header is required",
			})
			return
		}

		claims, err := verifier.Verify(token, domain.AccessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(identityKey, domain.Identity{
			ID:   claims.UserID,
			Role: claims.Role,
		})

		c.Next()
	}
}

// IdentityFrom returns the identity attached by AccessGuard
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// requireIdentity is used by handlers behind AccessGuard
func requireIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authentication required",
		})
	}
	return identity, ok
}
