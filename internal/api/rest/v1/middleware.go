package v1

import (
	"net/http"
	"strings"

	"github.com/BizLenz/api/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "authClaims"

// ScopeRead allows read access to the caller's plan data.
const ScopeRead = "bizlenz/read"

// ScopeWrite allows uploads, deletes and profile changes.
const ScopeWrite = "bizlenz/write"

// Authentication verifies the bearer token when one is present and stores
// the claims in the request context. Requests without a token pass through
// unauthenticated; protected routes reject them later.
func Authentication(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.Next()
			return
		}

		rawToken, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			respondError(ctx, http.StatusUnauthorized, "malformed authorization header")
			ctx.Abort()
			return
		}

		claims, err := verifier.Verify(ctx.Request.Context(), rawToken)
		if err != nil {
			respondError(ctx, http.StatusUnauthorized, "invalid token")
			ctx.Abort()
			return
		}
		if claims.Subject == "" {
			respondError(ctx, http.StatusBadRequest, "token is missing a subject")
			ctx.Abort()
			return
		}

		ctx.Set(claimsContextKey, claims)
		ctx.Next()
	}
}

// RequireScope rejects requests that lack a verified token with the given
// scope. Admins pass regardless of scopes.
func RequireScope(scope string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := ClaimsFromContext(ctx)
		if claims == nil {
			respondError(ctx, http.StatusUnauthorized, "authentication required")
			ctx.Abort()
			return
		}
		if !claims.HasScope(scope) && !claims.IsAdmin() {
			respondError(ctx, http.StatusForbidden, "insufficient scope")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// RequireAdmin rejects callers that are not members of an admin group.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := ClaimsFromContext(ctx)
		if claims == nil {
			respondError(ctx, http.StatusUnauthorized, "authentication required")
			ctx.Abort()
			return
		}
		if !claims.IsAdmin() {
			respondError(ctx, http.StatusForbidden, "admin access required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// ClaimsFromContext returns the verified claims or nil for anonymous
// requests.
func ClaimsFromContext(ctx *gin.Context) *auth.Claims {
	value, exists := ctx.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func respondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorResponse{Message: &message})
}
