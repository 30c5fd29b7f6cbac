package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxIdentityKey = "identity"

// RequireAuth validates "Authorization: Bearer <token>".
// A missing or malformed header is 401; a bad signature or an expired token is 403.
func RequireAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abort(c, http.StatusUnauthorized, CodeUnauthenticated, "Token tidak ada")
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, CodeUnauthenticated, "Token tidak valid")
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			abort(c, http.StatusUnauthorized, CodeUnauthenticated, "Token tidak valid")
			return
		}

		claims, err := v.Verify(tokenStr)
		if err != nil {
			abort(c, http.StatusForbidden, CodeForbidden, "Token salah / expired")
			return
		}

		c.Set(CtxIdentityKey, claims.Identity())
		c.Next()
	}
}

// RequireRole lets through identities whose role is one of roles. It reads
// the identity stored by RequireAuth, so it must run after it.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		if r = strings.TrimSpace(r); r != "" {
			allowed[r] = true
		}
	}

	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			abort(c, http.StatusUnauthorized, CodeUnauthenticated, "Token tidak ada")
			return
		}
		if !allowed[id.Role] {
			abort(c, http.StatusForbidden, CodeForbidden, "Akses ditolak")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireAuth.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func abort(c *gin.Context, status int, code Code, msg string) {
	c.AbortWithStatusJSON(status, errorBody(code, msg))
}
