package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

const actorIDContextKey = "actor_id"

// Auth returns a gin middleware that validates the Authorization bearer token
// and stores the authenticated user's id in the context for audit stamping.
// Requests without a valid token are rejected with a 401 envelope.
func Auth(jwtSvc jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			abortUnauthorized(c)
			return
		}

		token, err := jwtSvc.ValidateAndParse(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		userID, err := strconv.ParseUint(token.UserID, 10, 32)
		if err != nil || userID == 0 {
			abortUnauthorized(c)
			return
		}

		c.Set(actorIDContextKey, uint(userID))
		c.Next()
	}
}

// ActorID returns the authenticated caller's user id, or zero when the
// request carries no authenticated identity.
func ActorID(c *gin.Context) uint {
	if v, exists := c.Get(actorIDContextKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context) {
	pkg.Error(c, domain.ErrUnauthorized)
	c.Abort()
}
