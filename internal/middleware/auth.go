package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/havenlabs/haven/backend/internal/apierror"
	"github.com/havenlabs/haven/backend/internal/logger"
	"github.com/havenlabs/haven/backend/pkg/supabase"
)

// Auth verifies the bearer token against Supabase and stores the resolved
// user on the gin context plus the request context for logging.
func Auth(client *supabase.Client) gin.HandlerFunc {
	unauthorized := func(c *gin.Context, reason string, err error) {
		log := logger.FromContext(c.Request.Context())
		if err != nil {
			log.Warn("authentication failed", logger.String("reason", reason), logger.Err(err))
		} else {
			log.Debug("authentication failed", logger.String("reason", reason))
		}
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
		c.Abort()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "missing authorization header", nil)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			unauthorized(c, "invalid authorization format", nil)
			return
		}

		user, err := client.VerifyToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "token verification error", err)
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Set("user_token", token) // kept for RLS-scoped queries

		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
