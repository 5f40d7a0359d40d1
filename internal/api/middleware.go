package api

import (
	"log/slog"

	keycloakauth "github.com/JorgeSaicoski/keycloak-auth"
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/gin-gonic/gin"

	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "middleware"),
)

// userRegistry is the slice of the user service the middleware needs.
type userRegistry interface {
	EnsureUser(id, email, name string) (*db.User, error)
	IsAdmin(id string) (bool, error)
}

func AuthMiddleware() gin.HandlerFunc {
	config := keycloakauth.DefaultConfig()
	config.LoadFromEnv() // Loads KEYCLOAK_URL and KEYCLOAK_REALM

	config.SkipPaths = []string{"/health"}
	config.RequiredClaims = []string{"sub", "preferred_username"}

	tokenAuth := keycloakauth.SimpleAuthMiddleware(config)

	return func(c *gin.Context) {
		// If the upstream gateway already authenticated the user and
		// provided the ID, trust that header and skip JWT validation.
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("userID", userID)
			c.Next()
			return
		}

		// Fallback to standard JWT based authentication.
		tokenAuth(c)
	}
}

// ProvisionUser records the authenticated identity in the local user
// registry so admin reports can enumerate every user. Profile fields
// arrive as gateway headers and may be empty.
func ProvisionUser(userService userRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := keycloakauth.GetUserID(c)
		if !exists {
			c.Next()
			return
		}

		if _, err := userService.EnsureUser(
			userID,
			c.GetHeader("X-User-Email"),
			c.GetHeader("X-User-Name"),
		); err != nil {
			// Registry trouble must not take down the request path; the
			// user just misses admin listings until storage recovers.
			log.Warn("provision-user:ensure-failed", "userID", userID, "err", err)
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes on the registry role.
func RequireAdmin(userService userRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := keycloakauth.GetUserID(c)
		if !exists {
			responses.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		isAdmin, err := userService.IsAdmin(userID)
		if err != nil {
			responses.InternalError(c, "Failed to check user role")
			c.Abort()
			return
		}
		if !isAdmin {
			responses.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}
