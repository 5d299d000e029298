package auth

import (
	"strings"
	"time"

	"union-backend/internal/apperr"
	"union-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxTokenIDKey  = "token_id"
	CtxTokenExpKey = "token_exp"
)

// JWTMiddleware checks the Authorization header, validates the token and
// confirms the subject still exists. A token for a deleted user is
// rejected even if its signature and expiry are fine.
func JWTMiddleware(cfg *config.Config, users *Repository, revoked *RevocationList) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Unauthorized("Access token was not provided")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return apperr.Unauthorized("Authorization header must be 'Bearer <token>'")
		}

		claims, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return apperr.Forbidden("Token is expired or invalid")
		}

		if revoked.Revoked(claims.ID) {
			return apperr.Forbidden("Token has been revoked")
		}

		user, err := users.FindByID(claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.Forbidden("The user behind this token no longer exists")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUsernameKey, claims.Username)
		c.Locals(CtxTokenIDKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Locals(CtxTokenExpKey, claims.ExpiresAt.Time)
		} else {
			c.Locals(CtxTokenExpKey, time.Time{})
		}

		return c.Next()
	}
}
