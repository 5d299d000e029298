package auth

import (
	"strings"
	"time"

	"union-backend/internal/apperr"
	"union-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

func RegisterHandler(users *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return apperr.Validation("Both username and password are required")
		}
		if len(body.Password) < 6 {
			return apperr.Validation("Password must be at least 6 characters")
		}

		user, err := users.Create(body.Username, body.Password)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "User registered",
			"user":    UserResponse{ID: user.ID, Username: user.Username},
		})
	}
}

func LoginHandler(cfg *config.Config, users *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Request body could not be parsed")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return apperr.Validation("Both username and password are required")
		}

		user, err := users.Authenticate(body.Username, body.Password)
		if err != nil {
			return err
		}

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return apperr.Internal("Failed to issue the token")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Logged in",
			"token":   token,
			"user":    UserResponse{ID: user.ID, Username: user.Username},
		})
	}
}

func MeHandler(users *Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(uint)

		user, err := users.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("The user no longer exists")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"user": UserResponse{
				ID:        user.ID,
				Username:  user.Username,
				CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
			},
		})
	}
}

// LogoutHandler revokes the presented token when the revocation list is
// enabled; otherwise logging out is the client discarding its token.
func LogoutHandler(revoked *RevocationList) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if revoked.Enabled() {
			tokenID, _ := c.Locals(CtxTokenIDKey).(string)
			expiresAt, _ := c.Locals(CtxTokenExpKey).(time.Time)
			revoked.Revoke(tokenID, expiresAt)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Logged out",
		})
	}
}
