package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Aadith-Viswam/student-progress/internal/repository"
	"github.com/Aadith-Viswam/student-progress/internal/utils"
)

// TokenCookie is the name of the HTTP-only session cookie.
const TokenCookie = "token"

// Protect returns a middleware that resolves the bearer credential to a user
// record. The token is accepted from the session cookie or the Authorization
// header. The referenced user must still exist; a valid token for a deleted
// account is rejected. On success the resolved user is attached to the
// request locals so no downstream component re-resolves identity.
func Protect(secret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.Error(c, fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.Error(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID, ok := extractUserID(claims)
		if !ok {
			return utils.Error(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.Error(c, fiber.StatusUnauthorized, "user not found")
			}
			return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("current_user", user)

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) string {
	if cookie := strings.TrimSpace(c.Cookies(TokenCookie)); cookie != "" {
		return cookie
	}

	authorization := c.Get("Authorization")
	const bearer = "Bearer "
	if len(authorization) > len(bearer) && strings.EqualFold(authorization[:len(bearer)], bearer) {
		return strings.TrimSpace(authorization[len(bearer):])
	}

	return ""
}

func extractUserID(claims jwt.MapClaims) (uint, bool) {
	for _, key := range []string{"id", "sub", "user_id"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			if v >= 0 {
				return uint(v), true
			}
		case int:
			if v >= 0 {
				return uint(v), true
			}
		}
	}

	return 0, false
}
