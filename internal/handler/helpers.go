package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/service"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := c.Params(key)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}

// callerFromContext builds the explicit caller value passed to services from
// the identity the auth middleware resolved.
func callerFromContext(c *fiber.Ctx) service.Caller {
	caller := service.Caller{}
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			caller.ID = id
		}
	}
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			caller.Role = role
		}
	}
	return caller
}

func currentUserFromContext(c *fiber.Ctx) (models.User, bool) {
	if v := c.Locals("current_user"); v != nil {
		if user, ok := v.(models.User); ok {
			return user, true
		}
	}
	return models.User{}, false
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
