package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/middleware"
	"github.com/Aadith-Viswam/student-progress/internal/service"
	"github.com/Aadith-Viswam/student-progress/internal/utils"
)

// AuthHandler manages signup, login and session endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler builds an auth handler instance.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the auth routes. The protect middleware gates the
// session-aware reads; the limiter slows brute-force attempts on the
// credential endpoints.
func (h *AuthHandler) Register(router fiber.Router, protect fiber.Handler, limiter fiber.Handler) {
	router.Post("/signup", limiter, h.signup)
	router.Post("/login", limiter, h.login)
	router.Post("/logout", h.logout)
	router.Get("/check", protect, h.check)
	router.Get("/profile", protect, h.profile)
}

func (h *AuthHandler) signup(c *fiber.Ctx) error {
	var payload dto.SignupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Signup(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	h.setSessionCookie(c, response.Token)

	return utils.Success(c, fiber.StatusCreated, "signup successful", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Login(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	h.setSessionCookie(c, response.Token)

	return utils.Success(c, fiber.StatusOK, "login successful", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(-time.Hour),
	})

	return utils.Success(c, fiber.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) check(c *fiber.Ctx) error {
	user, ok := currentUserFromContext(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}

	return utils.Success(c, fiber.StatusOK, "session valid", dto.NewUserResponse(user))
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	caller := callerFromContext(c)

	response, err := h.service.Profile(c.Context(), caller.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "profile retrieved", response)
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(service.TokenTTL),
	})
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return utils.Error(c, fiber.StatusBadRequest, "email already registered")
	case errors.Is(err, service.ErrRegNoTaken):
		return utils.Error(c, fiber.StatusBadRequest, "registration number already in use")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.Error(c, fiber.StatusBadRequest, "invalid email or password")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.Error(c, fiber.StatusNotFound, "class not found")
	case errors.Is(err, service.ErrUserNotFound):
		return utils.Error(c, fiber.StatusNotFound, "user not found")
	case isValidationError(err):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
