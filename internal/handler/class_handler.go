package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Aadith-Viswam/student-progress/internal/dto"
	"github.com/Aadith-Viswam/student-progress/internal/middleware"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/service"
	"github.com/Aadith-Viswam/student-progress/internal/utils"
)

// ClassHandler manages class endpoints under the teacher surface.
type ClassHandler struct {
	service service.ClassService
	logger  zerolog.Logger
}

// NewClassHandler builds a class handler instance.
func NewClassHandler(service service.ClassService, logger zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		logger:  logger.With().Str("component", "class_handler").Logger(),
	}
}

// Register attaches the class routes to the teacher group.
func (h *ClassHandler) Register(router fiber.Router) {
	router.Post("/classes", middleware.RequireRole(models.RoleTeacher), h.create)
	router.Get("/classes", middleware.RequireRole(models.RoleTeacher), h.listOwned)
	router.Get("/class/:id", h.get)
	router.Get("/students/class/:classId", h.studentsByClass)
}

func (h *ClassHandler) create(c *fiber.Ctx) error {
	var payload dto.ClassCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	class, err := h.service.Create(c.Context(), payload, callerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, "class created", class)
}

func (h *ClassHandler) listOwned(c *fiber.Ctx) error {
	classes, err := h.service.ListOwned(c.Context(), callerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "classes retrieved", classes)
}

func (h *ClassHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	class, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "class retrieved", class)
}

func (h *ClassHandler) studentsByClass(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.StudentsByClass(c.Context(), classID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "students retrieved", students)
}

func (h *ClassHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeacherRoleRequired):
		return utils.Error(c, fiber.StatusForbidden, "only teachers may manage classes")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.Error(c, fiber.StatusNotFound, "class not found")
	case isValidationError(err):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
