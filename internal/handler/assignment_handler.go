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

// AssignmentHandler manages assignment endpoints under the teacher surface.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler builds an assignment handler instance.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the assignment routes to the teacher group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Post("/assignments/:classId", middleware.RequireRole(models.RoleTeacher), h.create)
	router.Get("/assignment/:classId", h.listByClass)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Create(c.Context(), classID, payload, callerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) listByClass(c *fiber.Ctx) error {
	classID, err := parseUintParam(c, "classId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	assignments, err := h.service.ListByClass(c.Context(), classID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeacherRoleRequired):
		return utils.Error(c, fiber.StatusForbidden, "only teachers may create assignments")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.Error(c, fiber.StatusNotFound, "class not found")
	case isValidationError(err):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
