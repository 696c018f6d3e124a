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

// GradingHandler manages the marks endpoint under the teacher surface.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler builds a grading handler instance.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches the grading route to the teacher group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("/marks/:assignmentId", middleware.RequireRole(models.RoleTeacher), h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Grade(c.Context(), assignmentID, payload, callerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "marks submitted", submission)
}

func (h *GradingHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrTeacherRoleRequired):
		return utils.Error(c, fiber.StatusForbidden, "only teachers may submit marks")
	case errors.Is(err, service.ErrNotAssignmentOwner):
		return utils.Error(c, fiber.StatusForbidden, "you are not allowed to grade this assignment")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.Error(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.Error(c, fiber.StatusNotFound, "student not found")
	case isValidationError(err):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
