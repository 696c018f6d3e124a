package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Aadith-Viswam/student-progress/internal/middleware"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/service"
	"github.com/Aadith-Viswam/student-progress/internal/utils"
)

// SubmissionHandler manages the student submit path and submission listings.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// RegisterStudent attaches the upload route to the student group. The
// academic record read on the same group is public, so authentication is
// applied per route here rather than on the group.
func (h *SubmissionHandler) RegisterStudent(router fiber.Router, protect fiber.Handler) {
	router.Post("/assignments/submit/:assignmentId", protect, middleware.RequireRole(models.RoleStudent), h.submit)
}

// RegisterTeacher attaches the submission listings to the teacher group.
// Both historical paths are kept; the wildcard variant must be registered
// after the static teacher routes so it cannot shadow them.
func (h *SubmissionHandler) RegisterTeacher(router fiber.Router) {
	router.Get("/assignments/:assignmentId/submissions", h.listForAssignment)
	router.Get("/:assignmentId/submissions", h.listForAssignment)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	submission, err := h.service.Submit(c.Context(), assignmentID, file, callerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "assignment submitted", submission)
}

func (h *SubmissionHandler) listForAssignment(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "assignmentId")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	// The caller's identity decides the scope: students only ever see their
	// own row here, regardless of anything in the request.
	response, err := h.service.ListForAssignment(c.Context(), assignmentID, callerFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "submissions retrieved", response)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentRoleRequired):
		return utils.Error(c, fiber.StatusForbidden, "only students may submit assignments")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.Error(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrSubmissionFileRequired):
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	case errors.Is(err, service.ErrFileTooLarge):
		return utils.Error(c, fiber.StatusBadRequest, "file exceeds the 5 MB limit")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		return utils.Error(c, fiber.StatusBadRequest, "only pdf, doc, docx, jpg and png files are allowed")
	case isValidationError(err):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
