package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Aadith-Viswam/student-progress/internal/service"
	"github.com/Aadith-Viswam/student-progress/internal/utils"
)

// StudentHandler serves the denormalized academic record view.
type StudentHandler struct {
	service service.StudentRecordService
	logger  zerolog.Logger
}

// NewStudentHandler builds a student handler instance.
func NewStudentHandler(service service.StudentRecordService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the record route to the student group. It must come
// after the static student routes so the wildcard cannot shadow them.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/:id", h.academicRecord)
}

func (h *StudentHandler) academicRecord(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := h.service.AcademicRecord(c.Context(), userID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, "student record retrieved", record)
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.Error(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrClassNotFound):
		return utils.Error(c, fiber.StatusNotFound, "class not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
