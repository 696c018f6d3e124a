package utils

import "github.com/gofiber/fiber/v2"

// APIResponse is the uniform JSON envelope returned by every endpoint.
// Failure messages stay short and human-readable; internal errors and stack
// traces are never exposed in the body.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c *fiber.Ctx, status int, message string, data interface{}) error {
	if status == 0 {
		status = fiber.StatusOK
	}
	if message == "" {
		message = "success"
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "error"
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}
