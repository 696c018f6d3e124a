package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aadith-Viswam/student-progress/internal/config"
	"github.com/Aadith-Viswam/student-progress/internal/handler"
	"github.com/Aadith-Viswam/student-progress/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	ClassHandler      *handler.ClassHandler
	AssignmentHandler *handler.AssignmentHandler
	GradingHandler    *handler.GradingHandler
	SubmissionHandler *handler.SubmissionHandler
	StudentHandler    *handler.StudentHandler
	Protect           fiber.Handler
	AuthLimiter       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	protect := deps.Protect
	if protect == nil {
		protect = func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := deps.AuthLimiter
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Submission artifacts are written to disk and served back statically.
	if cfg.UploadDir != "" {
		app.Static(cfg.UploadPublicPath, cfg.UploadDir)
	}

	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api, protect, limiter)
	}

	if deps.ClassHandler != nil {
		teacher := api.Group("/teacher", protect)
		deps.ClassHandler.Register(teacher)
		if deps.AssignmentHandler != nil {
			deps.AssignmentHandler.Register(teacher)
		}
		if deps.GradingHandler != nil {
			deps.GradingHandler.Register(teacher)
		}
		// Wildcard submission listing goes last so it cannot shadow the
		// static teacher routes.
		if deps.SubmissionHandler != nil {
			deps.SubmissionHandler.RegisterTeacher(teacher)
		}
	}

	student := api.Group("/student")
	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.RegisterStudent(student, protect)
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(student)
	}
}
