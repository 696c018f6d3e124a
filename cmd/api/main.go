package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Aadith-Viswam/student-progress/internal/config"
	"github.com/Aadith-Viswam/student-progress/internal/database"
	"github.com/Aadith-Viswam/student-progress/internal/handler"
	"github.com/Aadith-Viswam/student-progress/internal/middleware"
	"github.com/Aadith-Viswam/student-progress/internal/models"
	"github.com/Aadith-Viswam/student-progress/internal/repository"
	"github.com/Aadith-Viswam/student-progress/internal/router"
	"github.com/Aadith-Viswam/student-progress/internal/service"
	"github.com/Aadith-Viswam/student-progress/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.TeacherProfile{},
		&models.Class{},
		&models.Assignment{},
		&models.Submission{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	fileStorage, err := buildStorage(cfg, logger)
	if err != nil {
		log.Fatalf("failed to configure file storage: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentProfileRepository(db)
	teacherRepo := repository.NewTeacherProfileRepository(db)
	classRepo := repository.NewClassRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	authService := service.NewAuthService(userRepo, studentRepo, teacherRepo, classRepo, validate, cfg.JWTSecret, logger)
	classService := service.NewClassService(classRepo, studentRepo, validate, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, classRepo, validate, logger)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, fileStorage, logger)
	gradingService := service.NewGradingService(submissionRepo, assignmentRepo, userRepo, validate, logger)
	recordService := service.NewStudentRecordService(userRepo, studentRepo, classRepo, submissionRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    service.MaxUploadSize + 1<<20,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		ClassHandler:      handler.NewClassHandler(classService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		GradingHandler:    handler.NewGradingHandler(gradingService, logger),
		SubmissionHandler: handler.NewSubmissionHandler(submissionService, logger),
		StudentHandler:    handler.NewStudentHandler(recordService, logger),
		Protect:           middleware.Protect(cfg.JWTSecret, userRepo),
		AuthLimiter:       middleware.RateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildStorage(cfg config.Config, logger zerolog.Logger) (service.FileStorage, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinary(storage.CloudinaryConfig{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
	}

	return storage.NewLocal(cfg.UploadDir, cfg.UploadPublicPath, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
