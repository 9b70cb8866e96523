package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/rahulk/campusmate/internal/app/controllers"
	appMigrations "github.com/rahulk/campusmate/internal/app/migrations"
	appRepos "github.com/rahulk/campusmate/internal/app/repositories"
	appRoutes "github.com/rahulk/campusmate/internal/app/routes"
	appServices "github.com/rahulk/campusmate/internal/app/services"
	"github.com/rahulk/campusmate/internal/config"
	"github.com/rahulk/campusmate/internal/db"
	appMiddleware "github.com/rahulk/campusmate/internal/middleware"
	"github.com/rahulk/campusmate/internal/pkg/logger"
	"github.com/rahulk/campusmate/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	EnrollmentService    *appServices.EnrollmentService
	IdentifierService    *appServices.IdentifierService
	StudentService       *appServices.StudentService
	TeacherService       *appServices.TeacherService
	EnrollmentController *appControllers.EnrollmentController
	StudentController    *appControllers.StudentController
	TeacherController    *appControllers.TeacherController
	IdentityMiddleware   *appMiddleware.IdentityMiddleware
	Repos                *appRepos.Repositories
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), database, cfg.Institute.AcademicYear, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.IdentifierService = appServices.NewIdentifierService(
		deps.Repos.DepartmentRepository,
		deps.Repos.CounterRepository,
		deps.Repos.HandleDirectory,
	)

	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.CourseRepository,
		deps.Repos.SectionRepository,
		deps.Repos.EnrollmentRepository,
		lgr,
	)

	deps.StudentService = appServices.NewStudentService(
		deps.Repos.StudentRepository,
		deps.Repos.DepartmentRepository,
		deps.IdentifierService,
		cfg.Institute.EmailDomain,
		cfg.Institute.InitialPassword,
		lgr,
	)

	deps.TeacherService = appServices.NewTeacherService(
		deps.Repos.TeacherRepository,
		deps.Repos.DepartmentRepository,
		deps.IdentifierService,
		cfg.Institute.EmailDomain,
		cfg.Institute.InitialPassword,
		lgr,
	)

	deps.IdentityMiddleware = appMiddleware.NewIdentityMiddleware(cfg.JWT.Secret, cfg.JWT.Issuer)

	deps.EnrollmentController = appControllers.NewEnrollmentController(deps.EnrollmentService, cfg.Institute.AcademicYear)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)

	return deps, nil
}

// SetupRouter builds the gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.EnrollmentController,
		deps.StudentController,
		deps.TeacherController,
		deps.IdentityMiddleware,
	)

	return router
}
