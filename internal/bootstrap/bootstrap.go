package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/busiadev/ecdeavotmis/internal/app/controllers"
	appMigrations "github.com/busiadev/ecdeavotmis/internal/app/migrations"
	appRepos "github.com/busiadev/ecdeavotmis/internal/app/repositories"
	appRoutes "github.com/busiadev/ecdeavotmis/internal/app/routes"
	appServices "github.com/busiadev/ecdeavotmis/internal/app/services"
	"github.com/busiadev/ecdeavotmis/internal/config"
	"github.com/busiadev/ecdeavotmis/internal/db"
	appMiddleware "github.com/busiadev/ecdeavotmis/internal/middleware"
	pkgAuth "github.com/busiadev/ecdeavotmis/internal/pkg/auth"
	"github.com/busiadev/ecdeavotmis/internal/pkg/filestorage"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
	"github.com/busiadev/ecdeavotmis/internal/pkg/logger"
	"github.com/busiadev/ecdeavotmis/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	InstitutionService    appServices.InstitutionService
	LearnerService        appServices.LearnerService
	AssetService          appServices.AssetService
	BookService           appServices.BookService
	ReceiptService        appServices.ReceiptService
	DeceasedService       appServices.DeceasedService
	DashboardService      appServices.DashboardService
	AuthController        *appControllers.AuthController
	InstitutionController *appControllers.InstitutionController
	LearnerController     *appControllers.LearnerController
	AssetController       *appControllers.AssetController
	BookController        *appControllers.BookController
	ReceiptController     *appControllers.ReceiptController
	DeceasedController    *appControllers.DeceasedController
	DashboardController   *appControllers.DashboardController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
	FileStorage           *filestorage.LocalStorage
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// The base URL must match the static file serving endpoint
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.InstitutionService = appServices.NewInstitutionService(deps.Repos.InstitutionRepository, cfg.County.Name)
	deps.LearnerService = appServices.NewLearnerService(deps.Repos.LearnerRepository)
	deps.AssetService = appServices.NewAssetService(deps.Repos.AssetRepository)
	deps.BookService = appServices.NewBookService(deps.Repos.BookRepository)
	deps.ReceiptService = appServices.NewReceiptService(
		deps.Repos.ReceiptRepository,
		deps.FileStorage,
		cfg.MaxUploadBytes(),
	)
	deps.DeceasedService = appServices.NewDeceasedService(deps.Repos.DeceasedRepository, deps.Repos.LearnerRepository)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.LearnerRepository,
		deps.Repos.AssetRepository,
		deps.Repos.BookRepository,
		deps.Repos.ReceiptRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.InstitutionController = appControllers.NewInstitutionController(deps.InstitutionService)
	deps.LearnerController = appControllers.NewLearnerController(deps.LearnerService)
	deps.AssetController = appControllers.NewAssetController(deps.AssetService)
	deps.BookController = appControllers.NewBookController(deps.BookService)
	deps.ReceiptController = appControllers.NewReceiptController(deps.ReceiptService)
	deps.DeceasedController = appControllers.NewDeceasedController(deps.DeceasedService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger())
	router.Use(gin.Recovery())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.InstitutionController,
		deps.LearnerController,
		deps.AssetController,
		deps.BookController,
		deps.ReceiptController,
		deps.DeceasedController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
