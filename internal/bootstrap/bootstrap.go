package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/auth"
	appControllers "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/controllers"
	appMigrations "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/migrations"
	appRepos "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/repositories"
	appRoutes "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/routes"
	appServices "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/services"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/config"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/db"
	appMiddleware "github.com/Neha-Elizabeth-Thomas/HackNet/internal/middleware"
	pkgAuth "github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/auth"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/email"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/extraction"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/filestorage"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/helpers"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/lock"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/scheduler"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/seed"
)

// DeadlineSweepJob is the scheduler name of the daily reminder sweep.
const DeadlineSweepJob = "deadline-sweep"

// JobTrigger runs a registered job outside its cron schedule.
type JobTrigger interface {
	Trigger(ctx context.Context, name string) error
}

// RunStartupSweep runs the deadline sweep once, for deployments that should
// not wait for the first cron tick. Failures are logged only.
func RunStartupSweep(jobs JobTrigger, lgr zerolog.Logger) {
	lgr.Info().Str("job", DeadlineSweepJob).Msg("Running startup sweep")
	if err := jobs.Trigger(context.Background(), DeadlineSweepJob); err != nil {
		lgr.Error().Err(err).Str("job", DeadlineSweepJob).Msg("Startup sweep failed")
	}
}

// documentPrefix is the key prefix archived syllabus files are stored under.
const documentPrefix = "syllabi"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService     appServices.AuthService
	CourseService   appServices.CourseService
	SyllabusService appServices.SyllabusService
	ExportService   appServices.ExportService
	DeadlineService appServices.DeadlineService

	AuthController     *appControllers.AuthController
	CourseController   *appControllers.CourseController
	SyllabusController *appControllers.SyllabusController
	AuthMiddleware     *appMiddleware.AuthMiddleware

	Database     *db.PostgresDB
	Repos        *appRepos.Repositories
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	Documents    filestorage.DocumentStore
	Scheduler    *scheduler.Scheduler
	Redis        *redis.Client
	Logger       zerolog.Logger
}

// Close releases connections owned by the dependencies. The database is closed by its owner.
func (d *Dependencies) Close() error {
	if d.Redis != nil {
		return d.Redis.Close()
	}
	return nil
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.EqualFold(cfg.Logging.Format, "text")

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", logLevel.String()).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
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
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.Up(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	account := seed.FacultyAccount{Name: cfg.Seed.Name, Email: cfg.Seed.Email, Password: cfg.Seed.Password}
	if err := seed.CreateDefaultData(context.Background(), appRepos.NewUserRepository(database), account, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

func newDocumentStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (filestorage.DocumentStore, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case config.StorageDriverLocal:
		store, err := filestorage.NewLocalStorage(cfg.Storage.LocalPath, documentPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageDriverMinio:
		store, err := filestorage.NewMinioStorage(ctx, filestorage.MinioConfig{
			Endpoint:  cfg.Storage.Minio.Endpoint,
			AccessKey: cfg.Storage.Minio.AccessKey,
			SecretKey: cfg.Storage.Minio.SecretKey,
			Bucket:    cfg.Storage.Minio.Bucket,
			UseSSL:    cfg.Storage.Minio.UseSSL,
		}, documentPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		lgr.Info().Msg("Document archiving disabled")
		return nil, nil
	}
}

func newGenerator(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) extraction.Generator {
	if cfg.AI.APIKey == "" {
		lgr.Warn().Msg("No Gemini API key configured, syllabus uploads will fail with an upstream error")
		return extraction.Unconfigured{}
	}
	gen, err := extraction.NewGeminiGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to create Gemini client, syllabus uploads will fail")
		return extraction.Unconfigured{}
	}
	return gen
}

func newSender(cfg *config.Config, lgr zerolog.Logger) email.Sender {
	from := email.Address{Name: cfg.Email.FromName, Email: cfg.Email.FromEmail}
	switch strings.ToLower(cfg.Email.Provider) {
	case config.EmailProviderSMTP:
		return email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     from,
			UseTLS:   cfg.Email.UseTLS,
		}, lgr)
	case config.EmailProviderSendGrid:
		return email.NewSendGridSender(cfg.Email.SendGridAPIKey, from)
	default:
		return email.NewLogSender(lgr)
	}
}

func newLocker(cfg *config.Config, lgr zerolog.Logger) (lock.Locker, *redis.Client) {
	if cfg.Redis.Addr == "" {
		return lock.NewLocalLocker(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Using Redis for the scheduler lock")
	return lock.NewRedisLocker(client, "syllabus-tracker:lock:"), client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	ctx := context.Background()
	deps := &Dependencies{Database: database, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.Expiration, 720*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	documents, err := newDocumentStore(ctx, cfg, logger.Component("filestorage"))
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize document storage")
		return nil, fmt.Errorf("failed to initialize document storage: %w", err)
	}
	deps.Documents = documents

	extractor := extraction.NewExtractor(
		newGenerator(ctx, cfg, lgr),
		helpers.ParseDuration(cfg.AI.Timeout, 90*time.Second),
		logger.Component("extraction"),
	)
	notifier := email.NewNotifier(
		newSender(cfg, logger.Component("email")),
		helpers.ParseDuration(cfg.Email.Timeout, 30*time.Second),
		logger.Component("email"),
	)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.CourseRepository, deps.Repos.SyllabusRepository)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, logger.Component("auth"))
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.SyllabusRepository,
		deps.Documents,
		deps.AuthzService,
		logger.Component("courses"),
	)
	deps.SyllabusService = appServices.NewSyllabusService(
		deps.Repos.CourseRepository,
		deps.Repos.SyllabusRepository,
		extractor,
		deps.Documents,
		deps.AuthzService,
		logger.Component("syllabus"),
	)
	deps.ExportService = appServices.NewExportService(deps.Repos.SyllabusRepository, deps.AuthzService)
	deps.DeadlineService = appServices.NewDeadlineService(
		deps.Repos.SyllabusRepository,
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
		notifier,
		appServices.DeadlineConfig{Location: cfg.SchedulerLocation(), WindowDays: cfg.Scheduler.WindowDays},
		logger.Component("deadlines"),
	)

	if cfg.Scheduler.Enabled {
		locker, client := newLocker(cfg, lgr)
		deps.Redis = client
		deps.Scheduler = scheduler.New(
			cfg.SchedulerLocation(),
			locker,
			helpers.ParseDuration(cfg.Scheduler.LockTTL, 30*time.Minute),
			logger.Component("scheduler"),
		)
		sweep := func(ctx context.Context) error {
			_, err := deps.DeadlineService.Sweep(ctx)
			if errors.Is(err, appServices.ErrSweepInProgress) {
				return nil
			}
			return err
		}
		if err := deps.Scheduler.Register(DeadlineSweepJob, cfg.Scheduler.Spec, sweep); err != nil {
			_ = deps.Close()
			return nil, fmt.Errorf("failed to schedule deadline sweep: %w", err)
		}
	} else {
		lgr.Info().Msg("Deadline scheduler disabled")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		deps.Repos.UserRepository,
		helpers.ParseDuration(cfg.Cache.PrincipalTTL, time.Minute),
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.ExportService, lgr)
	deps.SyllabusController = appControllers.NewSyllabusController(deps.SyllabusService, lgr)

	appMiddleware.SetupValidator()

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.SyllabusController,
		deps.AuthMiddleware,
		deps.Database,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
