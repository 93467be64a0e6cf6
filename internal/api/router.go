package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentalshift/marketplace-api/internal/api/handler"
	"github.com/dentalshift/marketplace-api/internal/api/middleware"
	"github.com/dentalshift/marketplace-api/internal/core/domain"
	"github.com/dentalshift/marketplace-api/internal/core/service"
	mongodb "github.com/dentalshift/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/dentalshift/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	limiter := redisdb.NewLoginLimiter(rdb)

	authService := service.NewAuthService(userRepo, limiter, jwtSecret, tokenTTL, log)
	jobService := service.NewJobService(jobRepo, log)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	jobHandler := handler.NewJobHandler(jobService)
	applicationHandler := handler.NewApplicationHandler(applicationService)

	authed := middleware.Auth(jwtSecret, userRepo)
	clientOnly := middleware.RBAC(domain.RoleClient)
	professionalOnly := middleware.RBAC(domain.RoleProfessional)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authed)

	// --- Job catalog ---
	e.POST("/jobs", jobHandler.Create, authed, clientOnly)
	e.GET("/jobs", jobHandler.List, authed)
	e.GET("/jobs/my-postings", jobHandler.MyPostings, authed, clientOnly)

	// --- Application ledger ---
	e.POST("/jobs/:job_id/apply", applicationHandler.Apply, authed, professionalOnly)
	e.GET("/applications/my-applications", applicationHandler.MyApplications, authed, professionalOnly)
	e.GET("/applications/received", applicationHandler.Received, authed, clientOnly)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)

	return e
}
