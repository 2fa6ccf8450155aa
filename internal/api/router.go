package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/baseapi/user-api/docs"
	"github.com/baseapi/user-api/internal/api/handler"
	"github.com/baseapi/user-api/internal/api/middleware"
	"github.com/baseapi/user-api/internal/core/domain"
	"github.com/baseapi/user-api/internal/core/service"
	"github.com/baseapi/user-api/internal/core/token"
	"github.com/baseapi/user-api/internal/infrastructure/config"
	mongodb "github.com/baseapi/user-api/internal/infrastructure/db/mongo"
	redisdb "github.com/baseapi/user-api/internal/infrastructure/db/redis"
	"github.com/baseapi/user-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	signer, err := newSigner(cfg.JWT)
	if err != nil {
		return nil, nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("userapi"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(0, auditService, log)

	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
	authService := service.NewAuthService(userRepo, roleRepo, signer, throttle, dispatcher, log)
	userService := service.NewUserService(userRepo, roleRepo, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)

	authMiddleware := middleware.Auth(signer, dispatcher, log)

	// --- Auth ---
	e.POST("/auth", authHandler.Login)

	// --- Users (all protected) ---
	users := e.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id", userHandler.Patch)
	users.DELETE("/:id", userHandler.Delete)

	// --- Audit trail (admins only) ---
	audit := e.Group("/audit", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	audit.GET("/events", auditHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher, nil
}

// newSigner builds the token signer the configured way: a symmetric secret
// for HS256 or a PEM keypair for RS256.
func newSigner(cfg config.JWTConfig) (token.Signer, error) {
	switch cfg.Alg {
	case "HS256", "":
		if cfg.Secret == "" {
			return nil, fmt.Errorf("jwt: JWT_SECRET is required for HS256")
		}
		return token.NewHS256Signer([]byte(cfg.Secret), cfg.Issuer, cfg.TTL), nil
	case "RS256":
		return token.LoadRS256Signer(cfg.PrivateKeyFile, cfg.PublicKeyFile, cfg.Issuer, cfg.TTL)
	default:
		return nil, fmt.Errorf("jwt: unsupported algorithm %q", cfg.Alg)
	}
}
