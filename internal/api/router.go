package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffcore/employee-system/internal/api/handler"
	"github.com/staffcore/employee-system/internal/api/middleware"
	"github.com/staffcore/employee-system/internal/core/ports"
)

// Dependencies bundles everything the router needs to register routes.
type Dependencies struct {
	Users          ports.UserService
	Roles          ports.RoleService
	Tokens         ports.TokenService
	Images         ports.ImageStore
	AccessTokenTTL time.Duration

	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Users, deps.Tokens, deps.AccessTokenTTL)
	userHandler := handler.NewUserHandler(deps.Users, deps.Images)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	filesHandler := handler.NewFilesHandler(deps.Images)
	authRequired := middleware.Auth(deps.Users)

	v1 := e.Group("/api/v1")

	// --- Login and password recovery (no auth required) ---
	login := v1.Group("/login")
	login.POST("/access-token", authHandler.Login)
	login.POST("/password-recovery/:username", authHandler.RecoverPassword)
	login.POST("/reset-password", authHandler.ResetPassword)

	// --- Users ---
	users := v1.Group("/users", authRequired)
	users.GET("", userHandler.List, middleware.RequireAdmin)
	users.POST("", userHandler.Create, middleware.RequireAdmin)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateMe)
	users.PATCH("/me/password", userHandler.UpdatePassword)
	users.GET("/:id", userHandler.GetByID) // self-or-admin, checked in the handler
	users.PATCH("/:id", userHandler.Update, middleware.RequireAdmin)
	users.PATCH("/:id/terminate", userHandler.Terminate, middleware.RequireOwner)
	users.DELETE("/:id", userHandler.Delete, middleware.RequireOwner)

	// --- Stored files ---
	files := v1.Group("/files", authRequired)
	files.GET("/images", filesHandler.GetImage)

	// --- Roles (admin only) ---
	roles := v1.Group("/roles", authRequired, middleware.RequireAdmin)
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.GET("/:id", roleHandler.GetByID)
	roles.PATCH("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
