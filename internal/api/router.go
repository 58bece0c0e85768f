package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osworks/service-orders/internal/api/handler"
	"github.com/osworks/service-orders/internal/api/middleware"
	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

// Deps bundles everything the router needs to wire its routes. The caller
// (cmd/api) constructs services and repositories; the router only arranges
// handlers and middleware.
type Deps struct {
	Auth       ports.AuthService
	Users      ports.UserService
	Orders     ports.OrderService
	Catalog    ports.CatalogService
	Checklists ports.ChecklistService
	Photos     ports.PhotoService

	Mongo *mongo.Database
	Redis *redis.Client

	// UploadsDir is served read-only under /uploads.
	UploadsDir string

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("service_orders"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	orderHandler := handler.NewOrderHandler(deps.Orders)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	checklistHandler := handler.NewChecklistHandler(deps.Checklists)
	photoHandler := handler.NewPhotoHandler(deps.Photos)

	requireAuth := middleware.Auth(deps.Auth)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)

	auth := e.Group("", requireAuth)
	auth.POST("/auth/logout", authHandler.Logout)
	auth.GET("/auth/me", authHandler.Me)
	auth.GET("/auth/verify", authHandler.Verify)

	// --- Users (mutations are admin-only) ---
	auth.GET("/users", userHandler.List)
	auth.GET("/users/:id", userHandler.Get)
	auth.POST("/users", userHandler.Create, adminOnly)
	auth.PUT("/users/:id", userHandler.Update, adminOnly)
	auth.DELETE("/users/:id", userHandler.Delete, adminOnly)

	// --- Service orders ---
	auth.GET("/orders", orderHandler.List)
	auth.POST("/orders", orderHandler.Create)
	auth.GET("/orders/:id", orderHandler.Get)
	auth.PUT("/orders/:id", orderHandler.Update)
	auth.DELETE("/orders/:id", orderHandler.Delete, adminOnly)
	auth.PUT("/orders/:id/assign", orderHandler.AssignTechnician, adminOnly)
	auth.GET("/technicians", orderHandler.ListTechnicians)

	// --- Clients and equipment ---
	auth.GET("/clients", catalogHandler.ListClients)
	auth.POST("/clients", catalogHandler.CreateClient)
	auth.GET("/equipments", catalogHandler.ListEquipment)
	auth.POST("/equipments", catalogHandler.CreateEquipment)

	// --- Checklists ---
	auth.GET("/checklists", checklistHandler.List)
	auth.POST("/checklists", checklistHandler.Create, adminOnly)
	auth.POST("/checklists/:id/items", checklistHandler.AddItem, adminOnly)
	auth.GET("/orders/:id/responses", checklistHandler.ListResponses)
	auth.PUT("/orders/:id/responses", checklistHandler.SaveResponses)

	// --- Photos ---
	auth.POST("/orders/:id/photos", photoHandler.Upload)
	auth.GET("/orders/:id/photos", photoHandler.ListByOrder)
	auth.DELETE("/photos/:id", photoHandler.Delete)

	// Uploaded files are public once the URL is known; the URLs carry
	// random UUID names.
	e.Static("/uploads", deps.UploadsDir)

	return e
}
