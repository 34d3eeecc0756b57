// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/middleware"
	"github.com/PaintToxic22/sistema-rastreo/internal/delivery/http/router/handler"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	ShipmentHandler *handler.ShipmentHandler
	FreightHandler  *handler.FreightHandler
	TrackingHandler *handler.TrackingHandler
	SettingsHandler *handler.SettingsHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	shipmentHandler *handler.ShipmentHandler
	freightHandler  *handler.FreightHandler
	trackingHandler *handler.TrackingHandler
	settingsHandler *handler.SettingsHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		shipmentHandler: params.ShipmentHandler,
		freightHandler:  params.FreightHandler,
		trackingHandler: params.TrackingHandler,
		settingsHandler: params.SettingsHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public routes: account creation, login and tracking lookups. The
	// tracking endpoints stay open so recipients can follow a parcel
	// without an account.
	e.POST("/registro", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)
	e.GET("/tracking/:codigo", r.trackingHandler.Track)
	e.GET("/encomiendas/codigo/:codigo", r.shipmentHandler.GetByCode)
	e.GET("/configuracion", r.settingsHandler.All)

	// Session routes that require authentication
	sessionGroup := e.Group("")
	sessionGroup.Use(r.authMiddleware.Authenticate)
	{
		sessionGroup.GET("/me", r.authHandler.Me)
		sessionGroup.POST("/logout", r.authHandler.Logout)
	}

	// Writing configuration is admin-only
	e.PUT("/configuracion", r.settingsHandler.Update,
		r.authMiddleware.Authenticate, r.authMiddleware.RequireRoles(entity.RoleAdmin))

	// Shipment routes; role checks live in the use cases, which also scope
	// listings to what the actor may see.
	shipmentGroup := e.Group("/encomiendas")
	shipmentGroup.Use(r.authMiddleware.Authenticate)
	{
		shipmentGroup.GET("", r.shipmentHandler.List)
		shipmentGroup.POST("", r.shipmentHandler.Create)
		shipmentGroup.GET("/estadisticas", r.shipmentHandler.Stats)
		shipmentGroup.GET("/:id", r.shipmentHandler.GetByID)
		shipmentGroup.PATCH("/:id/estado", r.shipmentHandler.ChangeStatus)
		shipmentGroup.PATCH("/:id/asignar-chofer", r.shipmentHandler.AssignDriver)
		shipmentGroup.PATCH("/:id/entregar", r.shipmentHandler.RecordDelivery)
	}

	// Freight order routes
	freightGroup := e.Group("/ordenes")
	freightGroup.Use(r.authMiddleware.Authenticate)
	{
		freightGroup.GET("", r.freightHandler.List)
		freightGroup.POST("", r.freightHandler.Create)
		freightGroup.PATCH("/:numero/estado", r.freightHandler.ChangeStatus)
	}

	// User administration routes are admin-only at the route level; the use
	// cases enforce the same capability again for non-HTTP callers.
	userGroup := e.Group("/usuarios")
	userGroup.Use(r.authMiddleware.Authenticate)
	userGroup.Use(r.authMiddleware.RequireRoles(entity.RoleAdmin))
	{
		userGroup.GET("", r.userHandler.List)
		userGroup.GET("/:id", r.userHandler.GetByID)
		userGroup.PUT("/:id", r.userHandler.Update)
		userGroup.DELETE("/:id", r.userHandler.Delete)
	}
}
