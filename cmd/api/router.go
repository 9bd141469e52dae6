package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"commanders-backend/internal/shared/middleware"
	"commanders-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigin),
	)

	// Local storage driver serve uploads trực tiếp
	if c.Config.Storage.Driver == "local" {
		router.Static("/uploads", c.Config.Storage.LocalDir)
	}

	router.GET("/health", healthCheckHandler(c))

	api := router.Group("/api")
	{
		setupCardRoutes(api, c)
		setupProposalRoutes(api, c)
		setupAuthRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

// ========================================
// PUBLIC CARD ROUTES
// ========================================
func setupCardRoutes(api *gin.RouterGroup, c *container.Container) {
	cards := api.Group("/cards")
	{
		cards.GET("", c.CardHandler.ListApproved)
		cards.GET("/all", c.CardHandler.ListAll)
		cards.GET("/:id", c.CardHandler.GetByID)
	}
}

// ========================================
// PUBLIC PROPOSAL ROUTES
// ========================================
func setupProposalRoutes(api *gin.RouterGroup, c *container.Container) {
	proposals := api.Group("/proposals")
	{
		proposals.GET("", c.ProposalHandler.ListPublic)
		proposals.POST("", c.ProposalHandler.Create)
		proposals.GET("/:id", c.ProposalHandler.GetByID)
	}
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
	}
}

// ========================================
// ADMIN ROUTES (bearer token + role=admin)
// ========================================
func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := api.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.AdminMiddleware(),
	)
	{
		cards := admin.Group("/cards")
		{
			cards.POST("", c.CardHandler.Create)
			cards.GET("/export", c.CardHandler.Export)
			cards.PUT("/:id", c.CardHandler.Update)
			cards.DELETE("/:id", c.CardHandler.Delete)
		}

		proposals := admin.Group("/proposals")
		{
			proposals.GET("", c.ProposalHandler.ListAll)
			proposals.PUT("/:id", c.ProposalHandler.Update)
			proposals.DELETE("/:id", c.ProposalHandler.Delete)
			proposals.POST("/:id/approve", c.ProposalHandler.Approve)
			proposals.POST("/:id/reject", c.ProposalHandler.Reject)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("", c.SettingsHandler.Get)
			settings.PUT("", c.SettingsHandler.Update)
		}
	}
}

// healthCheckHandler verify DB và cache connectivity
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		dbStatus := "ok"
		cacheStatus := "ok"

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			// cache là optional dependency, không fail health check
			cacheStatus = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":   dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
			"app_name": c.Config.App.Name,
		})
	}
}
