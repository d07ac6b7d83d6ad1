// Package router assembles the HTTP API: middleware, documentation,
// metrics and every versioned route.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"wedplan/internal/config"
	"wedplan/internal/docs"
	apperrors "wedplan/internal/errors"
	"wedplan/internal/handlers"
	"wedplan/internal/middleware"
	"wedplan/internal/services"
)

// New builds the gin engine with all services wired to db.
// Metrics are registered on reg and served from /metrics. ctx bounds the
// background work of the rate limiter.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, reg *prometheus.Registry) *gin.Engine {
	// Initialize services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	weddingService := services.NewWeddingService(db, cfg.DefaultCurrency)
	budgetService := services.NewBudgetService(db)
	vendorService := services.NewVendorService(db)
	guestService := services.NewGuestService(db)
	checklistService := services.NewChecklistService(db)
	venueService := services.NewVenueService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	weddingHandler := handlers.NewWeddingHandler(weddingService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	vendorHandler := handlers.NewVendorHandler(vendorService, auditService)
	guestHandler := handlers.NewGuestHandler(guestService, auditService)
	checklistHandler := handlers.NewChecklistHandler(checklistService, auditService)
	venueHandler := handlers.NewVenueHandler(venueService, auditService)

	metrics := middleware.NewMetrics(reg)
	authLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.RequestLogging())
	router.Use(metrics.Middleware())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Error: handlers.ErrorDetail{Code: apperrors.ErrNotFound.Code, Message: apperrors.ErrNotFound.Message},
		})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handlers.ErrorResponse{
			Error: handlers.ErrorDetail{Code: "METHOD_NOT_ALLOWED", Message: "This HTTP method is not allowed for the endpoint"},
		})
	})

	if cfg.EnablePprof {
		pprof.Register(router)
	}

	// Swagger documentation, served for whatever host the request used
	docs.SwaggerInfo.Host = ""
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.Use(authLimiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Wedding routes
	weddings := protected.Group("/weddings")
	weddings.POST("", weddingHandler.CreateWedding)
	weddings.GET("", weddingHandler.GetWeddings)
	weddings.GET("/:id", weddingHandler.GetWeddingByID)
	weddings.PUT("/:id", weddingHandler.UpdateWedding)
	weddings.DELETE("/:id", weddingHandler.DeleteWedding)

	// Participant routes
	weddings.GET("/:id/participants", weddingHandler.GetParticipants)
	weddings.POST("/:id/participants", weddingHandler.AddParticipant)
	weddings.DELETE("/:id/participants/:userId", weddingHandler.RemoveParticipant)

	// Budget routes
	weddings.GET("/:id/budget/settings", budgetHandler.GetSettings)
	weddings.PUT("/:id/budget/settings", budgetHandler.UpdateSettings)
	weddings.GET("/:id/budget/summary", budgetHandler.GetSummary)

	// Vendor routes
	weddings.POST("/:id/vendors", vendorHandler.CreateVendor)
	weddings.GET("/:id/vendors", vendorHandler.GetVendors)
	weddings.GET("/:id/vendors/:vendorId", vendorHandler.GetVendorByID)
	weddings.PUT("/:id/vendors/:vendorId", vendorHandler.UpdateVendor)
	weddings.DELETE("/:id/vendors/:vendorId", vendorHandler.DeleteVendor)

	// Guest routes
	weddings.POST("/:id/guests", guestHandler.CreateGuest)
	weddings.GET("/:id/guests", guestHandler.GetGuests)
	weddings.GET("/:id/guests/headcount", guestHandler.GetHeadcount)
	weddings.GET("/:id/guests/:guestId", guestHandler.GetGuestByID)
	weddings.PUT("/:id/guests/:guestId", guestHandler.UpdateGuest)
	weddings.DELETE("/:id/guests/:guestId", guestHandler.DeleteGuest)

	// Checklist routes
	weddings.POST("/:id/checklist", checklistHandler.CreateItem)
	weddings.GET("/:id/checklist", checklistHandler.GetChecklist)
	weddings.GET("/:id/checklist/:itemId", checklistHandler.GetItemByID)
	weddings.PUT("/:id/checklist/:itemId", checklistHandler.UpdateItem)
	weddings.DELETE("/:id/checklist/:itemId", checklistHandler.DeleteItem)
	weddings.POST("/:id/checklist/:itemId/toggle", checklistHandler.ToggleItem)

	// Venue routes
	weddings.POST("/:id/venues", venueHandler.CreateVenue)
	weddings.GET("/:id/venues", venueHandler.GetVenues)
	weddings.GET("/:id/venues/compare", venueHandler.CompareVenues)
	weddings.GET("/:id/venues/:venueId", venueHandler.GetVenueByID)
	weddings.PUT("/:id/venues/:venueId", venueHandler.UpdateVenue)
	weddings.DELETE("/:id/venues/:venueId", venueHandler.DeleteVenue)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
