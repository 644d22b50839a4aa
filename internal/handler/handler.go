// Package handler is the gin adapter in front of the catalog services.
package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/service"
)

// Services bundles what the routes call into.
type Services struct {
	Store           Pinger
	Products        service.ProductService
	Categories      service.CategoryService
	Locations       service.LocationService
	DefaultPageSize int
}

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, s Services) {
	h := NewHealthHandler(s.Store)

	// Probes stay at the root for orchestrators.
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group(healthPath)
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewProductHandler(s.Products, s.DefaultPageSize).Register(api)
		NewCategoryHandler(s.Categories, s.Products, s.DefaultPageSize).Register(api)
		NewLocationHandler(s.Locations, s.DefaultPageSize).Register(api)
	}
}

// NewEngine builds a gin engine with the middleware chain and every route mounted.
func NewEngine(cfg config.HTTPConfig, mode string, logger zerolog.Logger, s Services) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(),
		AccessLog(logger),
		CORS(cfg.CORS),
		Timeout(cfg.RequestTimeout),
	)
	r.HandleMethodNotAllowed = true
	Register(r, s)
	return r
}
