package api

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerDoc = "airlines.swagger.json"

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	Accounts      *AccountHandler
	Flights       *FlightHandler
	Bookings      *BookingHandler
	Authenticator *Authenticator
	SwaggerDir    string
	Health        map[string]HealthCheck
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Metrics(), Logger(), cfg.Authenticator.Middleware())

	router.GET("/", func(c *gin.Context) { html(c, welcomePage) })
	router.GET("/healthz", healthz(cfg.Health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerDir != "" {
		router.StaticFile("/docs/"+swaggerDoc, filepath.Join(cfg.SwaggerDir, swaggerDoc))
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/"+swaggerDoc))))
	}

	public := router.Group("")
	cfg.Accounts.Register(public)

	cfg.Flights.Register(router.Group("/flights", RequireLogin()))
	cfg.Bookings.Register(router.Group("/bookings", RequireLogin()))

	return router
}

func healthz(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		c.JSON(status, gin.H{"status": http.StatusText(status), "checks": result})
	}
}
