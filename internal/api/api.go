// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/dealerbridge/forecast-go/internal/api/handlers"
	"github.com/dealerbridge/forecast-go/internal/api/middleware"
	"github.com/dealerbridge/forecast-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	ForecastService *service.ForecastService
	PlanService     *service.PlanService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Archive-Key"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			dealerGroup := apiGroup.Group("/dealers/:dealer_id")
			{
				dealerGroup.GET("/config", forecastHandler.GetConfig)
				dealerGroup.PUT("/config", forecastHandler.UpdateConfig)
				dealerGroup.POST("/forecasts/generate", forecastHandler.GenerateForecasts)
				dealerGroup.GET("/forecasts/chart", forecastHandler.GetChart)
			}
		}

		if services.PlanService != nil {
			planHandler := handlers.NewPlanHandler(services.PlanService)
			dealerGroup := apiGroup.Group("/dealers/:dealer_id")
			{
				dealerGroup.POST("/plan/generate", planHandler.GeneratePlan)
				dealerGroup.GET("/plan/orders", planHandler.ListOrders)
				dealerGroup.GET("/plan/timeline", planHandler.GetTimeline)
				dealerGroup.GET("/plan/export", planHandler.ExportPlan)
			}
			apiGroup.PUT("/orders/:order_id/status", planHandler.SetOrderStatus)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	normalized := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			return nil, true
		}
		normalized = append(normalized, strings.TrimSuffix(origin, "/"))
	}
	return normalized, false
}
