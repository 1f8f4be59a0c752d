// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dealerhub/forecast-engine/internal/api/handlers"
	"github.com/dealerhub/forecast-engine/internal/api/middleware"
	"github.com/dealerhub/forecast-engine/internal/service"
)

type Services struct {
	ConfigService   *service.ConfigService
	ForecastService *service.ForecastService
	OrderService    *service.OrderService
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
		ExposeHeaders:    []string{"Content-Length"},
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

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ConfigService != nil {
			configHandler := handlers.NewConfigHandler(services.ConfigService)
			configGroup := apiGroup.Group("/dealers/:dealer_id/forecast/config")
			{
				configGroup.GET("", configHandler.GetConfig)
				configGroup.PUT("", configHandler.UpdateConfig)
			}
		}

		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			forecastGroup := apiGroup.Group("/dealers/:dealer_id/forecast")
			{
				forecastGroup.POST("/generate", forecastHandler.GenerateForecasts)
				forecastGroup.GET("/chart", forecastHandler.GetChartData)
				forecastGroup.GET("/market-analysis", forecastHandler.GetMarketAnalysis)
			}
			apiGroup.POST("/market/indicators", forecastHandler.SaveMarketIndicator)
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			orderGroup := apiGroup.Group("/dealers/:dealer_id/orders")
			{
				orderGroup.POST("/generate", orderHandler.GeneratePlan)
				orderGroup.GET("", orderHandler.ListOrders)
				orderGroup.GET("/timeline", orderHandler.GetTimeline)
			}
			apiGroup.PUT("/orders/:order_id/status", orderHandler.UpdateOrderStatus)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
