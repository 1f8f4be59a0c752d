// internal/api/handlers/forecast_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

type generateForecastsRequest struct {
	// ProductIDs restricts regeneration to a subset. Absent means all active
	// products; present but empty means none.
	ProductIDs []int64 `json:"product_ids"`
}

// GenerateForecasts regenerates and stores the dealer's demand forecasts.
func (h *ForecastHandler) GenerateForecasts(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	var req generateForecastsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid generate payload", "details": err.Error()})
			return
		}
	}

	forecasts, err := h.service.GenerateDemandForecasts(c.Request.Context(), dealerID, req.ProductIDs)
	if err != nil {
		respondError(c, err, "failed to generate forecasts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forecasts": forecasts,
		"count":     len(forecasts),
	})
}

// GetChartData returns the stored forecasts shaped for charting.
func (h *ForecastHandler) GetChartData(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	data, err := h.service.GetForecastChartData(c.Request.Context(), dealerID)
	if err != nil {
		respondError(c, err, "failed to fetch chart data")
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetMarketAnalysis returns the combined market view for the dealer's region.
func (h *ForecastHandler) GetMarketAnalysis(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	analysis, err := h.service.GetMarketAnalysis(c.Request.Context(), dealerID)
	if err != nil {
		respondError(c, err, "failed to fetch market analysis")
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// SaveMarketIndicator upserts one regional market observation.
func (h *ForecastHandler) SaveMarketIndicator(c *gin.Context) {
	var ind domain.MarketIndicator
	if err := c.ShouldBindJSON(&ind); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid indicator payload", "details": err.Error()})
		return
	}
	if ind.Region == "" || ind.Name == "" || ind.Period.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region, name and period are required"})
		return
	}

	if err := h.service.SaveMarketIndicator(c.Request.Context(), &ind); err != nil {
		respondError(c, err, "failed to save market indicator")
		return
	}

	c.JSON(http.StatusOK, ind)
}
