// internal/api/handlers/config_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/service"
)

type ConfigHandler struct {
	service *service.ConfigService
}

func NewConfigHandler(service *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// GetConfig returns the dealer's forecast config, creating defaults on first
// access.
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	cfg, err := h.service.GetOrCreate(c.Request.Context(), dealerID)
	if err != nil {
		respondError(c, err, "failed to fetch forecast config")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig merges a partial update into the dealer's config.
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	var update domain.ForecastConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid config payload", "details": err.Error()})
		return
	}

	cfg, err := h.service.Update(c.Request.Context(), dealerID, &update)
	if err != nil {
		respondError(c, err, "failed to update forecast config")
		return
	}

	c.JSON(http.StatusOK, cfg)
}
