// internal/api/handlers/order_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/forecast-engine/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// GeneratePlan regenerates the dealer's suggested order plan, replacing the
// pending suggestions.
func (h *OrderHandler) GeneratePlan(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	plan, err := h.service.GenerateSuggestedOrderPlan(c.Request.Context(), dealerID)
	if err != nil {
		respondError(c, err, "failed to generate order plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// ListOrders lists the dealer's suggested orders, optionally filtered by
// status.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	orders, err := h.service.GetSuggestedOrders(c.Request.Context(), dealerID, status)
	if err != nil {
		respondError(c, err, "failed to list suggested orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves one suggestion to a new lifecycle state.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "order_id")
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status payload", "details": err.Error()})
		return
	}

	order, err := h.service.UpdateSuggestedOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondError(c, err, "failed to update order status")
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetTimeline returns the dealer's suggestions grouped by order month.
func (h *OrderHandler) GetTimeline(c *gin.Context) {
	dealerID, ok := parseIDParam(c, "dealer_id")
	if !ok {
		return
	}

	data, err := h.service.GetOrderTimelineData(c.Request.Context(), dealerID)
	if err != nil {
		respondError(c, err, "failed to fetch order timeline")
		return
	}

	c.JSON(http.StatusOK, data)
}
