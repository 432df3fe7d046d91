package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/repository"
	"github.com/dealerbridge/forecast-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type PlanHandler struct {
	service *service.PlanService
}

func NewPlanHandler(service *service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// GeneratePlan triggers an order-plan run for a dealer.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.GenerateOrderPlan(c.Request.Context(), dealerID)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			errorResponse(c, http.StatusNotFound, "dealer not found")
			return
		}
		log.Error().Err(err).Int64("dealer_id", dealerID).Msg("plan run failed")
		errorResponse(c, http.StatusInternalServerError, "plan run failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListOrders returns the dealer's suggested orders, optionally filtered by
// status.
func (h *PlanHandler) ListOrders(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	var status *domain.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := domain.ParseOrderStatus(raw)
		if !ok {
			errorResponse(c, http.StatusBadRequest, "invalid status")
			return
		}
		status = &parsed
	}

	items, err := h.service.ListOrders(c.Request.Context(), dealerID, status)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": items})
}

type setStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	LinkedOrderID *int64 `json:"linked_order_id"`
}

// SetOrderStatus records an accept/skip decision on a suggested order.
func (h *PlanHandler) SetOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid order id")
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		errorResponse(c, http.StatusBadRequest, "invalid status")
		return
	}

	if err := h.service.SetOrderStatus(c.Request.Context(), orderID, status, req.LinkedOrderID); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

// GetTimeline returns the month-bucketed order timeline.
func (h *PlanHandler) GetTimeline(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	timeline, err := h.service.OrderTimeline(c.Request.Context(), dealerID)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to build timeline")
		return
	}

	c.JSON(http.StatusOK, timeline)
}

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportPlan streams the pending plan as CSV or XLSX.
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	contentType, ok := exportContentTypes[format]
	if !ok {
		errorResponse(c, http.StatusBadRequest, "unsupported format")
		return
	}

	payload, key, err := h.service.ExportPlan(c.Request.Context(), dealerID, format)
	if err != nil {
		log.Error().Err(err).Int64("dealer_id", dealerID).Msg("plan export failed")
		errorResponse(c, http.StatusInternalServerError, "plan export failed")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=plan-%d.%s", dealerID, format))
	c.Header("X-Archive-Key", key)
	c.Data(http.StatusOK, contentType, payload)
}
