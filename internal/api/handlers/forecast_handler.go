package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/repository"
	"github.com/dealerbridge/forecast-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

type generateForecastsRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// GenerateForecasts triggers a forecast run for a dealer.
func (h *ForecastHandler) GenerateForecasts(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	var req generateForecastsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result, err := h.service.GenerateForecasts(c.Request.Context(), dealerID, req.ProductIDs)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			errorResponse(c, http.StatusNotFound, "dealer not found")
			return
		}
		log.Error().Err(err).Int64("dealer_id", dealerID).Msg("forecast run failed")
		errorResponse(c, http.StatusInternalServerError, "forecast run failed")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetChart returns the forecast chart series, optionally for one product.
func (h *ForecastHandler) GetChart(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	var productID *int64
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid product_id")
			return
		}
		productID = &id
	}

	chart, err := h.service.ForecastChart(c.Request.Context(), dealerID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			errorResponse(c, http.StatusNotFound, "dealer not found")
			return
		}
		log.Error().Err(err).Int64("dealer_id", dealerID).Msg("failed to build forecast chart")
		errorResponse(c, http.StatusInternalServerError, "failed to build forecast chart")
		return
	}

	c.JSON(http.StatusOK, chart)
}

// GetConfig returns the dealer's forecast config, creating defaults on
// first access.
func (h *ForecastHandler) GetConfig(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	cfg, err := h.service.GetConfig(c.Request.Context(), dealerID)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			errorResponse(c, http.StatusNotFound, "dealer not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to load config")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig applies a partial config update.
func (h *ForecastHandler) UpdateConfig(c *gin.Context) {
	dealerID, ok := dealerIDParam(c)
	if !ok {
		return
	}

	var patch domain.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), dealerID, &patch)
	if err != nil {
		if errors.Is(err, repository.ErrDealerNotFound) {
			errorResponse(c, http.StatusNotFound, "dealer not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to update config")
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func dealerIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("dealer_id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, http.StatusBadRequest, "invalid dealer id")
		return 0, false
	}
	return id, true
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
