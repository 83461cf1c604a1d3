package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	forecastapp "github.com/finboard/backend/internal/application/forecast"
	"github.com/finboard/backend/internal/domain/forecast"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/interfaces/http/middleware"
)

// ForecastHandler handles cash forecast API endpoints
type ForecastHandler struct {
	BaseHandler
	forecastService *forecastapp.ForecastService
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(forecastService *forecastapp.ForecastService) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
	}
}

// ProjectRequest represents a request to build a cash projection.
// ConfirmedEvents lets callers inject known cash movements, for example a
// scheduled VAT payment, alongside the generated stream.
type ProjectRequest struct {
	Brand           string               `json:"brand" binding:"required,min=1,max=50"`
	StartingBalance decimal.Decimal      `json:"starting_balance"`
	HorizonDays     int                  `json:"horizon_days" binding:"omitempty,max=365"`
	ConfirmedEvents []forecast.CashEvent `json:"confirmed_events"`
}

// LatestQuery represents the query parameters for the latest projection
type LatestQuery struct {
	Brand string `form:"brand" binding:"required,min=1,max=50"`
}

// RegisterRoutes registers the forecast routes
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	forecast := rg.Group("/forecast")
	forecast.POST("/project", h.Project)
	forecast.GET("/latest", h.Latest)
}

// Project generates forecast events and runs the three scenario projection
func (h *ForecastHandler) Project(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	response, err := h.forecastService.Project(c.Request.Context(), forecastapp.ProjectRequest{
		Brand:           shared.Brand(req.Brand),
		StartingBalance: req.StartingBalance,
		HorizonDays:     req.HorizonDays,
		ConfirmedEvents: req.ConfirmedEvents,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// Latest returns the most recently cached projection for a brand
func (h *ForecastHandler) Latest(c *gin.Context) {
	var query LatestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	projection, err := h.forecastService.LatestProjection(c.Request.Context(), shared.Brand(query.Brand))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, projection)
}
