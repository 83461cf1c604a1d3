package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	financeapp "github.com/finboard/backend/internal/application/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/interfaces/http/middleware"
)

const dateLayout = "2006-01-02"

// PnLHandler handles P&L aggregation API endpoints
type PnLHandler struct {
	BaseHandler
	aggregationService *financeapp.AggregationService
}

// NewPnLHandler creates a new PnLHandler
func NewPnLHandler(aggregationService *financeapp.AggregationService) *PnLHandler {
	return &PnLHandler{
		aggregationService: aggregationService,
	}
}

// RecomputeRequest represents a request to recompute daily records
type RecomputeRequest struct {
	Brand string `json:"brand" binding:"required,min=1,max=50"`
	From  string `json:"from" binding:"required"`
	To    string `json:"to" binding:"required"`
}

// DailyQuery represents the query parameters for reading daily records
type DailyQuery struct {
	Brand string `form:"brand" binding:"required,min=1,max=50"`
	From  string `form:"from" binding:"required"`
	To    string `form:"to" binding:"required"`
}

// RegisterRoutes registers the P&L routes
func (h *PnLHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pnl := rg.Group("/pnl")
	pnl.POST("/recompute", h.Recompute)
	pnl.GET("/daily", h.Daily)
}

// Recompute rebuilds the daily financial records for a brand and date range
func (h *PnLHandler) Recompute(c *gin.Context) {
	var req RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	from, to, ok := h.parseRange(c, req.From, req.To)
	if !ok {
		return
	}

	result, err := h.aggregationService.RecomputeRange(c.Request.Context(), shared.Brand(req.Brand), from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Daily returns the stored daily financial records for a brand and date range
func (h *PnLHandler) Daily(c *gin.Context) {
	var query DailyQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	from, to, ok := h.parseRange(c, query.From, query.To)
	if !ok {
		return
	}

	records, err := h.aggregationService.FindDaily(c.Request.Context(), shared.Brand(query.Brand), from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

func (h *PnLHandler) parseRange(c *gin.Context, fromStr, toStr string) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		h.BadRequest(c, "from must be a date in YYYY-MM-DD format")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		h.BadRequest(c, "to must be a date in YYYY-MM-DD format")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
