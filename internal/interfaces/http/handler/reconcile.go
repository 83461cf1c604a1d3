package handler

import (
	"github.com/gin-gonic/gin"

	reconcileapp "github.com/finboard/backend/internal/application/reconcile"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/interfaces/http/middleware"
)

// DefaultMinConfidence is the suggestion cutoff used when the request does
// not specify one
const DefaultMinConfidence = 40

// ReconcileHandler handles invoice reconciliation API endpoints
type ReconcileHandler struct {
	BaseHandler
	reconciliationService *reconcileapp.ReconciliationService
}

// NewReconcileHandler creates a new ReconcileHandler
func NewReconcileHandler(reconciliationService *reconcileapp.ReconciliationService) *ReconcileHandler {
	return &ReconcileHandler{
		reconciliationService: reconciliationService,
	}
}

// SuggestRequest represents a request for reconciliation suggestions
type SuggestRequest struct {
	Brand         string `json:"brand" binding:"required,min=1,max=50"`
	MinConfidence *int   `json:"min_confidence" binding:"omitempty,min=0,max=100"`
}

// RegisterRoutes registers the reconciliation routes
func (h *ReconcileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reconcile := rg.Group("/reconcile")
	reconcile.POST("/suggest", h.Suggest)
}

// Suggest scores unreconciled wholesale transactions against unlinked
// invoices and returns ranked match candidates
func (h *ReconcileHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	minConfidence := DefaultMinConfidence
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}

	result, err := h.reconciliationService.Suggest(c.Request.Context(), shared.Brand(req.Brand), minConfidence)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
