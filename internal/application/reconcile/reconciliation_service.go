package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/reconcile"
	"github.com/finboard/backend/internal/domain/shared"
)

// SuggestionResult carries the best match per transaction plus the full
// scored pool for manual review
type SuggestionResult struct {
	Brand       shared.Brand               `json:"brand"`
	BestMatches []reconcile.MatchCandidate `json:"best_matches"`
	Candidates  []reconcile.MatchCandidate `json:"candidates"`
}

// ReconciliationService scores unreconciled wholesale transactions
// against unlinked external invoices
type ReconciliationService struct {
	txnRepo     finance.TransactionRepository
	invoiceRepo finance.InvoiceRepository
	matcher     *reconcile.Matcher
	logger      *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	txnRepo finance.TransactionRepository,
	invoiceRepo finance.InvoiceRepository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		txnRepo:     txnRepo,
		invoiceRepo: invoiceRepo,
		matcher:     reconcile.NewMatcher(),
		logger:      logger,
	}
}

// Suggest scores every open transaction/invoice pairing for the brand and
// returns the candidates at or above minConfidence. Below-threshold pairs
// are silently excluded, not errors.
func (s *ReconciliationService) Suggest(ctx context.Context, brand shared.Brand, minConfidence int) (*SuggestionResult, error) {
	brand = brand.Normalize()
	if brand.IsZero() {
		return nil, shared.ErrInvalidBrand
	}
	if minConfidence < 0 || minConfidence > 100 {
		return nil, shared.ErrInvalidInput
	}

	transactions, err := s.txnRepo.FindUnreconciledWholesale(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	invoices, err := s.invoiceRepo.FindUnlinked(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	candidates := s.matcher.ScoreAll(transactions, invoices, minConfidence)
	best := reconcile.GroupBestMatches(candidates)

	s.logger.Info("reconciliation suggestions computed",
		zap.String("brand", brand.String()),
		zap.Int("transactions", len(transactions)),
		zap.Int("invoices", len(invoices)),
		zap.Int("candidates", len(candidates)),
		zap.Int("best_matches", len(best)))

	return &SuggestionResult{
		Brand:       brand,
		BestMatches: best,
		Candidates:  candidates,
	}, nil
}
