package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/shared"
	"github.com/finboard/backend/internal/infrastructure/logger"
)

// DefaultUpsertBatchSize bounds the size of one upsert request
const DefaultUpsertBatchSize = 100

// RecomputeResult reports the outcome of one recompute invocation. A
// failed batch never rolls back completed ones; partial success is
// reported, not undone.
type RecomputeResult struct {
	Brand          shared.Brand `json:"brand"`
	From           time.Time    `json:"from"`
	To             time.Time    `json:"to"`
	DatesComputed  int          `json:"dates_computed"`
	RecordsWritten int          `json:"records_written"`
	BatchesFailed  int          `json:"batches_failed"`
	Errors         []string     `json:"errors,omitempty"`
}

// AggregationService recomputes daily financial records over a bounded
// date range. Each invocation is stateless: it reads the four input
// streams fresh, aggregates, applies the tier waterfall and upserts the
// results in bounded batches.
type AggregationService struct {
	txnRepo       finance.TransactionRepository
	shipmentRepo  finance.ShipmentRepository
	adSpendRepo   finance.AdSpendRepository
	wholesaleRepo finance.WholesaleRepository
	rateRepo      finance.RateConfigRepository
	recordRepo    finance.DailyRecordRepository
	batchSize     int
	logger        *zap.Logger
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	txnRepo finance.TransactionRepository,
	shipmentRepo finance.ShipmentRepository,
	adSpendRepo finance.AdSpendRepository,
	wholesaleRepo finance.WholesaleRepository,
	rateRepo finance.RateConfigRepository,
	recordRepo finance.DailyRecordRepository,
	batchSize int,
	logger *zap.Logger,
) *AggregationService {
	if batchSize <= 0 {
		batchSize = DefaultUpsertBatchSize
	}
	return &AggregationService{
		txnRepo:       txnRepo,
		shipmentRepo:  shipmentRepo,
		adSpendRepo:   adSpendRepo,
		wholesaleRepo: wholesaleRepo,
		rateRepo:      rateRepo,
		recordRepo:    recordRepo,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// RecomputeRange rebuilds every daily record for the brand across the
// range. Recompute is idempotent: each (brand, date) row is fully
// replaced, so re-running over the same inputs yields identical rows.
func (s *AggregationService) RecomputeRange(ctx context.Context, brand shared.Brand, from, to time.Time) (*RecomputeResult, error) {
	brand = brand.Normalize()
	if brand.IsZero() {
		return nil, shared.ErrInvalidBrand
	}
	dateRange, err := finance.NewDateRange(from, to)
	if err != nil {
		return nil, err
	}

	ctx, log := logger.WithBrand(ctx, s.logger, brand.String())

	input, err := s.loadInput(ctx, brand, dateRange)
	if err != nil {
		return nil, err
	}

	rates, err := s.resolveRates(ctx, brand)
	if err != nil {
		return nil, err
	}

	records := finance.Aggregate(input)
	for _, record := range records {
		finance.ApplyWaterfall(record, rates)
	}

	result := &RecomputeResult{
		Brand:         brand,
		From:          dateRange.From,
		To:            dateRange.To,
		DatesComputed: len(records),
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		if err := s.recordRepo.UpsertBatch(ctx, batch); err != nil {
			result.BatchesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf(
				"batch %s..%s: %v", batch[0].Date.Format("2006-01-02"), batch[len(batch)-1].Date.Format("2006-01-02"), err,
			))
			log.Error("daily record batch upsert failed",
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			continue
		}
		result.RecordsWritten += len(batch)
	}

	log.Info("recompute finished",
		zap.Int("dates_computed", result.DatesComputed),
		zap.Int("records_written", result.RecordsWritten),
		zap.Int("batches_failed", result.BatchesFailed))
	return result, nil
}

// FindDaily returns the stored daily records for a brand and range
func (s *AggregationService) FindDaily(ctx context.Context, brand shared.Brand, from, to time.Time) ([]*finance.DailyFinancialRecord, error) {
	brand = brand.Normalize()
	if brand.IsZero() {
		return nil, shared.ErrInvalidBrand
	}
	dateRange, err := finance.NewDateRange(from, to)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.FindRange(ctx, brand, dateRange)
}

func (s *AggregationService) loadInput(ctx context.Context, brand shared.Brand, dateRange finance.DateRange) (finance.AggregateInput, error) {
	transactions, err := s.txnRepo.FindRange(ctx, brand, dateRange)
	if err != nil {
		return finance.AggregateInput{}, fmt.Errorf("load transactions: %w", err)
	}
	shipments, err := s.shipmentRepo.FindRange(ctx, brand, dateRange)
	if err != nil {
		return finance.AggregateInput{}, fmt.Errorf("load shipments: %w", err)
	}
	adSpend, err := s.adSpendRepo.FindRange(ctx, brand, dateRange)
	if err != nil {
		return finance.AggregateInput{}, fmt.Errorf("load ad spend: %w", err)
	}
	wholesale, err := s.wholesaleRepo.FindRange(ctx, brand, dateRange)
	if err != nil {
		return finance.AggregateInput{}, fmt.Errorf("load wholesale: %w", err)
	}

	return finance.AggregateInput{
		Brand:        brand,
		Transactions: transactions,
		Shipments:    shipments,
		AdSpend:      adSpend,
		Wholesale:    wholesale,
	}, nil
}

// resolveRates returns the brand's configured rates, falling back to the
// defaults when none are stored
func (s *AggregationService) resolveRates(ctx context.Context, brand shared.Brand) (finance.RateConfig, error) {
	rates, err := s.rateRepo.FindByBrand(ctx, brand)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return finance.DefaultRateConfig(brand), nil
		}
		return finance.RateConfig{}, fmt.Errorf("load rate config: %w", err)
	}
	if err := rates.Validate(); err != nil {
		return finance.RateConfig{}, err
	}
	return *rates, nil
}
