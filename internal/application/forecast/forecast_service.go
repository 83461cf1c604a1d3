package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/finboard/backend/internal/domain/finance"
	"github.com/finboard/backend/internal/domain/forecast"
	"github.com/finboard/backend/internal/domain/shared"
)

// ProjectionCache stores the most recent projection per brand. It is a
// convenience layer only; projections are transient and recomputable, so
// cache failures degrade to recomputation, never to an error.
type ProjectionCache interface {
	StoreLatest(ctx context.Context, brand shared.Brand, projection *forecast.Projection) error
	Latest(ctx context.Context, brand shared.Brand) (*forecast.Projection, error)
}

// ProjectRequest describes one forecast invocation
type ProjectRequest struct {
	Brand           shared.Brand         `json:"brand"`
	StartingBalance decimal.Decimal      `json:"starting_balance"`
	HorizonDays     int                  `json:"horizon_days"`
	ConfirmedEvents []forecast.CashEvent `json:"confirmed_events,omitempty"`
}

// ProjectResponse bundles the projection with the event stream that
// produced it, for display alongside the balance walk
type ProjectResponse struct {
	Brand      shared.Brand         `json:"brand"`
	Today      time.Time            `json:"today"`
	HorizonEnd time.Time            `json:"horizon_end"`
	Events     []forecast.CashEvent `json:"events"`
	Projection forecast.Projection  `json:"projection"`
}

// EngineDefaults overrides the generator's built-in horizon and window
// settings. Zero fields leave the corresponding default untouched.
type EngineDefaults struct {
	HorizonDays        int
	TrailingWindowDays int
	ObligationLeadDays int
}

// ForecastService generates the forward cash event stream and projects
// scenario balances over it
type ForecastService struct {
	recordRepo     finance.DailyRecordRepository
	expenseRepo    forecast.ExpenseTemplateRepository
	obligationRepo forecast.ObligationRepository
	cache          ProjectionCache
	logger         *zap.Logger
	now            func() time.Time
	defaults       EngineDefaults
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	recordRepo finance.DailyRecordRepository,
	expenseRepo forecast.ExpenseTemplateRepository,
	obligationRepo forecast.ObligationRepository,
	cache ProjectionCache,
	logger *zap.Logger,
) *ForecastService {
	return &ForecastService{
		recordRepo:     recordRepo,
		expenseRepo:    expenseRepo,
		obligationRepo: obligationRepo,
		cache:          cache,
		logger:         logger,
		now:            time.Now,
	}
}

// SetEngineDefaults applies configured horizon and window overrides
func (s *ForecastService) SetEngineDefaults(defaults EngineDefaults) {
	s.defaults = defaults
}

// Project regenerates the brand's forecast event stream, merges any
// externally confirmed events, and walks the three scenarios. The result
// is disposable; the latest one is cached per brand for quick reads.
func (s *ForecastService) Project(ctx context.Context, req ProjectRequest) (*ProjectResponse, error) {
	brand := req.Brand.Normalize()
	if brand.IsZero() {
		return nil, shared.ErrInvalidBrand
	}
	if req.HorizonDays < 0 {
		return nil, shared.ErrEmptyHorizon
	}

	config := forecast.DefaultGeneratorConfig(s.now())
	if s.defaults.HorizonDays > 0 {
		config.HorizonDays = s.defaults.HorizonDays
	}
	if s.defaults.TrailingWindowDays > 0 {
		config.TrailingWindowDays = s.defaults.TrailingWindowDays
	}
	if s.defaults.ObligationLeadDays > 0 {
		config.ObligationLeadDays = s.defaults.ObligationLeadDays
	}
	if req.HorizonDays > 0 {
		config.HorizonDays = req.HorizonDays
	}

	input, err := s.loadInput(ctx, brand, config)
	if err != nil {
		return nil, err
	}

	events := forecast.NewGenerator(config).Generate(input)
	events = append(events, req.ConfirmedEvents...)

	projection := forecast.Project(
		req.StartingBalance, events,
		config.Today, config.HorizonEnd(),
		forecast.DefaultProjectorConfig(),
	)

	if err := s.cache.StoreLatest(ctx, brand, &projection); err != nil {
		s.logger.Warn("projection cache store failed",
			zap.String("brand", brand.String()),
			zap.Error(err))
	}

	return &ProjectResponse{
		Brand:      brand,
		Today:      config.Today,
		HorizonEnd: config.HorizonEnd(),
		Events:     events,
		Projection: projection,
	}, nil
}

// LatestProjection returns the cached projection for a brand, or
// shared.ErrNotFound when none has been computed yet
func (s *ForecastService) LatestProjection(ctx context.Context, brand shared.Brand) (*forecast.Projection, error) {
	brand = brand.Normalize()
	if brand.IsZero() {
		return nil, shared.ErrInvalidBrand
	}
	return s.cache.Latest(ctx, brand)
}

func (s *ForecastService) loadInput(ctx context.Context, brand shared.Brand, config forecast.GeneratorConfig) (forecast.GeneratorInput, error) {
	windowRange, err := finance.NewDateRange(
		config.Today.AddDate(0, 0, -config.TrailingWindowDays),
		config.Today,
	)
	if err != nil {
		return forecast.GeneratorInput{}, err
	}

	history, err := s.recordRepo.FindRange(ctx, brand, windowRange)
	if err != nil {
		return forecast.GeneratorInput{}, fmt.Errorf("load daily records: %w", err)
	}
	expenses, err := s.expenseRepo.FindActive(ctx, brand)
	if err != nil {
		return forecast.GeneratorInput{}, fmt.Errorf("load expense templates: %w", err)
	}
	obligations, err := s.obligationRepo.FindOpen(ctx, brand)
	if err != nil {
		return forecast.GeneratorInput{}, fmt.Errorf("load obligations: %w", err)
	}

	return forecast.GeneratorInput{
		Brand:       brand,
		History:     history,
		Expenses:    expenses,
		Obligations: obligations,
	}, nil
}
