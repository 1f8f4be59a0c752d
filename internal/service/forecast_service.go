// internal/service/forecast_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dealerhub/forecast-engine/internal/cache"
	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/forecast"
	"github.com/dealerhub/forecast-engine/internal/repository"
	"github.com/dealerhub/forecast-engine/internal/stats"
	"github.com/dealerhub/forecast-engine/internal/storage"
)

// ForecastService runs the forecasting pipeline and serves its read models.
type ForecastService struct {
	configService *ConfigService
	dealers       repository.DealerRepository
	demand        repository.DemandRepository
	forecasts     repository.ForecastRepository
	patterns      repository.PatternRepository
	markets       repository.MarketRepository
	cache         cache.AnalysisCache
	archiver      storage.SnapshotArchiver
}

func NewForecastService(
	configService *ConfigService,
	dealers repository.DealerRepository,
	demand repository.DemandRepository,
	forecasts repository.ForecastRepository,
	patterns repository.PatternRepository,
	markets repository.MarketRepository,
	analysisCache cache.AnalysisCache,
	archiver storage.SnapshotArchiver,
) *ForecastService {
	return &ForecastService{
		configService: configService,
		dealers:       dealers,
		demand:        demand,
		forecasts:     forecasts,
		patterns:      patterns,
		markets:       markets,
		cache:         analysisCache,
		archiver:      archiver,
	}
}

// GenerateDemandForecasts regenerates forecasts for the dealer's products and
// persists them, replacing any existing rows for the same config/product/period.
// A non-nil productIDs restricts the run to that subset; an empty subset is a
// no-op that returns an empty list.
func (s *ForecastService) GenerateDemandForecasts(ctx context.Context, dealerID int64, productIDs []int64) ([]*domain.DemandForecast, error) {
	if productIDs != nil && len(productIDs) == 0 {
		return []*domain.DemandForecast{}, nil
	}

	cfg, err := s.configService.GetOrCreate(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	dealer, err := s.dealers.GetByID(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dealer: %w", err)
	}

	targets := productIDs
	if targets == nil {
		targets, err = s.demand.ActiveProductIDs(ctx, dealerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list active products: %w", err)
		}
	}
	if len(targets) == 0 {
		return []*domain.DemandForecast{}, nil
	}

	now := time.Now().UTC()
	since := now.AddDate(0, -cfg.HistoryMonths, 0)
	history, err := s.demand.DemandHistory(ctx, dealerID, since, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to load demand history: %w", err)
	}
	byProduct := forecast.GroupByProduct(history)

	marketAdj, err := s.marketAdjustment(ctx, dealer.Region, now)
	if err != nil {
		return nil, err
	}
	marketAdj *= cfg.LocalMarketFactor

	all := make([]*domain.DemandForecast, 0, len(targets)*cfg.HorizonPeriods)
	for _, productID := range targets {
		raw := byProduct[productID]
		seasonal, err := s.seasonalSource(ctx, cfg, raw)
		if err != nil {
			return nil, err
		}
		fcs := forecast.Generate(cfg, productID, raw, seasonal, marketAdj, now)
		all = append(all, fcs...)
	}

	if err := s.forecasts.UpsertAll(ctx, all); err != nil {
		return nil, fmt.Errorf("failed to store forecasts: %w", err)
	}

	if err := s.cache.InvalidateDealer(ctx, dealerID); err != nil {
		log.Warn().Err(err).Int64("dealer_id", dealerID).Msg("failed to invalidate chart cache")
	}
	s.archiveSnapshot(ctx, dealerID, now, all)

	log.Info().
		Int64("dealer_id", dealerID).
		Int("products", len(targets)).
		Int("forecasts", len(all)).
		Msg("forecast regeneration complete")

	return all, nil
}

// seasonalSource resolves the monthly factors the config asks for. Pattern
// configs without a stored pattern fall back to self-derived factors.
func (s *ForecastService) seasonalSource(ctx context.Context, cfg *domain.ForecastConfig, raw []domain.DemandPoint) (forecast.SeasonalSource, error) {
	if !cfg.SeasonalityEnabled || cfg.SeasonalityType == domain.SeasonalityNone {
		return forecast.SeasonalSource{Factors: domain.NeutralFactors()}, nil
	}

	if cfg.SeasonalityType == domain.SeasonalityPattern {
		pattern, err := s.patterns.FindForDealer(ctx, cfg.DealerID)
		if err == nil {
			return forecast.SeasonalSource{Factors: pattern.Factors, Enabled: true}, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return forecast.SeasonalSource{}, fmt.Errorf("failed to load seasonal pattern: %w", err)
		}
	}

	result := stats.SeasonalFactors(forecast.AggregateMonthly(raw))
	return forecast.SeasonalSource{Factors: result.Factors, Enabled: result.Calculated}, nil
}

func (s *ForecastService) marketAdjustment(ctx context.Context, region string, now time.Time) (float64, error) {
	indicators, err := s.markets.ListByRegion(ctx, region)
	if err != nil {
		return 0, fmt.Errorf("failed to load market indicators: %w", err)
	}
	return forecast.CombineIndicators(region, indicators, now).AdjustmentFactor, nil
}

// archiveSnapshot stores the regenerated set as JSON. Archiving is best
// effort and never fails the run.
func (s *ForecastService) archiveSnapshot(ctx context.Context, dealerID int64, now time.Time, forecasts []*domain.DemandForecast) {
	payload, err := json.Marshal(forecasts)
	if err != nil {
		log.Warn().Err(err).Int64("dealer_id", dealerID).Msg("failed to encode forecast snapshot")
		return
	}
	key := fmt.Sprintf("forecasts/%d/%s.json", dealerID, now.Format("20060102T150405Z"))
	if err := s.archiver.ArchiveSnapshot(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to archive forecast snapshot")
	}
}

// GetMarketAnalysis combines the region's indicators for the dealer, serving
// from cache when fresh.
func (s *ForecastService) GetMarketAnalysis(ctx context.Context, dealerID int64) (*domain.MarketAnalysis, error) {
	dealer, err := s.dealers.GetByID(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dealer: %w", err)
	}

	if cached, ok, err := s.cache.GetMarketAnalysis(ctx, dealer.Region); err != nil {
		log.Warn().Err(err).Str("region", dealer.Region).Msg("market analysis cache read failed")
	} else if ok {
		return cached, nil
	}

	indicators, err := s.markets.ListByRegion(ctx, dealer.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to load market indicators: %w", err)
	}
	analysis := forecast.CombineIndicators(dealer.Region, indicators, time.Now().UTC())

	if err := s.cache.SetMarketAnalysis(ctx, dealer.Region, &analysis); err != nil {
		log.Warn().Err(err).Str("region", dealer.Region).Msg("market analysis cache write failed")
	}

	return &analysis, nil
}

// SaveMarketIndicator upserts one regional observation, deriving the percent
// change from the prior value, and drops the region's cached analysis.
func (s *ForecastService) SaveMarketIndicator(ctx context.Context, ind *domain.MarketIndicator) error {
	if ind.PriorValue != 0 {
		ind.PercentChange = (ind.Value - ind.PriorValue) / ind.PriorValue * 100
	}
	if err := s.markets.Upsert(ctx, ind); err != nil {
		return fmt.Errorf("failed to save market indicator: %w", err)
	}
	if err := s.cache.InvalidateRegion(ctx, ind.Region); err != nil {
		log.Warn().Err(err).Str("region", ind.Region).Msg("failed to invalidate market cache")
	}
	return nil
}

// GetForecastChartData assembles the stored forecasts into chart series. No
// new computation happens here; it is a pure rearrangement of persisted rows.
func (s *ForecastService) GetForecastChartData(ctx context.Context, dealerID int64) (*domain.ForecastChartData, error) {
	if cached, ok, err := s.cache.GetChartData(ctx, dealerID); err != nil {
		log.Warn().Err(err).Int64("dealer_id", dealerID).Msg("chart cache read failed")
	} else if ok {
		return cached, nil
	}

	cfg, err := s.configService.GetOrCreate(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	forecasts, err := s.forecasts.ListByConfig(ctx, cfg.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecasts: %w", err)
	}

	data := buildChartData(forecasts)
	if err := s.cache.SetChartData(ctx, dealerID, data); err != nil {
		log.Warn().Err(err).Int64("dealer_id", dealerID).Msg("chart cache write failed")
	}

	return data, nil
}

const chartMonthLayout = "2006-01"

func buildChartData(forecasts []*domain.DemandForecast) *domain.ForecastChartData {
	type bucket struct {
		forecast   float64
		lower      float64
		upper      float64
		historical float64
	}

	buckets := make(map[string]*bucket)
	for _, fc := range forecasts {
		label := fc.PeriodStart.UTC().Format(chartMonthLayout)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		b.forecast += fc.ForecastedDemand
		b.lower += fc.LowerBound
		b.upper += fc.UpperBound
		b.historical += fc.HistoricalAverage
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := func(pick func(*bucket) float64) []*float64 {
		values := make([]*float64, len(labels))
		for i, label := range labels {
			v := pick(buckets[label])
			values[i] = &v
		}
		return values
	}

	return &domain.ForecastChartData{
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{Label: "forecast", Values: series(func(b *bucket) float64 { return b.forecast })},
			{Label: "lower_bound", Values: series(func(b *bucket) float64 { return b.lower })},
			{Label: "upper_bound", Values: series(func(b *bucket) float64 { return b.upper })},
			{Label: "historical_average", Values: series(func(b *bucket) float64 { return b.historical })},
		},
	}
}
