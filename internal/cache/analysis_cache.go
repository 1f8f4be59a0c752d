package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dealerhub/forecast-engine/internal/config"
	"github.com/dealerhub/forecast-engine/internal/domain"
)

const (
	marketAnalysisKeyPrefix = "forecast:market"
	chartDataKeyPrefix      = "forecast:chart"
)

// AnalysisCache holds the computed market analysis and forecast chart
// payloads so repeat dashboard reads skip recomputation.
type AnalysisCache interface {
	GetMarketAnalysis(ctx context.Context, region string) (*domain.MarketAnalysis, bool, error)
	SetMarketAnalysis(ctx context.Context, region string, analysis *domain.MarketAnalysis) error
	GetChartData(ctx context.Context, dealerID int64) (*domain.ForecastChartData, bool, error)
	SetChartData(ctx context.Context, dealerID int64, data *domain.ForecastChartData) error
	InvalidateDealer(ctx context.Context, dealerID int64) error
	InvalidateRegion(ctx context.Context, region string) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

// NewAnalysisCache returns a redis-backed cache when caching is enabled, a
// noop otherwise.
func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{client: client, ttl: ttl}, nil
}

// NewNoopAnalysisCache returns a cache that stores nothing.
func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) GetMarketAnalysis(ctx context.Context, region string) (*domain.MarketAnalysis, bool, error) {
	var analysis domain.MarketAnalysis
	ok, err := c.get(ctx, marketKey(region), &analysis)

	return &analysis, ok, err
}

func (c *redisAnalysisCache) SetMarketAnalysis(ctx context.Context, region string, analysis *domain.MarketAnalysis) error {
	return c.set(ctx, marketKey(region), analysis)
}

func (c *redisAnalysisCache) GetChartData(ctx context.Context, dealerID int64) (*domain.ForecastChartData, bool, error) {
	var data domain.ForecastChartData
	ok, err := c.get(ctx, chartKey(dealerID), &data)

	return &data, ok, err
}

func (c *redisAnalysisCache) SetChartData(ctx context.Context, dealerID int64, data *domain.ForecastChartData) error {
	return c.set(ctx, chartKey(dealerID), data)
}

func (c *redisAnalysisCache) InvalidateDealer(ctx context.Context, dealerID int64) error {
	return c.client.Del(ctx, chartKey(dealerID)).Err()
}

func (c *redisAnalysisCache) InvalidateRegion(ctx context.Context, region string) error {
	return c.client.Del(ctx, marketKey(region)).Err()
}

func (c *redisAnalysisCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode analysis cache: %w", err)
	}

	return true, nil
}

func (c *redisAnalysisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (n *noopAnalysisCache) GetMarketAnalysis(ctx context.Context, region string) (*domain.MarketAnalysis, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) SetMarketAnalysis(ctx context.Context, region string, analysis *domain.MarketAnalysis) error {
	return nil
}

func (n *noopAnalysisCache) GetChartData(ctx context.Context, dealerID int64) (*domain.ForecastChartData, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) SetChartData(ctx context.Context, dealerID int64, data *domain.ForecastChartData) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateDealer(ctx context.Context, dealerID int64) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateRegion(ctx context.Context, region string) error {
	return nil
}

func marketKey(region string) string {
	return fmt.Sprintf("%s:%s", marketAnalysisKeyPrefix, region)
}

func chartKey(dealerID int64) string {
	return fmt.Sprintf("%s:%d", chartDataKeyPrefix, dealerID)
}
