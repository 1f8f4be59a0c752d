package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerhub/forecast-engine/internal/domain"
)

func TestConfigService_GetOrCreateDefaults(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")

	cfg, err := f.configs.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)

	assert.NotZero(t, cfg.ID)
	assert.Equal(t, int64(1), cfg.DealerID)
	assert.Equal(t, domain.DefaultHorizonPeriods, cfg.HorizonPeriods)
	assert.Equal(t, domain.DefaultConfidenceLevel, cfg.ConfidenceLevel)
	assert.Equal(t, domain.ReorderDynamic, cfg.ReorderMethod)
	assert.True(t, cfg.SeasonalityEnabled)

	// the second call returns the same row
	again, err := f.configs.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, again.ID)
}

func TestConfigService_GetOrCreateUnknownDealer(t *testing.T) {
	f := newFixture()

	_, err := f.configs.GetOrCreate(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrForeignKey)
}

func TestConfigService_UpdatePartial(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")

	horizon := 6
	lead := 30
	cfg, err := f.configs.Update(context.Background(), 1, &domain.ForecastConfigUpdate{
		HorizonPeriods: &horizon,
		LeadTimeDays:   &lead,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.HorizonPeriods)
	assert.Equal(t, 30, cfg.LeadTimeDays)
	// untouched fields keep their defaults
	assert.Equal(t, domain.DefaultHistoryMonths, cfg.HistoryMonths)
	assert.Equal(t, domain.DefaultSafetyStockDays, cfg.SafetyStockDays)

	// and the merge persisted
	got, err := f.configs.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 6, got.HorizonPeriods)
}

func TestConfigService_UpdateCreatesWhenMissing(t *testing.T) {
	f := newFixture()
	f.seedDealer(1, "north")

	enabled := false
	cfg, err := f.configs.Update(context.Background(), 1, &domain.ForecastConfigUpdate{
		SeasonalityEnabled: &enabled,
	})
	require.NoError(t, err)
	assert.False(t, cfg.SeasonalityEnabled)
	assert.NotZero(t, cfg.ID)
}
