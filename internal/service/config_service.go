// internal/service/config_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealerhub/forecast-engine/internal/domain"
	"github.com/dealerhub/forecast-engine/internal/repository"
)

// ConfigService manages per-dealer forecast configs.
type ConfigService struct {
	configs repository.ConfigRepository
	dealers repository.DealerRepository
}

func NewConfigService(configs repository.ConfigRepository, dealers repository.DealerRepository) *ConfigService {
	return &ConfigService{configs: configs, dealers: dealers}
}

// GetOrCreate returns the dealer's config, creating one with defaults on
// first access. Safe to call repeatedly: the dealer-unique constraint means a
// concurrent create loses and the winner's row is returned.
func (s *ConfigService) GetOrCreate(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error) {
	cfg, err := s.configs.GetByDealer(ctx, dealerID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := s.dealers.GetByID(ctx, dealerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: dealer %d", domain.ErrForeignKey, dealerID)
		}
		return nil, fmt.Errorf("failed to verify dealer: %w", err)
	}

	cfg = domain.NewDefaultConfig(dealerID)
	if err := s.configs.Create(ctx, cfg); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost a concurrent first access; the existing row wins.
			return s.configs.GetByDealer(ctx, dealerID)
		}
		return nil, fmt.Errorf("failed to create config: %w", err)
	}

	return cfg, nil
}

// Update merges the supplied fields into the dealer's config and returns the
// merged result. Unspecified fields are left untouched.
func (s *ConfigService) Update(ctx context.Context, dealerID int64, update *domain.ForecastConfigUpdate) (*domain.ForecastConfig, error) {
	cfg, err := s.GetOrCreate(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	update.Apply(cfg)
	if err := s.configs.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to update config: %w", err)
	}

	return cfg, nil
}
