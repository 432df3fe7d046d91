// internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerbridge/forecast-go/internal/cache"
	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/forecast"
	"github.com/dealerbridge/forecast-go/internal/reporting"
	"github.com/dealerbridge/forecast-go/internal/repository"
	"github.com/rs/zerolog/log"
)

type ForecastService struct {
	dealers   repository.DealerRepository
	configs   repository.ConfigRepository
	history   repository.HistoryRepository
	products  repository.ProductRepository
	forecasts repository.ForecastRepository
	reports   cache.ReportCache
}

func NewForecastService(
	dealers repository.DealerRepository,
	configs repository.ConfigRepository,
	history repository.HistoryRepository,
	products repository.ProductRepository,
	forecasts repository.ForecastRepository,
	reports cache.ReportCache,
) *ForecastService {
	return &ForecastService{
		dealers:   dealers,
		configs:   configs,
		history:   history,
		products:  products,
		forecasts: forecasts,
		reports:   reports,
	}
}

// GetConfig returns the dealer's forecast config, creating the default row
// on first access.
func (s *ForecastService) GetConfig(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error) {
	if _, err := s.dealers.GetDealer(ctx, dealerID); err != nil {
		return nil, err
	}
	return s.configs.GetOrCreateConfig(ctx, dealerID)
}

// UpdateConfig applies a partial update to the dealer's config.
func (s *ForecastService) UpdateConfig(ctx context.Context, dealerID int64, patch *domain.ConfigPatch) (*domain.ForecastConfig, error) {
	if _, err := s.dealers.GetDealer(ctx, dealerID); err != nil {
		return nil, err
	}
	return s.configs.UpdateConfig(ctx, dealerID, patch)
}

// GenerateForecasts rebuilds the dealer's forecasts for the given products
// (all active products when ids is empty). A missing dealer aborts the whole
// run; a single product's failure is logged, reported in the result and does
// not stop the remaining products.
func (s *ForecastService) GenerateForecasts(ctx context.Context, dealerID int64, productIDs []int64) (*domain.ForecastRunResult, error) {
	dealer, err := s.dealers.GetDealer(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("forecast run aborted: %w", err)
	}

	cfg, err := s.configs.GetOrCreateConfig(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast config: %w", err)
	}

	products, err := s.products.ActiveProducts(ctx, dealerID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	now := time.Now()
	result := &domain.ForecastRunResult{
		DealerID:    dealerID,
		ConfigID:    cfg.ID,
		Summaries:   make([]domain.ForecastSummary, 0, len(products)),
		GeneratedAt: now,
	}

	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("forecast run cancelled: %w", err)
		}

		pid := product.ID
		history, err := s.history.OrderHistory(ctx, dealerID, &pid, cfg.HistoryPeriod)
		if err != nil {
			log.Error().Err(err).Int64("product_id", pid).Msg("failed to read demand history")
			result.Failed = append(result.Failed, domain.ProductFailure{ProductID: pid, Error: err.Error()})
			continue
		}

		pf := forecast.BuildProductForecast(cfg, product, history, now)

		if err := s.forecasts.ReplaceForecasts(ctx, cfg.ID, pid, pf.Periods); err != nil {
			log.Error().Err(err).Int64("product_id", pid).Msg("failed to store forecasts")
			result.Failed = append(result.Failed, domain.ProductFailure{ProductID: pid, Error: err.Error()})
			continue
		}

		result.Summaries = append(result.Summaries, pf.Summary)
	}

	if err := s.reports.Invalidate(ctx, cfg.ID); err != nil {
		log.Warn().Err(err).Int64("config_id", cfg.ID).Msg("failed to invalidate report cache")
	}

	log.Info().
		Int64("dealer_id", dealerID).
		Str("dealer", dealer.Name).
		Int("products", len(result.Summaries)).
		Int("failed", len(result.Failed)).
		Msg("forecast run completed")

	return result, nil
}

// ForecastChart returns the chart-ready forecast series for a dealer,
// optionally narrowed to one product.
func (s *ForecastService) ForecastChart(ctx context.Context, dealerID int64, productID *int64) (*domain.ForecastChart, error) {
	cfg, err := s.GetConfig(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	if chart, ok, err := s.reports.GetChart(ctx, cfg.ID, productID); err != nil {
		log.Warn().Err(err).Msg("report cache read failed")
	} else if ok {
		return chart, nil
	}

	periods, err := s.forecasts.ListForecasts(ctx, cfg.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}

	chart := reporting.BuildForecastChart(periods)

	if err := s.reports.SetChart(ctx, cfg.ID, productID, chart); err != nil {
		log.Warn().Err(err).Msg("report cache write failed")
	}

	return chart, nil
}
