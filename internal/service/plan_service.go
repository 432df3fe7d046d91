// internal/service/plan_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerbridge/forecast-go/internal/cache"
	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/planner"
	"github.com/dealerbridge/forecast-go/internal/reporting"
	"github.com/dealerbridge/forecast-go/internal/repository"
	"github.com/dealerbridge/forecast-go/internal/storage"
	"github.com/rs/zerolog/log"
)

type PlanService struct {
	dealers   repository.DealerRepository
	configs   repository.ConfigRepository
	products  repository.ProductRepository
	forecasts repository.ForecastRepository
	orders    repository.SuggestedOrderRepository
	reports   cache.ReportCache
	archive   storage.Archive
}

func NewPlanService(
	dealers repository.DealerRepository,
	configs repository.ConfigRepository,
	products repository.ProductRepository,
	forecasts repository.ForecastRepository,
	orders repository.SuggestedOrderRepository,
	reports cache.ReportCache,
	archive storage.Archive,
) *PlanService {
	return &PlanService{
		dealers:   dealers,
		configs:   configs,
		products:  products,
		forecasts: forecasts,
		orders:    orders,
		reports:   reports,
		archive:   archive,
	}
}

// GenerateOrderPlan walks the dealer's stored forecasts against current
// stock and rewrites the pending suggested orders. Accepted and skipped
// rows survive the rewrite.
func (s *PlanService) GenerateOrderPlan(ctx context.Context, dealerID int64) (*domain.PlanResult, error) {
	if _, err := s.dealers.GetDealer(ctx, dealerID); err != nil {
		return nil, fmt.Errorf("plan run aborted: %w", err)
	}

	cfg, err := s.configs.GetOrCreateConfig(ctx, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load forecast config: %w", err)
	}

	products, err := s.products.ActiveProducts(ctx, dealerID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	forecasts, err := s.forecasts.ListForecasts(ctx, cfg.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}

	byProduct := make(map[int64][]domain.DemandForecast)
	for _, f := range forecasts {
		byProduct[f.ProductID] = append(byProduct[f.ProductID], f)
	}

	now := time.Now()
	result := &domain.PlanResult{
		DealerID:    dealerID,
		ConfigID:    cfg.ID,
		GeneratedAt: now,
	}

	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("plan run cancelled: %w", err)
		}

		periods := byProduct[product.ID]
		if len(periods) == 0 {
			continue
		}

		result.Items = append(result.Items, planner.BuildProductOrders(cfg, product, periods)...)
	}

	if err := s.orders.ReplacePendingOrders(ctx, cfg.ID, result.Items); err != nil {
		return nil, fmt.Errorf("failed to store suggested orders: %w", err)
	}

	result.Summary = planner.Summarize(result.Items, now)

	if err := s.reports.Invalidate(ctx, cfg.ID); err != nil {
		log.Warn().Err(err).Int64("config_id", cfg.ID).Msg("failed to invalidate report cache")
	}

	log.Info().
		Int64("dealer_id", dealerID).
		Int("orders", result.Summary.OrderCount).
		Int("critical", result.Summary.CriticalCount).
		Msg("order plan generated")

	return result, nil
}

// ListOrders returns the dealer's suggested orders, optionally filtered by
// status.
func (s *PlanService) ListOrders(ctx context.Context, dealerID int64, status *domain.OrderStatus) ([]domain.SuggestedOrderItem, error) {
	cfg, err := s.configs.GetOrCreateConfig(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListSuggestedOrders(ctx, cfg.ID, status)
}

// SetOrderStatus records a dealer decision on a suggested order. Only
// accepted and skipped are dealer-settable; accepted may carry the id of
// the purchase order raised from the suggestion.
func (s *PlanService) SetOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus, linkedOrderID *int64) error {
	if status != domain.StatusAccepted && status != domain.StatusSkipped {
		return fmt.Errorf("status %q cannot be set directly", status)
	}
	if status == domain.StatusSkipped {
		linkedOrderID = nil
	}
	return s.orders.SetOrderStatus(ctx, orderID, status, linkedOrderID)
}

// OrderTimeline returns the month-bucketed suggested order schedule.
func (s *PlanService) OrderTimeline(ctx context.Context, dealerID int64) (*domain.OrderTimeline, error) {
	cfg, err := s.configs.GetOrCreateConfig(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	if timeline, ok, err := s.reports.GetTimeline(ctx, cfg.ID); err != nil {
		log.Warn().Err(err).Msg("report cache read failed")
	} else if ok {
		return timeline, nil
	}

	items, err := s.orders.ListSuggestedOrders(ctx, cfg.ID, nil)
	if err != nil {
		return nil, err
	}

	timeline := reporting.BuildOrderTimeline(items)

	if err := s.reports.SetTimeline(ctx, cfg.ID, timeline); err != nil {
		log.Warn().Err(err).Msg("report cache write failed")
	}

	return timeline, nil
}

// ExportPlan renders the dealer's pending plan in the given format
// ("csv" or "xlsx"), archives it and returns the payload with its archive
// key.
func (s *PlanService) ExportPlan(ctx context.Context, dealerID int64, format string) ([]byte, string, error) {
	cfg, err := s.configs.GetOrCreateConfig(ctx, dealerID)
	if err != nil {
		return nil, "", err
	}

	pending := domain.StatusPending
	items, err := s.orders.ListSuggestedOrders(ctx, cfg.ID, &pending)
	if err != nil {
		return nil, "", err
	}

	var payload []byte
	switch format {
	case "csv":
		payload, err = reporting.PlanCSV(items)
	case "xlsx":
		payload, err = reporting.PlanXLSX(items)
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to render plan export: %w", err)
	}

	key := fmt.Sprintf("plans/dealer-%d/%s.%s", dealerID, time.Now().Format("20060102-150405"), format)
	if s.archive != nil {
		if err := s.archive.Put(ctx, key, payload); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to archive plan export")
		}
	}

	return payload, key, nil
}
