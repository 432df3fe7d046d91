package postgres

import (
	"context"
	"fmt"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type configRepository struct {
	db *DB
}

func NewConfigRepository(db *DB) *configRepository {
	return &configRepository{db: db}
}

// GetOrCreateConfig returns the dealer's config, inserting the default row
// on first access. The insert is an upsert so concurrent first reads
// converge on one row.
func (r *configRepository) GetOrCreateConfig(ctx context.Context, dealerID int64) (*domain.ForecastConfig, error) {
	defaults := domain.DefaultConfig(dealerID)

	query := `
		INSERT INTO forecast_configs (
			dealer_id, history_period, forecast_horizon, use_seasonality,
			confidence_level, market_growth_rate, local_market_factor,
			safety_stock_days, lead_time_days, min_order_quantity,
			order_multiple, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (dealer_id) DO UPDATE SET dealer_id = EXCLUDED.dealer_id
		RETURNING id, dealer_id, history_period, forecast_horizon,
			use_seasonality, confidence_level, market_growth_rate,
			local_market_factor, safety_stock_days, lead_time_days,
			min_order_quantity, order_multiple, created_at, updated_at
	`

	var cfg domain.ForecastConfig
	err := r.db.GetContext(ctx, &cfg, query,
		dealerID,
		defaults.HistoryPeriod,
		defaults.ForecastHorizon,
		defaults.UseSeasonality,
		defaults.ConfidenceLevel,
		defaults.MarketGrowthRate,
		defaults.LocalMarketFactor,
		defaults.SafetyStockDays,
		defaults.LeadTimeDays,
		defaults.MinOrderQuantity,
		defaults.OrderMultiple,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create forecast config: %w", err)
	}

	return &cfg, nil
}

// UpdateConfig applies a partial update and returns the stored config.
func (r *configRepository) UpdateConfig(ctx context.Context, dealerID int64, patch *domain.ConfigPatch) (*domain.ForecastConfig, error) {
	var updated *domain.ForecastConfig

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		cfg, err := r.GetOrCreateConfig(ctx, dealerID)
		if err != nil {
			return err
		}

		patch.Apply(cfg)

		query := `
			UPDATE forecast_configs SET
				history_period = :history_period,
				forecast_horizon = :forecast_horizon,
				use_seasonality = :use_seasonality,
				confidence_level = :confidence_level,
				market_growth_rate = :market_growth_rate,
				local_market_factor = :local_market_factor,
				safety_stock_days = :safety_stock_days,
				lead_time_days = :lead_time_days,
				min_order_quantity = :min_order_quantity,
				order_multiple = :order_multiple,
				updated_at = NOW()
			WHERE id = :id
		`
		if _, err := tx.NamedExecContext(ctx, query, cfg); err != nil {
			return fmt.Errorf("failed to update forecast config: %w", err)
		}

		updated = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
