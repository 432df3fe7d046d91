package postgres

import (
	"context"
	"fmt"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/jmoiron/sqlx"
)

type forecastRepository struct {
	db *DB
}

func NewForecastRepository(db *DB) *forecastRepository {
	return &forecastRepository{db: db}
}

// ReplaceForecasts wipes and rewrites a (config, product) pair's forecasts
// in one transaction. No merge, no versioning: the new set is the truth.
func (r *forecastRepository) ReplaceForecasts(ctx context.Context, configID, productID int64, periods []domain.DemandForecast) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM demand_forecasts WHERE config_id = $1 AND product_id = $2`,
			configID, productID)
		if err != nil {
			return fmt.Errorf("failed to delete forecasts: %w", err)
		}

		if len(periods) == 0 {
			return nil
		}

		query := `
			INSERT INTO demand_forecasts (
				config_id, product_id, period_start, period_end,
				forecasted_demand, lower_bound, upper_bound,
				historical_average, year_over_year_change,
				trend_component, seasonal_component, created_at
			) VALUES (
				:config_id, :product_id, :period_start, :period_end,
				:forecasted_demand, :lower_bound, :upper_bound,
				:historical_average, :year_over_year_change,
				:trend_component, :seasonal_component, NOW()
			)
		`
		if _, err := tx.NamedExecContext(ctx, query, periods); err != nil {
			return fmt.Errorf("failed to insert forecasts: %w", err)
		}

		return nil
	})
}

func (r *forecastRepository) ListForecasts(ctx context.Context, configID int64, productID *int64) ([]domain.DemandForecast, error) {
	query := `
		SELECT id, config_id, product_id, period_start, period_end,
			forecasted_demand, lower_bound, upper_bound,
			historical_average, year_over_year_change,
			trend_component, seasonal_component, created_at
		FROM demand_forecasts
		WHERE config_id = $1
	`
	args := []interface{}{configID}

	if productID != nil {
		query += " AND product_id = $2"
		args = append(args, *productID)
	}
	query += " ORDER BY product_id, period_start"

	var forecasts []domain.DemandForecast
	if err := r.db.SelectContext(ctx, &forecasts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list forecasts: %w", err)
	}

	return forecasts, nil
}
