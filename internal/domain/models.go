// internal/domain/models.go
package domain

import "time"

// Dealer represents a dealer account whose demand is planned
type Dealer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Region    string    `json:"region" db:"region"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Product represents an orderable product with stock aggregated across locations
type Product struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	SKU          string  `json:"sku" db:"sku"`
	Price        float64 `json:"price" db:"price"`
	CostPrice    float64 `json:"cost_price" db:"cost_price"`
	CurrentStock int     `json:"current_stock" db:"current_stock"`
}

// HistoricalDemandPoint is one unit of historical demand, derived from
// confirmed-or-later order line items. Regenerated per run, never persisted
// on its own.
type HistoricalDemandPoint struct {
	Date      time.Time `json:"date" db:"date"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  float64   `json:"quantity" db:"quantity"`
}

// ForecastConfig holds per-dealer tunable planning parameters.
// One row per dealer, created lazily with defaults on first access.
type ForecastConfig struct {
	ID                int64     `json:"id" db:"id"`
	DealerID          int64     `json:"dealer_id" db:"dealer_id"`
	HistoryPeriod     int       `json:"history_period" db:"history_period"`     // months of history to read
	ForecastHorizon   int       `json:"forecast_horizon" db:"forecast_horizon"` // months to forecast
	UseSeasonality    bool      `json:"use_seasonality" db:"use_seasonality"`
	ConfidenceLevel   float64   `json:"confidence_level" db:"confidence_level"` // 0.90, 0.95 or 0.99
	MarketGrowthRate  float64   `json:"market_growth_rate" db:"market_growth_rate"` // %/yr
	LocalMarketFactor float64   `json:"local_market_factor" db:"local_market_factor"`
	SafetyStockDays   int       `json:"safety_stock_days" db:"safety_stock_days"`
	LeadTimeDays      int       `json:"lead_time_days" db:"lead_time_days"`
	MinOrderQuantity  int       `json:"min_order_quantity" db:"min_order_quantity"`
	OrderMultiple     int       `json:"order_multiple" db:"order_multiple"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultConfig returns the config a dealer gets on first access.
func DefaultConfig(dealerID int64) *ForecastConfig {
	return &ForecastConfig{
		DealerID:          dealerID,
		HistoryPeriod:     24,
		ForecastHorizon:   6,
		UseSeasonality:    true,
		ConfidenceLevel:   0.95,
		MarketGrowthRate:  0,
		LocalMarketFactor: 1.0,
		SafetyStockDays:   14,
		LeadTimeDays:      14,
		MinOrderQuantity:  1,
		OrderMultiple:     1,
	}
}

// ConfigPatch carries a partial config update; nil fields are left unchanged.
type ConfigPatch struct {
	HistoryPeriod     *int     `json:"history_period"`
	ForecastHorizon   *int     `json:"forecast_horizon"`
	UseSeasonality    *bool    `json:"use_seasonality"`
	ConfidenceLevel   *float64 `json:"confidence_level"`
	MarketGrowthRate  *float64 `json:"market_growth_rate"`
	LocalMarketFactor *float64 `json:"local_market_factor"`
	SafetyStockDays   *int     `json:"safety_stock_days"`
	LeadTimeDays      *int     `json:"lead_time_days"`
	MinOrderQuantity  *int     `json:"min_order_quantity"`
	OrderMultiple     *int     `json:"order_multiple"`
}

// Apply overlays the patch onto cfg.
func (p *ConfigPatch) Apply(cfg *ForecastConfig) {
	if p.HistoryPeriod != nil {
		cfg.HistoryPeriod = *p.HistoryPeriod
	}
	if p.ForecastHorizon != nil {
		cfg.ForecastHorizon = *p.ForecastHorizon
	}
	if p.UseSeasonality != nil {
		cfg.UseSeasonality = *p.UseSeasonality
	}
	if p.ConfidenceLevel != nil {
		cfg.ConfidenceLevel = *p.ConfidenceLevel
	}
	if p.MarketGrowthRate != nil {
		cfg.MarketGrowthRate = *p.MarketGrowthRate
	}
	if p.LocalMarketFactor != nil {
		cfg.LocalMarketFactor = *p.LocalMarketFactor
	}
	if p.SafetyStockDays != nil {
		cfg.SafetyStockDays = *p.SafetyStockDays
	}
	if p.LeadTimeDays != nil {
		cfg.LeadTimeDays = *p.LeadTimeDays
	}
	if p.MinOrderQuantity != nil {
		cfg.MinOrderQuantity = *p.MinOrderQuantity
	}
	if p.OrderMultiple != nil {
		cfg.OrderMultiple = *p.OrderMultiple
	}
}

// SeasonalFactors holds 12 multiplicative monthly factors (index 0 = January).
// Ephemeral per generation run.
type SeasonalFactors struct {
	Monthly         [12]float64 `json:"monthly"`
	Calculated      bool        `json:"calculated"`
	PatternStrength float64     `json:"pattern_strength"` // 0..1
}

// FlatSeasonalFactors returns the no-pattern fallback (all factors 1.0).
func FlatSeasonalFactors() SeasonalFactors {
	sf := SeasonalFactors{}
	for i := range sf.Monthly {
		sf.Monthly[i] = 1.0
	}
	return sf
}

// TrendAnalysis is the result of a linear regression over a monthly demand series.
type TrendAnalysis struct {
	Slope             float64        `json:"slope"`
	Intercept         float64        `json:"intercept"`
	RSquared          float64        `json:"r_squared"`
	Direction         TrendDirection `json:"direction"`
	MonthlyGrowthRate float64        `json:"monthly_growth_rate"` // %/month
}

// DemandForecast is one persisted forecast period for a (config, product) pair.
// All rows for the pair are wiped and rewritten on every generation run.
type DemandForecast struct {
	ID                 int64     `json:"id" db:"id"`
	ConfigID           int64     `json:"config_id" db:"config_id"`
	ProductID          int64     `json:"product_id" db:"product_id"`
	PeriodStart        time.Time `json:"period_start" db:"period_start"`
	PeriodEnd          time.Time `json:"period_end" db:"period_end"`
	ForecastedDemand   int       `json:"forecasted_demand" db:"forecasted_demand"`
	LowerBound         int       `json:"lower_bound" db:"lower_bound"`
	UpperBound         int       `json:"upper_bound" db:"upper_bound"`
	HistoricalAverage  *float64  `json:"historical_average" db:"historical_average"`
	YearOverYearChange *float64  `json:"year_over_year_change" db:"year_over_year_change"`
	TrendComponent     float64   `json:"trend_component" db:"trend_component"`
	SeasonalComponent  float64   `json:"seasonal_component" db:"seasonal_component"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
}

// ForecastSummary aggregates one product's forecast run.
type ForecastSummary struct {
	ProductID          int64          `json:"product_id"`
	ProductName        string         `json:"product_name"`
	TotalForecast      int            `json:"total_forecast"`
	AvgMonthlyForecast float64        `json:"avg_monthly_forecast"`
	PeakMonth          string         `json:"peak_month"`
	TroughMonth        string         `json:"trough_month"`
	TrendDirection     TrendDirection `json:"trend_direction"`
	ConfidenceScore    float64        `json:"confidence_score"`
}

// ProductFailure records a product whose forecast or plan failed within a run.
type ProductFailure struct {
	ProductID int64  `json:"product_id"`
	Error     string `json:"error"`
}

// ForecastRunResult is the outcome of one per-dealer generation run.
type ForecastRunResult struct {
	DealerID    int64             `json:"dealer_id"`
	ConfigID    int64             `json:"config_id"`
	Summaries   []ForecastSummary `json:"summaries"`
	Failed      []ProductFailure  `json:"failed,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// OrderReasoning explains why a suggested order was emitted.
type OrderReasoning struct {
	StockoutRisk  float64   `json:"stockout_risk"`  // 0-100
	OverstockRisk float64   `json:"overstock_risk"` // 0+
	RiskLevel     RiskLevel `json:"risk_level"`
	Summary       string    `json:"summary"`
}

// SuggestedOrderItem is one persisted suggested purchase. Pending rows are
// wiped and rewritten on every plan run; accepted/skipped rows survive.
type SuggestedOrderItem struct {
	ID                   int64          `json:"id" db:"id"`
	ConfigID             int64          `json:"config_id" db:"config_id"`
	ProductID            int64          `json:"product_id" db:"product_id"`
	ProductName          string         `json:"product_name" db:"product_name"`
	SuggestedOrderDate   time.Time      `json:"suggested_order_date" db:"suggested_order_date"`
	ExpectedDeliveryDate time.Time      `json:"expected_delivery_date" db:"expected_delivery_date"`
	SuggestedQuantity    int            `json:"suggested_quantity" db:"suggested_quantity"`
	MinimumQuantity      int            `json:"minimum_quantity" db:"minimum_quantity"`
	EconomicOrderQty     int            `json:"economic_order_qty" db:"economic_order_qty"`
	CurrentStock         int            `json:"current_stock" db:"current_stock"`
	ProjectedStock       int            `json:"projected_stock" db:"projected_stock"`
	ProjectedDemand      float64        `json:"projected_demand" db:"projected_demand"`
	EstimatedCost        float64        `json:"estimated_cost" db:"estimated_cost"`
	EstimatedValue       float64        `json:"estimated_value" db:"estimated_value"`
	Priority             OrderPriority  `json:"priority" db:"priority"`
	Status               OrderStatus    `json:"status" db:"status"`
	LinkedOrderID        *int64         `json:"linked_order_id" db:"linked_order_id"`
	Reasoning            OrderReasoning `json:"reasoning" db:"reasoning"`
	CreatedAt            time.Time      `json:"created_at" db:"created_at"`
}

// PlanSummary aggregates one plan run.
type PlanSummary struct {
	OrderCount          int     `json:"order_count"`
	TotalUnits          int     `json:"total_units"`
	TotalEstimatedCost  float64 `json:"total_estimated_cost"`
	TotalEstimatedValue float64 `json:"total_estimated_value"`
	CriticalCount       int     `json:"critical_count"`
	DueWithin7Days      int     `json:"due_within_7_days"`
	DueWithin30Days     int     `json:"due_within_30_days"`
}

// PlanResult is the outcome of one per-dealer planning run.
type PlanResult struct {
	DealerID    int64                `json:"dealer_id"`
	ConfigID    int64                `json:"config_id"`
	Items       []SuggestedOrderItem `json:"items"`
	Summary     PlanSummary          `json:"summary"`
	Failed      []ProductFailure     `json:"failed,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
}
