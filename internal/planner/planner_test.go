package planner

import (
	"testing"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planNow = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

func planConfig() *domain.ForecastConfig {
	cfg := domain.DefaultConfig(1)
	cfg.ID = 100
	cfg.SafetyStockDays = 14
	cfg.LeadTimeDays = 7
	cfg.MinOrderQuantity = 1
	cfg.OrderMultiple = 1
	return cfg
}

func forecastPeriods(start time.Time, demands ...int) []domain.DemandForecast {
	periods := make([]domain.DemandForecast, 0, len(demands))
	for i, d := range demands {
		periodStart := start.AddDate(0, i, 0)
		periods = append(periods, domain.DemandForecast{
			ConfigID:         100,
			ProductID:        7,
			PeriodStart:      periodStart,
			PeriodEnd:        periodStart.AddDate(0, 1, -1),
			ForecastedDemand: d,
		})
	}
	return periods
}

func TestBuildProductOrdersZeroStockIsCritical(t *testing.T) {
	cfg := planConfig()
	product := &domain.Product{ID: 7, Name: "Oil Filter", Price: 14.5, CostPrice: 5.2, CurrentStock: 0}

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := BuildProductOrders(cfg, product, forecastPeriods(start, 30, 30, 30))

	require.NotEmpty(t, orders)
	first := orders[0]

	assert.Equal(t, domain.PriorityCritical, first.Priority)
	assert.Equal(t, 100.0, first.Reasoning.StockoutRisk)
	assert.Equal(t, domain.RiskHigh, first.Reasoning.RiskLevel)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, start, first.ExpectedDeliveryDate)
	assert.Equal(t, start.AddDate(0, 0, -cfg.LeadTimeDays), first.SuggestedOrderDate)
}

func TestBuildProductOrdersHealthyStockEmitsNothing(t *testing.T) {
	cfg := planConfig()
	product := &domain.Product{ID: 7, Name: "Oil Filter", CurrentStock: 1000}

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := BuildProductOrders(cfg, product, forecastPeriods(start, 30, 30, 30))

	assert.Empty(t, orders)
}

func TestBuildProductOrdersRefillsToBuffer(t *testing.T) {
	cfg := planConfig()
	product := &domain.Product{ID: 7, Name: "Oil Filter", CostPrice: 10, Price: 20, CurrentStock: 0}

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := BuildProductOrders(cfg, product, forecastPeriods(start, 30, 30, 30))

	require.NotEmpty(t, orders)
	first := orders[0]

	// dailyDemand = 1, safety stock 14, reorder point 14+7=21.
	// Projected stock after month 1 is -30, so the deficit is
	// 21-(-30) + 2*30 = 111.
	assert.Equal(t, 111, first.SuggestedQuantity)
	assert.Equal(t, -30, first.ProjectedStock)
	assert.Equal(t, 30.0, first.ProjectedDemand)
	assert.Equal(t, float64(111)*10, first.EstimatedCost)
	assert.Equal(t, float64(111)*20, first.EstimatedValue)

	// The order lands at period start: 81 on hand going into month 2, so
	// months 2 and 3 stay above the reorder point (81-30=51, 51-30=21).
	assert.Len(t, orders, 1)
}

func TestBuildProductOrdersOrderMultipleRounding(t *testing.T) {
	cfg := planConfig()
	cfg.OrderMultiple = 25
	product := &domain.Product{ID: 7, Name: "Oil Filter", CurrentStock: 0}

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := BuildProductOrders(cfg, product, forecastPeriods(start, 30))

	require.Len(t, orders, 1)
	// Raw quantity 111 rounds up to the next multiple of 25.
	assert.Equal(t, 125, orders[0].SuggestedQuantity)
}

func TestBuildProductOrdersMinimumQuantity(t *testing.T) {
	cfg := planConfig()
	cfg.MinOrderQuantity = 500
	product := &domain.Product{ID: 7, Name: "Oil Filter", CurrentStock: 0}

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := BuildProductOrders(cfg, product, forecastPeriods(start, 30))

	require.Len(t, orders, 1)
	assert.Equal(t, 500, orders[0].SuggestedQuantity)
	assert.Equal(t, 500, orders[0].MinimumQuantity)

	// 500 units against 30/month demand is heavy overstock.
	assert.Greater(t, orders[0].Reasoning.OverstockRisk, 0.0)
}

func TestBuildProductOrdersNoPeriods(t *testing.T) {
	cfg := planConfig()
	product := &domain.Product{ID: 7, Name: "Oil Filter", CurrentStock: 0}

	assert.Nil(t, BuildProductOrders(cfg, product, nil))
}

func TestBuildProductOrdersZeroDemand(t *testing.T) {
	cfg := planConfig()
	product := &domain.Product{ID: 7, Name: "Oil Filter", CurrentStock: 0}

	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	orders := BuildProductOrders(cfg, product, forecastPeriods(start, 0, 0))

	// Zero forecasted demand means a zero reorder point; stock never dips
	// below it and nothing is suggested.
	assert.Empty(t, orders)
}

func TestCalculateEOQ(t *testing.T) {
	// sqrt(2*1200*50/2) = sqrt(60000) ≈ 244.9.
	assert.Equal(t, 245, CalculateEOQ(1200, 50, 2))

	// Non-positive holding cost falls back to a month of demand.
	assert.Equal(t, 100, CalculateEOQ(1200, 50, 0))
	assert.Equal(t, 100, CalculateEOQ(1200, 50, -1))
}

func TestStockoutRiskScaling(t *testing.T) {
	assert.Equal(t, 100.0, stockoutRisk(0, 20))
	assert.Equal(t, 100.0, stockoutRisk(-5, 20))
	assert.InDelta(t, 50.0, stockoutRisk(10, 20), 1e-9)
	assert.InDelta(t, 0.0, stockoutRisk(25, 20), 1e-9)
	assert.Equal(t, 0.0, stockoutRisk(5, 0))
}

func TestPriorityAndRiskLevelTiers(t *testing.T) {
	// The two classifications intentionally use different thresholds.
	assert.Equal(t, domain.PriorityHigh, domain.PriorityForStockoutRisk(60))
	assert.Equal(t, domain.RiskMedium, domain.RiskLevelForStockoutRisk(60))

	assert.Equal(t, domain.PriorityNormal, domain.PriorityForStockoutRisk(30))
	assert.Equal(t, domain.RiskLow, domain.RiskLevelForStockoutRisk(30))

	assert.Equal(t, domain.PriorityCritical, domain.PriorityForStockoutRisk(85))
	assert.Equal(t, domain.RiskHigh, domain.RiskLevelForStockoutRisk(85))
}

func TestSummarize(t *testing.T) {
	items := []domain.SuggestedOrderItem{
		{
			SuggestedQuantity:  100,
			EstimatedCost:      500,
			EstimatedValue:     900,
			Priority:           domain.PriorityCritical,
			SuggestedOrderDate: planNow.AddDate(0, 0, 3),
		},
		{
			SuggestedQuantity:  50,
			EstimatedCost:      250,
			EstimatedValue:     450,
			Priority:           domain.PriorityLow,
			SuggestedOrderDate: planNow.AddDate(0, 0, 20),
		},
		{
			SuggestedQuantity:  10,
			EstimatedCost:      50,
			EstimatedValue:     90,
			Priority:           domain.PriorityNormal,
			SuggestedOrderDate: planNow.AddDate(0, 0, 60),
		},
	}

	summary := Summarize(items, planNow)

	assert.Equal(t, 3, summary.OrderCount)
	assert.Equal(t, 160, summary.TotalUnits)
	assert.Equal(t, 800.0, summary.TotalEstimatedCost)
	assert.Equal(t, 1440.0, summary.TotalEstimatedValue)
	assert.Equal(t, 1, summary.CriticalCount)
	assert.Equal(t, 1, summary.DueWithin7Days)
	assert.Equal(t, 2, summary.DueWithin30Days)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, planNow)
	assert.Zero(t, summary.OrderCount)
	assert.Zero(t, summary.TotalUnits)
}
