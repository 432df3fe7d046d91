package forecast

import (
	"testing"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *domain.ForecastConfig {
	cfg := domain.DefaultConfig(1)
	cfg.ID = 100
	cfg.ForecastHorizon = 3
	return cfg
}

func testProduct() *domain.Product {
	return &domain.Product{ID: 7, Name: "Oil Filter", SKU: "FLT-2040", Price: 14.5, CostPrice: 5.2, CurrentStock: 100}
}

// flatHistory builds months of one point per month at the given quantity,
// ending the month before now.
func flatHistory(months int, qty float64) []domain.HistoricalDemandPoint {
	points := make([]domain.HistoricalDemandPoint, 0, months)
	for m := months; m >= 1; m-- {
		date := time.Date(testNow.Year(), testNow.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		points = append(points, domain.HistoricalDemandPoint{Date: date, ProductID: 7, Quantity: qty})
	}
	return points
}

func TestBuildProductForecastFlatDemand(t *testing.T) {
	cfg := testConfig()
	pf := BuildProductForecast(cfg, testProduct(), flatHistory(24, 10), testNow)

	require.Len(t, pf.Periods, 3)

	for i, p := range pf.Periods {
		assert.Equal(t, 10, p.ForecastedDemand, "period %d", i)
		// Flat history has zero variance, so the interval collapses.
		assert.Equal(t, 10, p.LowerBound)
		assert.Equal(t, 10, p.UpperBound)
		require.NotNil(t, p.HistoricalAverage)
		assert.InDelta(t, 10.0, *p.HistoricalAverage, 1e-9)
		require.NotNil(t, p.YearOverYearChange)
		assert.InDelta(t, 0.0, *p.YearOverYearChange, 1e-9)
		assert.InDelta(t, 1.0, p.SeasonalComponent, 1e-9)
	}

	assert.Equal(t, domain.TrendStable, pf.Summary.TrendDirection)
	assert.Equal(t, 30, pf.Summary.TotalForecast)
	assert.InDelta(t, 10.0, pf.Summary.AvgMonthlyForecast, 1e-9)
	// Every period is backed by same-month history, so confidence caps out.
	assert.InDelta(t, 0.95, pf.Summary.ConfidenceScore, 1e-9)
}

func TestBuildProductForecastPeriodsContiguous(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastHorizon = 6
	pf := BuildProductForecast(cfg, testProduct(), flatHistory(24, 10), testNow)

	require.Len(t, pf.Periods, 6)

	// Periods start the month after now and are contiguous monthly spans.
	expected := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	for _, p := range pf.Periods {
		assert.Equal(t, expected, p.PeriodStart)
		assert.Equal(t, expected.AddDate(0, 1, -1), p.PeriodEnd)
		expected = expected.AddDate(0, 1, 0)
	}
}

func TestBuildProductForecastNoHistoryFloor(t *testing.T) {
	cfg := testConfig()
	pf := BuildProductForecast(cfg, testProduct(), nil, testNow)

	require.Len(t, pf.Periods, 3)
	for _, p := range pf.Periods {
		assert.Equal(t, 10, p.ForecastedDemand)
		assert.Nil(t, p.HistoricalAverage)
		assert.Nil(t, p.YearOverYearChange)
	}

	// No same-month history anywhere: confidence sits at the floor.
	assert.InDelta(t, 0.5, pf.Summary.ConfidenceScore, 1e-9)
}

func TestBuildProductForecastBoundsInvariant(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastHorizon = 12

	// Noisy but trendless demand to get a nonzero standard error.
	var history []domain.HistoricalDemandPoint
	for m := 24; m >= 1; m-- {
		qty := 10.0
		if m%2 == 0 {
			qty = 14.0
		}
		date := time.Date(testNow.Year(), testNow.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		history = append(history, domain.HistoricalDemandPoint{Date: date, ProductID: 7, Quantity: qty})
	}

	pf := BuildProductForecast(cfg, testProduct(), history, testNow)

	for _, p := range pf.Periods {
		assert.GreaterOrEqual(t, p.ForecastedDemand, 0)
		assert.LessOrEqual(t, p.LowerBound, p.ForecastedDemand)
		assert.GreaterOrEqual(t, p.UpperBound, p.ForecastedDemand)
	}
}

func TestBuildProductForecastIntervalWidensWithHorizon(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastHorizon = 12
	cfg.UseSeasonality = false

	var history []domain.HistoricalDemandPoint
	for m := 24; m >= 1; m-- {
		qty := 100.0
		if m%2 == 0 {
			qty = 120.0
		}
		date := time.Date(testNow.Year(), testNow.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		history = append(history, domain.HistoricalDemandPoint{Date: date, ProductID: 7, Quantity: qty})
	}

	pf := BuildProductForecast(cfg, testProduct(), history, testNow)

	prevWidth := -1
	for _, p := range pf.Periods {
		width := p.UpperBound - p.LowerBound
		assert.GreaterOrEqual(t, width, prevWidth)
		prevWidth = width
	}
	assert.Greater(t, prevWidth, 0)
}

func TestBuildProductForecastGrowthAndMarketFactors(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastHorizon = 12
	cfg.UseSeasonality = false
	cfg.MarketGrowthRate = 12 // linear ramp reaches +12% at month 12
	cfg.LocalMarketFactor = 2

	pf := BuildProductForecast(cfg, testProduct(), flatHistory(24, 100), testNow)

	require.Len(t, pf.Periods, 12)
	// Month 1: 100 * (1 + 0.12/12) * 2 = 202.
	assert.Equal(t, 202, pf.Periods[0].ForecastedDemand)
	// Month 12: 100 * 1.12 * 2 = 224.
	assert.Equal(t, 224, pf.Periods[11].ForecastedDemand)
}

func TestBuildProductForecastNegativeClampedToZero(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastHorizon = 12
	cfg.UseSeasonality = false

	// Steep decline: slope -10/month from a base near 10.
	var quantities []float64
	for v := 120.0; v > 0; v -= 10 {
		quantities = append(quantities, v)
	}
	var history []domain.HistoricalDemandPoint
	for i, q := range quantities {
		date := time.Date(testNow.Year(), testNow.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -(len(quantities) - i), 0)
		history = append(history, domain.HistoricalDemandPoint{Date: date, ProductID: 7, Quantity: q})
	}

	pf := BuildProductForecast(cfg, testProduct(), history, testNow)

	for _, p := range pf.Periods {
		assert.GreaterOrEqual(t, p.ForecastedDemand, 0)
		assert.GreaterOrEqual(t, p.LowerBound, 0)
	}
	assert.Equal(t, 0, pf.Periods[11].ForecastedDemand)
	assert.Equal(t, domain.TrendDown, pf.Summary.TrendDirection)
}

func TestBuildProductForecastSeasonalPeak(t *testing.T) {
	cfg := testConfig()
	cfg.ForecastHorizon = 12

	// June demand doubles the baseline in both history years.
	var history []domain.HistoricalDemandPoint
	for m := 24; m >= 1; m-- {
		date := time.Date(testNow.Year(), testNow.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
		qty := 10.0
		if date.Month() == time.June {
			qty = 20.0
		}
		history = append(history, domain.HistoricalDemandPoint{Date: date, ProductID: 7, Quantity: qty})
	}

	pf := BuildProductForecast(cfg, testProduct(), history, testNow)

	assert.Equal(t, "Jun 2026", pf.Summary.PeakMonth)
}
