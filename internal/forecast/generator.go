// Package forecast builds per-product monthly demand forecasts over a
// configured horizon. The build itself is pure; callers persist the result
// through the forecast repository's replace operation.
package forecast

import (
	"math"
	"time"

	"github.com/dealerbridge/forecast-go/internal/analyzer"
	"github.com/dealerbridge/forecast-go/internal/domain"
)

// MonthLabelFormat is the label used for forecast periods across summaries
// and reports.
const MonthLabelFormat = "Jan 2006"

// Floor demand for products with no history at all, so a brand-new product
// does not dead-end at a zero forecast.
const newProductBaseDemand = 10.0

// Trailing window used to seed the base demand level.
const baseDemandWindow = 6

// ProductForecast is the output of one product's build: the periods to
// persist plus the run summary.
type ProductForecast struct {
	Periods []domain.DemandForecast
	Summary domain.ForecastSummary
}

// BuildProductForecast produces the forecast periods for one product from
// its raw demand history. The history is aggregated to monthly granularity
// internally; now anchors the horizon (periods start at the month after now).
func BuildProductForecast(cfg *domain.ForecastConfig, product *domain.Product, history []domain.HistoricalDemandPoint, now time.Time) ProductForecast {
	monthly := analyzer.AggregateMonthly(history)

	seasonal := domain.FlatSeasonalFactors()
	if cfg.UseSeasonality {
		seasonal = analyzer.CalculateSeasonalFactors(monthly)
	}
	trend := analyzer.AnalyzeTrend(monthly)

	baseDemand := trailingAverage(monthly, baseDemandWindow)
	if len(monthly) == 0 {
		baseDemand = newProductBaseDemand
	}

	quantities := make([]float64, len(monthly))
	for i, p := range monthly {
		quantities[i] = p.Quantity
	}
	baseStdErr := analyzer.StandardError(quantities)

	periods := make([]domain.DemandForecast, 0, cfg.ForecastHorizon)
	withHistory := 0

	for i := 1; i <= cfg.ForecastHorizon; i++ {
		periodStart := firstOfMonth(now).AddDate(0, i, 0)
		periodEnd := periodStart.AddDate(0, 1, -1)

		trendComponent := trend.Slope * float64(i)
		seasonalFactor := seasonal.Monthly[int(periodStart.Month())-1]
		growthFactor := 1 + (cfg.MarketGrowthRate/100)*(float64(i)/12)

		raw := (baseDemand + trendComponent) * seasonalFactor * growthFactor * cfg.LocalMarketFactor
		forecasted := int(math.Round(math.Max(0, raw)))

		// Uncertainty widens the further out the period sits.
		stdErr := baseStdErr * math.Sqrt(1+float64(i)/12)
		lower, upper := analyzer.ConfidenceInterval(float64(forecasted), stdErr, cfg.ConfidenceLevel)

		histAvg := sameMonthAverage(monthly, periodStart.Month())
		var yoy *float64
		if histAvg != nil && *histAvg != 0 {
			change := (float64(forecasted) - *histAvg) / *histAvg * 100
			yoy = &change
		}
		if histAvg != nil {
			withHistory++
		}

		periods = append(periods, domain.DemandForecast{
			ConfigID:           cfg.ID,
			ProductID:          product.ID,
			PeriodStart:        periodStart,
			PeriodEnd:          periodEnd,
			ForecastedDemand:   forecasted,
			LowerBound:         int(math.Floor(lower)),
			UpperBound:         int(math.Ceil(upper)),
			HistoricalAverage:  histAvg,
			YearOverYearChange: yoy,
			TrendComponent:     trendComponent,
			SeasonalComponent:  seasonalFactor,
		})
	}

	return ProductForecast{
		Periods: periods,
		Summary: summarize(product, periods, trend.Direction, withHistory),
	}
}

func summarize(product *domain.Product, periods []domain.DemandForecast, direction domain.TrendDirection, withHistory int) domain.ForecastSummary {
	summary := domain.ForecastSummary{
		ProductID:      product.ID,
		ProductName:    product.Name,
		TrendDirection: direction,
	}
	if len(periods) == 0 {
		return summary
	}

	peak, trough := periods[0], periods[0]
	for _, p := range periods {
		summary.TotalForecast += p.ForecastedDemand
		if p.ForecastedDemand > peak.ForecastedDemand {
			peak = p
		}
		if p.ForecastedDemand < trough.ForecastedDemand {
			trough = p
		}
	}

	summary.AvgMonthlyForecast = float64(summary.TotalForecast) / float64(len(periods))
	summary.PeakMonth = peak.PeriodStart.Format(MonthLabelFormat)
	summary.TroughMonth = trough.PeriodStart.Format(MonthLabelFormat)

	// Confidence rewards forecasts backed by real same-month history and
	// never reaches certainty.
	backed := float64(withHistory) / float64(len(periods))
	summary.ConfidenceScore = math.Min(0.95, 0.5+0.45*backed)

	return summary
}

// trailingAverage averages the last window points of a monthly series.
func trailingAverage(monthly []domain.HistoricalDemandPoint, window int) float64 {
	if len(monthly) == 0 {
		return 0
	}

	start := len(monthly) - window
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, p := range monthly[start:] {
		sum += p.Quantity
	}

	return sum / float64(len(monthly)-start)
}

// sameMonthAverage averages historical points falling in the given calendar
// month, nil when the month never appears in the history.
func sameMonthAverage(monthly []domain.HistoricalDemandPoint, month time.Month) *float64 {
	var sum float64
	var count int
	for _, p := range monthly {
		if p.Date.Month() == month {
			sum += p.Quantity
			count++
		}
	}
	if count == 0 {
		return nil
	}

	avg := sum / float64(count)

	return &avg
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
