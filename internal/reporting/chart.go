// Package reporting reshapes persisted forecasts and suggested orders into
// chart/timeline payloads and plan exports. Pure read/reshape: the only
// arithmetic here is summation and grouping by month label.
package reporting

import (
	"sort"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/forecast"
)

// BuildForecastChart turns forecast periods into a labeled monthly series.
// Periods sharing a calendar month (multiple products) are summed.
func BuildForecastChart(periods []domain.DemandForecast) *domain.ForecastChart {
	type bucket struct {
		start time.Time
		point domain.ForecastChartPoint
	}

	buckets := make(map[string]*bucket)
	for _, p := range periods {
		label := p.PeriodStart.Format(forecast.MonthLabelFormat)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{
				start: firstOfMonth(p.PeriodStart),
				point: domain.ForecastChartPoint{Label: label},
			}
			buckets[label] = b
		}
		b.point.Forecast += p.ForecastedDemand
		b.point.Lower += p.LowerBound
		b.point.Upper += p.UpperBound
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].start.Before(ordered[j].start)
	})

	chart := &domain.ForecastChart{Points: make([]domain.ForecastChartPoint, 0, len(ordered))}
	for _, b := range ordered {
		chart.Points = append(chart.Points, b.point)
	}

	return chart
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
