// Package analyzer holds the pure numeric demand-analysis functions:
// seasonal factor extraction, trend regression, confidence intervals and
// monthly aggregation. Everything here is stateless and deterministic so the
// forecast generator can sandwich it between its I/O boundaries.
package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
)

// A seasonal pattern needs at least two full years of monthly data points
// before the per-month averages mean anything.
const minSeasonalPoints = 24

// A regression over fewer than three points is just noise.
const minTrendPoints = 3

// CalculateSeasonalFactors derives 12 multiplicative monthly factors from a
// demand series. With fewer than 24 points, or with an all-zero series, it
// returns the flat fallback (all factors 1.0, Calculated=false).
func CalculateSeasonalFactors(points []domain.HistoricalDemandPoint) domain.SeasonalFactors {
	if len(points) < minSeasonalPoints {
		return domain.FlatSeasonalFactors()
	}

	var sums, counts [12]float64
	for _, p := range points {
		m := int(p.Date.Month()) - 1
		sums[m] += p.Quantity
		counts[m]++
	}

	var monthlyAvg [12]float64
	var overall float64
	for m := 0; m < 12; m++ {
		if counts[m] > 0 {
			monthlyAvg[m] = sums[m] / counts[m]
		}
		overall += monthlyAvg[m]
	}
	overall /= 12

	if overall == 0 {
		return domain.FlatSeasonalFactors()
	}

	sf := domain.SeasonalFactors{Calculated: true}
	for m := 0; m < 12; m++ {
		sf.Monthly[m] = monthlyAvg[m] / overall
	}

	// Pattern strength is the coefficient of variation of the factors. The
	// factors average 1.0 by construction, so this is their stddev.
	sf.PatternStrength = clamp01(coefficientOfVariation(sf.Monthly[:]))

	return sf
}

// AnalyzeTrend runs an ordinary least-squares regression over the series,
// indexing points 0..n-1 in date order. Fewer than three points yields the
// zero/stable result.
func AnalyzeTrend(points []domain.HistoricalDemandPoint) domain.TrendAnalysis {
	if len(points) < minTrendPoints {
		return domain.TrendAnalysis{Direction: domain.TrendStable}
	}

	sorted := make([]domain.HistoricalDemandPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	n := float64(len(sorted))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range sorted {
		x := float64(i)
		sumX += x
		sumY += p.Quantity
		sumXY += x * p.Quantity
		sumXX += x * x
	}

	meanX := sumX / n
	meanY := sumY / n

	denom := sumXX - n*meanX*meanX
	if denom == 0 {
		return domain.TrendAnalysis{Direction: domain.TrendStable}
	}

	slope := (sumXY - n*meanX*meanY) / denom
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i, p := range sorted {
		predicted := intercept + slope*float64(i)
		ssRes += (p.Quantity - predicted) * (p.Quantity - predicted)
		ssTot += (p.Quantity - meanY) * (p.Quantity - meanY)
	}

	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	direction := domain.TrendStable
	switch {
	case slope > 0.01*meanY:
		direction = domain.TrendUp
	case slope < -0.01*meanY:
		direction = domain.TrendDown
	}

	growth := 0.0
	if meanY != 0 {
		growth = slope / meanY * 100
	}

	return domain.TrendAnalysis{
		Slope:             slope,
		Intercept:         intercept,
		RSquared:          rSquared,
		Direction:         direction,
		MonthlyGrowthRate: growth,
	}
}

// zScores maps supported confidence levels onto two-sided z-scores.
var zScores = map[float64]float64{
	0.90: 1.645,
	0.95: 1.96,
	0.99: 2.576,
}

// ConfidenceInterval returns the [lower, upper] bounds around a forecast for
// the given confidence level. Unknown levels fall back to 95%. The lower
// bound is floored at zero since demand cannot be negative.
func ConfidenceInterval(forecast, standardError, level float64) (lower, upper float64) {
	z, ok := zScores[level]
	if !ok {
		z = zScores[0.95]
	}

	lower = math.Max(0, forecast-z*standardError)
	upper = forecast + z*standardError

	return lower, upper
}

// StandardError returns the population standard deviation of the sequence,
// 0 for an empty one.
func StandardError(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}

	return math.Sqrt(sq / float64(len(values)))
}

// AggregateMonthly sums quantities by calendar (year, month) and returns one
// point per populated month in ascending order, dated on day 1 of the month.
func AggregateMonthly(points []domain.HistoricalDemandPoint) []domain.HistoricalDemandPoint {
	if len(points) == 0 {
		return nil
	}

	type monthKey struct {
		year  int
		month time.Month
	}

	totals := make(map[monthKey]float64)
	var productID int64
	for _, p := range points {
		key := monthKey{year: p.Date.Year(), month: p.Date.Month()}
		totals[key] += p.Quantity
		productID = p.ProductID
	}

	out := make([]domain.HistoricalDemandPoint, 0, len(totals))
	for key, qty := range totals {
		out = append(out, domain.HistoricalDemandPoint{
			Date:      time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC),
			ProductID: productID,
			Quantity:  qty,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	return StandardError(values) / mean
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
