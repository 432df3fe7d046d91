package reporting

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func TestBuildForecastChartSumsAcrossProducts(t *testing.T) {
	apr := monthStart(2026, time.April)
	may := monthStart(2026, time.May)

	periods := []domain.DemandForecast{
		{ProductID: 1, PeriodStart: apr, ForecastedDemand: 10, LowerBound: 8, UpperBound: 12},
		{ProductID: 2, PeriodStart: apr, ForecastedDemand: 5, LowerBound: 4, UpperBound: 6},
		{ProductID: 1, PeriodStart: may, ForecastedDemand: 11, LowerBound: 9, UpperBound: 13},
	}

	chart := BuildForecastChart(periods)

	require.Len(t, chart.Points, 2)
	assert.Equal(t, "Apr 2026", chart.Points[0].Label)
	assert.Equal(t, 15, chart.Points[0].Forecast)
	assert.Equal(t, 12, chart.Points[0].Lower)
	assert.Equal(t, 18, chart.Points[0].Upper)
	assert.Equal(t, "May 2026", chart.Points[1].Label)
	assert.Equal(t, 11, chart.Points[1].Forecast)
}

func TestBuildForecastChartOrdersByMonth(t *testing.T) {
	// December 2026 sorts after January 2026 even though the labels would
	// reverse under string ordering.
	periods := []domain.DemandForecast{
		{ProductID: 1, PeriodStart: monthStart(2026, time.December), ForecastedDemand: 1},
		{ProductID: 1, PeriodStart: monthStart(2026, time.January), ForecastedDemand: 2},
	}

	chart := BuildForecastChart(periods)

	require.Len(t, chart.Points, 2)
	assert.Equal(t, "Jan 2026", chart.Points[0].Label)
	assert.Equal(t, "Dec 2026", chart.Points[1].Label)
}

func TestBuildForecastChartEmpty(t *testing.T) {
	chart := BuildForecastChart(nil)
	assert.Empty(t, chart.Points)
}

func TestBuildOrderTimeline(t *testing.T) {
	items := []domain.SuggestedOrderItem{
		{
			ProductName:        "Oil Filter",
			SuggestedQuantity:  100,
			EstimatedCost:      520,
			Priority:           domain.PriorityCritical,
			SuggestedOrderDate: time.Date(2026, time.April, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ProductName:        "Brake Pad",
			SuggestedQuantity:  40,
			EstimatedCost:      800,
			Priority:           domain.PriorityNormal,
			SuggestedOrderDate: time.Date(2026, time.April, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			ProductName:        "Oil Filter",
			SuggestedQuantity:  60,
			EstimatedCost:      312,
			Priority:           domain.PriorityLow,
			SuggestedOrderDate: time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	timeline := BuildOrderTimeline(items)

	require.Len(t, timeline.Buckets, 2)

	april := timeline.Buckets[0]
	assert.Equal(t, "Apr 2026", april.Month)
	assert.Equal(t, 2, april.OrderCount)
	assert.Equal(t, 140, april.TotalUnits)
	assert.Equal(t, 1320.0, april.EstimatedCost)
	require.Len(t, april.Orders, 2)
	assert.Equal(t, "Oil Filter", april.Orders[0].ProductName)
	assert.Equal(t, domain.PriorityCritical, april.Orders[0].Priority)

	may := timeline.Buckets[1]
	assert.Equal(t, "May 2026", may.Month)
	assert.Equal(t, 1, may.OrderCount)
	assert.Equal(t, 60, may.TotalUnits)
}

func TestBuildOrderTimelineEmpty(t *testing.T) {
	timeline := BuildOrderTimeline(nil)
	assert.Empty(t, timeline.Buckets)
}

func exportItems() []domain.SuggestedOrderItem {
	return []domain.SuggestedOrderItem{
		{
			ProductName:          "Oil Filter",
			SuggestedOrderDate:   time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC),
			ExpectedDeliveryDate: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			SuggestedQuantity:    111,
			EconomicOrderQty:     245,
			CurrentStock:         0,
			ProjectedStock:       -30,
			EstimatedCost:        577.2,
			Priority:             domain.PriorityCritical,
			Status:               domain.StatusPending,
			Reasoning:            domain.OrderReasoning{Summary: "projected stock -30 below reorder point 21"},
		},
	}
}

func TestPlanCSV(t *testing.T) {
	data, err := PlanCSV(exportItems())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, planExportHeader, records[0])
	assert.Equal(t, []string{
		"Oil Filter", "2026-03-25", "2026-04-01", "111", "245", "0", "-30",
		"577.20", "critical", "pending", "projected stock -30 below reorder point 21",
	}, records[1])
}

func TestPlanXLSX(t *testing.T) {
	data, err := PlanXLSX(exportItems())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Order Plan"}, f.GetSheetList())

	rows, err := f.GetRows("Order Plan")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, planExportHeader, rows[0])
	assert.Equal(t, "Oil Filter", rows[1][0])
	assert.Equal(t, "111", rows[1][3])
	assert.Equal(t, "critical", rows[1][8])
}

func TestPlanCSVEmptyPlan(t *testing.T) {
	data, err := PlanCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, planExportHeader, records[0])
}
