package domain

// ForecastChartPoint is one month on the forecast chart: the forecast line
// plus its confidence band.
type ForecastChartPoint struct {
	Label    string `json:"label"`
	Forecast int    `json:"forecast"`
	Lower    int    `json:"lower"`
	Upper    int    `json:"upper"`
}

// ForecastChart is the chart-ready forecast series. When no single product
// is requested the points are summed across products.
type ForecastChart struct {
	Points []ForecastChartPoint `json:"points"`
}

// TimelineOrder is one order entry inside a timeline bucket.
type TimelineOrder struct {
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	Priority    OrderPriority `json:"priority"`
}

// OrderTimelineBucket groups suggested orders due in one calendar month.
type OrderTimelineBucket struct {
	Month         string          `json:"month"`
	OrderCount    int             `json:"order_count"`
	TotalUnits    int             `json:"total_units"`
	EstimatedCost float64         `json:"estimated_cost"`
	Orders        []TimelineOrder `json:"orders"`
}

// OrderTimeline is the month-bucketed suggested order schedule.
type OrderTimeline struct {
	Buckets []OrderTimelineBucket `json:"buckets"`
}
