package domain

import "strings"

// TrendDirection classifies the slope of a demand trend.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// OrderStatus is the lifecycle state of a suggested order.
// Pending rows are regenerated wholesale on each plan run; accepted and
// skipped rows are dealer decisions and survive regeneration.
type OrderStatus string

const (
	StatusPending  OrderStatus = "pending"
	StatusAccepted OrderStatus = "accepted"
	StatusOrdered  OrderStatus = "ordered"
	StatusSkipped  OrderStatus = "skipped"
)

var orderStatuses = map[string]OrderStatus{
	"pending":  StatusPending,
	"accepted": StatusAccepted,
	"ordered":  StatusOrdered,
	"skipped":  StatusSkipped,
}

// ParseOrderStatus returns the status for a given label (case-insensitive).
func ParseOrderStatus(label string) (OrderStatus, bool) {
	status, ok := orderStatuses[strings.ToLower(label)]

	return status, ok
}

// OrderPriority ranks how urgently a suggested order should be placed.
type OrderPriority string

const (
	PriorityCritical OrderPriority = "critical"
	PriorityHigh     OrderPriority = "high"
	PriorityNormal   OrderPriority = "normal"
	PriorityLow      OrderPriority = "low"
)

// PriorityForStockoutRisk maps a 0-100 stockout risk onto an order priority.
func PriorityForStockoutRisk(risk float64) OrderPriority {
	switch {
	case risk > 80:
		return PriorityCritical
	case risk > 50:
		return PriorityHigh
	case risk > 20:
		return PriorityNormal
	default:
		return PriorityLow
	}
}

// RiskLevel is the coarse risk classification carried in order reasoning.
// Thresholds differ from priority on purpose: priority drives the work
// queue, risk level drives the explanation shown to the dealer.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// RiskLevelForStockoutRisk maps a 0-100 stockout risk onto a risk level.
func RiskLevelForStockoutRisk(risk float64) RiskLevel {
	switch {
	case risk > 80:
		return RiskHigh
	case risk > 40:
		return RiskMedium
	default:
		return RiskLow
	}
}
