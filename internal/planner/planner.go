// Package planner turns forecasts and current stock into a suggested
// purchase schedule: reorder points, EOQ-based quantities, priorities and
// explainable reasoning. Like the forecast build, it is pure; the service
// layer persists the plan through the suggested-order repository.
package planner

import (
	"fmt"
	"math"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
)

// The daily rate is seeded from the nearest forecast period only.
const daysPerMonth = 30

// Orders refill to the reorder point plus this many months of demand.
const bufferMonths = 2

// Holding cost is assumed at 20% of unit cost per year.
const holdingCostRate = 0.2

// BuildProductOrders walks a product's forecast periods, projecting stock
// forward and emitting a suggested order whenever projected stock falls
// below the reorder point. Emitted quantities are assumed to land at period
// start, resetting the trajectory for later periods.
func BuildProductOrders(cfg *domain.ForecastConfig, product *domain.Product, periods []domain.DemandForecast) []domain.SuggestedOrderItem {
	if len(periods) == 0 {
		return nil
	}

	dailyDemand := float64(periods[0].ForecastedDemand) / daysPerMonth
	safetyStock := int(math.Ceil(dailyDemand * float64(cfg.SafetyStockDays)))
	reorderPoint := safetyStock + int(math.Ceil(dailyDemand*float64(cfg.LeadTimeDays)))

	var orders []domain.SuggestedOrderItem
	projectedStock := product.CurrentStock

	for _, period := range periods {
		monthlyDemand := float64(period.ForecastedDemand)
		projectedStock -= period.ForecastedDemand

		if projectedStock >= reorderPoint {
			continue
		}

		// Refill to the reorder point plus a buffer of future demand.
		deficit := float64(reorderPoint-projectedStock) + bufferMonths*monthlyDemand
		orderQty := int(math.Ceil(math.Max(float64(cfg.MinOrderQuantity), deficit)))
		if cfg.OrderMultiple > 1 {
			orderQty = roundUpToMultiple(orderQty, cfg.OrderMultiple)
		}

		risk := stockoutRisk(projectedStock, reorderPoint)
		eoq := CalculateEOQ(monthlyDemand*12, product.CostPrice, holdingCostRate*product.CostPrice)

		orders = append(orders, domain.SuggestedOrderItem{
			ConfigID:             cfg.ID,
			ProductID:            product.ID,
			ProductName:          product.Name,
			SuggestedOrderDate:   period.PeriodStart.AddDate(0, 0, -cfg.LeadTimeDays),
			ExpectedDeliveryDate: period.PeriodStart,
			SuggestedQuantity:    orderQty,
			MinimumQuantity:      cfg.MinOrderQuantity,
			EconomicOrderQty:     eoq,
			CurrentStock:         product.CurrentStock,
			ProjectedStock:       projectedStock,
			ProjectedDemand:      monthlyDemand,
			EstimatedCost:        float64(orderQty) * product.CostPrice,
			EstimatedValue:       float64(orderQty) * product.Price,
			Priority:             domain.PriorityForStockoutRisk(risk),
			Status:               domain.StatusPending,
			Reasoning: domain.OrderReasoning{
				StockoutRisk:  risk,
				OverstockRisk: overstockRisk(orderQty, monthlyDemand),
				RiskLevel:     domain.RiskLevelForStockoutRisk(risk),
				Summary: fmt.Sprintf(
					"projected stock %d below reorder point %d for %s; order %d to cover lead time plus %d months of demand",
					projectedStock, reorderPoint, period.PeriodStart.Format("Jan 2006"), orderQty, bufferMonths),
			},
		})

		// The order lands at period start.
		projectedStock += orderQty
	}

	return orders
}

// CalculateEOQ returns the economic order quantity for an annual demand,
// per-order cost and per-unit annual holding cost. A non-positive holding
// cost falls back to one month of demand.
func CalculateEOQ(annualDemand, orderCost, holdingCost float64) int {
	if holdingCost <= 0 {
		return int(math.Round(annualDemand / 12))
	}

	return int(math.Round(math.Sqrt(2 * annualDemand * orderCost / holdingCost)))
}

// Summarize aggregates plan items into the run summary. Due-date windows
// are measured from now (wall clock), not from period starts.
func Summarize(items []domain.SuggestedOrderItem, now time.Time) domain.PlanSummary {
	summary := domain.PlanSummary{OrderCount: len(items)}

	in7 := now.AddDate(0, 0, 7)
	in30 := now.AddDate(0, 0, 30)

	for _, item := range items {
		summary.TotalUnits += item.SuggestedQuantity
		summary.TotalEstimatedCost += item.EstimatedCost
		summary.TotalEstimatedValue += item.EstimatedValue
		if item.Priority == domain.PriorityCritical {
			summary.CriticalCount++
		}
		if !item.SuggestedOrderDate.After(in7) {
			summary.DueWithin7Days++
		}
		if !item.SuggestedOrderDate.After(in30) {
			summary.DueWithin30Days++
		}
	}

	return summary
}

// stockoutRisk scores 0-100 how close projected stock sits to a stockout.
func stockoutRisk(projectedStock, reorderPoint int) float64 {
	if projectedStock <= 0 {
		return 100
	}
	if reorderPoint <= 0 {
		return 0
	}

	return math.Max(0, 100*(1-float64(projectedStock)/float64(reorderPoint)))
}

// overstockRisk penalizes orders covering more than three months of demand.
func overstockRisk(orderQty int, monthlyDemand float64) float64 {
	if monthlyDemand <= 0 {
		return 0
	}

	return math.Max(0, (float64(orderQty)/monthlyDemand-3)*20)
}

func roundUpToMultiple(v, multiple int) int {
	if multiple <= 1 || v%multiple == 0 {
		return v
	}

	return (v/multiple + 1) * multiple
}
