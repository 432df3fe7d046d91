package reporting

import (
	"sort"
	"time"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/dealerbridge/forecast-go/internal/forecast"
)

// BuildOrderTimeline buckets suggested orders by the calendar month of
// their suggested order date.
func BuildOrderTimeline(items []domain.SuggestedOrderItem) *domain.OrderTimeline {
	type bucket struct {
		start time.Time
		data  domain.OrderTimelineBucket
	}

	buckets := make(map[string]*bucket)
	for _, item := range items {
		label := item.SuggestedOrderDate.Format(forecast.MonthLabelFormat)
		b, ok := buckets[label]
		if !ok {
			b = &bucket{
				start: firstOfMonth(item.SuggestedOrderDate),
				data:  domain.OrderTimelineBucket{Month: label},
			}
			buckets[label] = b
		}
		b.data.OrderCount++
		b.data.TotalUnits += item.SuggestedQuantity
		b.data.EstimatedCost += item.EstimatedCost
		b.data.Orders = append(b.data.Orders, domain.TimelineOrder{
			ProductName: item.ProductName,
			Quantity:    item.SuggestedQuantity,
			Priority:    item.Priority,
		})
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].start.Before(ordered[j].start)
	})

	timeline := &domain.OrderTimeline{Buckets: make([]domain.OrderTimelineBucket, 0, len(ordered))}
	for _, b := range ordered {
		timeline.Buckets = append(timeline.Buckets, b.data)
	}

	return timeline
}
