package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dealerbridge/forecast-go/internal/config"
	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	chartKeyPrefix    = "report:chart"
	timelineKeyPrefix = "report:timeline"
	scanBatchSize     = 100
)

// ReportCache fronts the chart/timeline report queries. A generation run
// invalidates the config's keys so dealers never see a stale mix of old and
// new forecasts.
type ReportCache interface {
	GetChart(ctx context.Context, configID int64, productID *int64) (*domain.ForecastChart, bool, error)
	SetChart(ctx context.Context, configID int64, productID *int64, chart *domain.ForecastChart) error
	GetTimeline(ctx context.Context, configID int64) (*domain.OrderTimeline, bool, error)
	SetTimeline(ctx context.Context, configID int64, timeline *domain.OrderTimeline) error
	Invalidate(ctx context.Context, configID int64) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache returns a redis-backed cache, or the no-op cache when
// caching is disabled in config.
func NewReportCache(cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{client: client, ttl: ttl}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func chartKey(configID int64, productID *int64) string {
	if productID != nil {
		return fmt.Sprintf("%s:%d:product:%d", chartKeyPrefix, configID, *productID)
	}
	return fmt.Sprintf("%s:%d:all", chartKeyPrefix, configID)
}

func timelineKey(configID int64) string {
	return fmt.Sprintf("%s:%d", timelineKeyPrefix, configID)
}

func (c *redisReportCache) GetChart(ctx context.Context, configID int64, productID *int64) (*domain.ForecastChart, bool, error) {
	payload, err := c.client.Get(ctx, chartKey(configID, productID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var chart domain.ForecastChart
	if err := json.Unmarshal(payload, &chart); err != nil {
		return nil, false, fmt.Errorf("decode chart cache: %w", err)
	}

	return &chart, true, nil
}

func (c *redisReportCache) SetChart(ctx context.Context, configID int64, productID *int64, chart *domain.ForecastChart) error {
	payload, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("encode chart cache: %w", err)
	}

	if err := c.client.Set(ctx, chartKey(configID, productID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) GetTimeline(ctx context.Context, configID int64) (*domain.OrderTimeline, bool, error) {
	payload, err := c.client.Get(ctx, timelineKey(configID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var timeline domain.OrderTimeline
	if err := json.Unmarshal(payload, &timeline); err != nil {
		return nil, false, fmt.Errorf("decode timeline cache: %w", err)
	}

	return &timeline, true, nil
}

func (c *redisReportCache) SetTimeline(ctx context.Context, configID int64, timeline *domain.OrderTimeline) error {
	payload, err := json.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("encode timeline cache: %w", err)
	}

	if err := c.client.Set(ctx, timelineKey(configID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisReportCache) Invalidate(ctx context.Context, configID int64) error {
	prefixes := []string{
		fmt.Sprintf("%s:%d", chartKeyPrefix, configID),
		timelineKey(configID),
	}
	for _, prefix := range prefixes {
		if err := deleteKeysWithPrefix(ctx, c.client, prefix, scanBatchSize); err != nil {
			return err
		}
	}
	return nil
}

type noopReportCache struct{}

func (noopReportCache) GetChart(context.Context, int64, *int64) (*domain.ForecastChart, bool, error) {
	return nil, false, nil
}

func (noopReportCache) SetChart(context.Context, int64, *int64, *domain.ForecastChart) error {
	return nil
}

func (noopReportCache) GetTimeline(context.Context, int64) (*domain.OrderTimeline, bool, error) {
	return nil, false, nil
}

func (noopReportCache) SetTimeline(context.Context, int64, *domain.OrderTimeline) error {
	return nil
}

func (noopReportCache) Invalidate(context.Context, int64) error {
	return nil
}
