package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/sponsor-digest/internal/domain/entities"
	"github.com/johnquangdev/sponsor-digest/internal/infrastructure/cache"
)

const reportKeyPrefix = "sponsor-digest:report:"

func reportKey(videoID string) string {
	return reportKeyPrefix + videoID
}

// RedisReportCache keeps reports in Redis as JSON
type RedisReportCache struct {
	rdb *redis.Client
}

// NewRedisReportCache creates a Redis backed report cache
func NewRedisReportCache(rdb *redis.Client) *RedisReportCache {
	return &RedisReportCache{rdb: rdb}
}

// Get retrieves a report by video ID
func (c *RedisReportCache) Get(ctx context.Context, videoID string) (*entities.VideoReport, bool, error) {
	data, err := c.rdb.Get(ctx, reportKey(videoID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get report %s: %w", videoID, err)
	}
	return decodeReport(data)
}

// Set stores a report for ttl
func (c *RedisReportCache) Set(ctx context.Context, report *entities.VideoReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, reportKey(report.VideoID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set report %s: %w", report.VideoID, err)
	}
	return nil
}

// Delete removes a report
func (c *RedisReportCache) Delete(ctx context.Context, videoID string) error {
	return c.rdb.Del(ctx, reportKey(videoID)).Err()
}

// MemoryReportCache keeps reports in process memory
type MemoryReportCache struct {
	store *cache.MemoryStore
}

// NewMemoryReportCache creates a report cache over store
func NewMemoryReportCache(store *cache.MemoryStore) *MemoryReportCache {
	return &MemoryReportCache{store: store}
}

// Get retrieves a report by video ID
func (c *MemoryReportCache) Get(_ context.Context, videoID string) (*entities.VideoReport, bool, error) {
	data, ok := c.store.Get(reportKey(videoID))
	if !ok {
		return nil, false, nil
	}
	return decodeReport(data)
}

// Set stores a report for ttl
func (c *MemoryReportCache) Set(_ context.Context, report *entities.VideoReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	c.store.Set(reportKey(report.VideoID), data, ttl)
	return nil
}

// Delete removes a report
func (c *MemoryReportCache) Delete(_ context.Context, videoID string) error {
	c.store.Delete(reportKey(videoID))
	return nil
}

func decodeReport(data []byte) (*entities.VideoReport, bool, error) {
	var report entities.VideoReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, true, nil
}
