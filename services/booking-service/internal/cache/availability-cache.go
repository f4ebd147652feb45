package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/farhanms/playfield/common/errors"
)

// AvailabilityCache holds resolved 7-day availability maps keyed per
// ground. Entries are invalidated whenever a booking or the ground's
// template changes, and expire on their own otherwise.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func availabilityKey(groundID string) string {
	return fmt.Sprintf("availability:ground:%s", groundID)
}

// Get returns the cached availability map, or (nil, nil) on a miss.
func (c *AvailabilityCache) Get(ctx context.Context, groundID string) (map[string][]string, *apperrors.AppError) {
	data, err := c.client.Get(ctx, availabilityKey(groundID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeRedisOperationError, "failed to read availability cache")
	}

	var availability map[string][]string
	if err := json.Unmarshal(data, &availability); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeObjectUnmarshalError, "failed to decode cached availability")
	}

	return availability, nil
}

func (c *AvailabilityCache) Set(ctx context.Context, groundID string, availability map[string][]string) *apperrors.AppError {
	data, err := json.Marshal(availability)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to encode availability")
	}

	if err := c.client.Set(ctx, availabilityKey(groundID), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeRedisOperationError, "failed to write availability cache")
	}

	return nil
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, groundID string) *apperrors.AppError {
	if err := c.client.Del(ctx, availabilityKey(groundID)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.CodeRedisOperationError, "failed to invalidate availability cache")
	}

	return nil
}
