// Package availability tracks which drivers are currently on duty, backed
// by a Redis sorted set keyed by shift expiry.
package availability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	onDutyKey = "availability:on_duty"
	// Shifts auto-expire if a driver never checks out.
	defaultShiftTTL = 14 * time.Hour
)

// Store records on-duty drivers in Redis. Each member's score is the unix
// time its shift expires, so stale entries age out without a sweeper.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore creates an availability Store. A non-positive ttl falls back to
// the default shift length.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultShiftTTL
	}
	return &Store{redis: client, ttl: ttl}
}

// MarkOnDuty records a driver as on duty, refreshing the shift expiry if
// the driver is already present.
func (s *Store) MarkOnDuty(ctx context.Context, driverID string) error {
	expires := float64(time.Now().Add(s.ttl).Unix())
	if err := s.redis.ZAdd(ctx, onDutyKey, redis.Z{Score: expires, Member: driverID}).Err(); err != nil {
		return fmt.Errorf("mark on duty %s: %w", driverID, err)
	}
	return nil
}

// MarkOffDuty removes a driver from the on-duty roster.
func (s *Store) MarkOffDuty(ctx context.Context, driverID string) error {
	if err := s.redis.ZRem(ctx, onDutyKey, driverID).Err(); err != nil {
		return fmt.Errorf("mark off duty %s: %w", driverID, err)
	}
	return nil
}

// OnDuty returns the IDs of all drivers whose shifts have not expired.
// Expired entries are pruned as a side effect.
func (s *Store) OnDuty(ctx context.Context) ([]string, error) {
	now := time.Now().Unix()
	if err := s.redis.ZRemRangeByScore(ctx, onDutyKey, "-inf", strconv.FormatInt(now, 10)).Err(); err != nil {
		return nil, fmt.Errorf("prune expired shifts: %w", err)
	}
	ids, err := s.redis.ZRangeByScore(ctx, onDutyKey, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(now, 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("list on-duty drivers: %w", err)
	}
	return ids, nil
}

// IsOnDuty reports whether a driver is currently on duty.
func (s *Store) IsOnDuty(ctx context.Context, driverID string) (bool, error) {
	score, err := s.redis.ZScore(ctx, onDutyKey, driverID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check on duty %s: %w", driverID, err)
	}
	return score > float64(time.Now().Unix()), nil
}
