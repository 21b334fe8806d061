package redisx

import (
	"context"
	"fmt"
	"time"

	"billiard-club/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a best-effort layer: every method tolerates redis being
// down and never fails the caller. Core invariants live in postgres,
// not here.
type Cache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewCache(config utils.RedisConfig, log *zap.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{
		rdb: rdb,
		log: log.With(zap.String("component", "cache")),
	}, nil
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// SetTableStatus caches the latest table status.
func (c *Cache) SetTableStatus(ctx context.Context, tenantID, tableID uuid.UUID, status string) {
	if c == nil {
		return
	}

	key := fmt.Sprintf(KeyTableStatus, tenantID.String(), tableID.String())
	if err := c.rdb.Set(ctx, key, status, TTLTableStatus).Err(); err != nil {
		c.log.Warn("Failed to cache table status", zap.Error(err), zap.String("key", key))
	}
}

// MarkStockLow returns true the first time a service dips below its
// threshold within the dedup window, so the alert fires once instead of
// on every sale.
func (c *Cache) MarkStockLow(ctx context.Context, tenantID, serviceID uuid.UUID) bool {
	if c == nil {
		return true
	}

	key := fmt.Sprintf(KeyStockLowDedup, tenantID.String(), serviceID.String())
	ok, err := c.rdb.SetNX(ctx, key, 1, TTLStockLowDedup).Result()
	if err != nil {
		c.log.Warn("Failed to set stock-low dedup key", zap.Error(err), zap.String("key", key))
		return true
	}

	return ok
}

// ClearStockLow resets the dedup key once stock is replenished.
func (c *Cache) ClearStockLow(ctx context.Context, tenantID, serviceID uuid.UUID) {
	if c == nil {
		return
	}

	key := fmt.Sprintf(KeyStockLowDedup, tenantID.String(), serviceID.String())
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Failed to clear stock-low dedup key", zap.Error(err), zap.String("key", key))
	}
}
