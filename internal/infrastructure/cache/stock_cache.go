package cache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-pos/internal/application/stock"
)

// Ensure both implement stock.StockCache.
var _ stock.StockCache = (*NoopStockCache)(nil)
var _ stock.StockCache = (*RedisStockCache)(nil)

// NoopStockCache caché nula: toda lectura falla el hit y va a la base de datos.
// Se usa cuando no hay Redis configurado y en tests.
type NoopStockCache struct{}

func (NoopStockCache) Get(_ context.Context, _ string) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (NoopStockCache) Set(_ context.Context, _ string, _ decimal.Decimal) error { return nil }

func (NoopStockCache) Invalidate(_ context.Context, _ string) error { return nil }

// RedisStockCache caché read-through del stock actual por producto.
// Se invalida tras cada movimiento y tras cada reconciliación que corrige; un TTL
// corto acota el daño si una invalidación se pierde.
type RedisStockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStockCache construye el caché contra Redis.
func NewRedisStockCache(addr, password string, db int, ttl time.Duration) *RedisStockCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisStockCache{client: client, ttl: ttl}
}

// Ping verifica la conexión.
func (c *RedisStockCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisStockCache) Close() error {
	return c.client.Close()
}

func stockKey(productID string) string {
	return "stock:" + productID
}

// Get devuelve el stock cacheado del producto, si existe.
func (c *RedisStockCache) Get(ctx context.Context, productID string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, stockKey(productID)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	qty, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, err
	}
	return qty, true, nil
}

// Set guarda el stock actual del producto con TTL.
func (c *RedisStockCache) Set(ctx context.Context, productID string, qty decimal.Decimal) error {
	return c.client.Set(ctx, stockKey(productID), qty.String(), c.ttl).Err()
}

// Invalidate elimina la entrada del producto.
func (c *RedisStockCache) Invalidate(ctx context.Context, productID string) error {
	return c.client.Del(ctx, stockKey(productID)).Err()
}
