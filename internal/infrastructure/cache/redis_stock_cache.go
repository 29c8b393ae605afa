// Package cache implementa la caché de lectura de stock sobre Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/pkg/config"
	"github.com/shopspring/decimal"
)

var _ inventory.StockCache = (*RedisStockCache)(nil)

const (
	stockKeyPrefix = "inv:stock:"
	genKeyPrefix   = "inv:stockgen:"
	// La generación vive mucho más que cualquier lectura en curso; si expira, Set con una
	// generación anterior simplemente no escribe.
	genTTL = 24 * time.Hour
)

// setIfGeneration escribe el valor solo si la generación de la clave sigue siendo ARGV[1].
// Una generación ausente cuenta como "0".
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[2])
if gen == false then gen = "0" end
if gen ~= ARGV[1] then return 0 end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// RedisStockCache guarda la cantidad como texto decimal con TTL, junto a un contador de
// generación por clave que Invalidate incrementa.
// El Quantity Store sigue siendo la fuente de verdad; una entrada ausente solo obliga a leer la base.
type RedisStockCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewRedisStockCache construye la caché. ttl <= 0 usa 30s.
func NewRedisStockCache(rdb *redis.Client, ttl time.Duration) *RedisStockCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisStockCache{rdb: rdb, ttl: ttl}
}

func stockKey(k inventory.StockKey) string {
	return stockKeyPrefix + k.ProductID + ":" + k.LocationID
}

func genKey(k inventory.StockKey) string {
	return genKeyPrefix + k.ProductID + ":" + k.LocationID
}

// Get lee valor y generación en un solo MGET.
func (c *RedisStockCache) Get(ctx context.Context, key inventory.StockKey) (inventory.CachedStock, error) {
	vals, err := c.rdb.MGet(ctx, stockKey(key), genKey(key)).Result()
	if err != nil {
		return inventory.CachedStock{}, fmt.Errorf("redis mget: %w", err)
	}
	return parseCached(vals), nil
}

// parseCached interpreta la respuesta de MGET [valor, generación]. Un valor corrupto cuenta
// como ausente; la generación se conserva para que Set lo reemplace.
func parseCached(vals []interface{}) inventory.CachedStock {
	var out inventory.CachedStock
	if len(vals) != 2 {
		return out
	}
	if raw, ok := vals[1].(string); ok {
		if gen, err := strconv.ParseInt(raw, 10, 64); err == nil {
			out.Generation = gen
		}
	}
	if raw, ok := vals[0].(string); ok {
		if q, err := decimal.NewFromString(raw); err == nil {
			out.Quantity = q
			out.Hit = true
		}
	}
	return out
}

// Set guarda la cantidad con el TTL configurado si nadie invalidó la clave desde la lectura.
func (c *RedisStockCache) Set(ctx context.Context, key inventory.StockKey, quantity decimal.Decimal, generation int64) error {
	err := setIfGeneration.Run(ctx, c.rdb,
		[]string{stockKey(key), genKey(key)},
		strconv.FormatInt(generation, 10), quantity.String(), c.ttl.Milliseconds(),
	).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate borra los valores y avanza la generación de cada clave en una transacción MULTI.
func (c *RedisStockCache) Invalidate(ctx context.Context, keys ...inventory.StockKey) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Del(ctx, stockKey(k))
			pipe.Incr(ctx, genKey(k))
			pipe.Expire(ctx, genKey(k), genTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate: %w", err)
	}
	return nil
}
