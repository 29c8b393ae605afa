package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockKey_Formato(t *testing.T) {
	k := inventory.StockKey{ProductID: "p1", LocationID: "l1"}
	assert.Equal(t, "inv:stock:p1:l1", stockKey(k))
}

func TestNewRedisStockCache_TTLPorDefecto(t *testing.T) {
	c := NewRedisStockCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), 0)
	assert.Equal(t, 30*time.Second, c.ttl)
}

func TestInvalidate_SinClavesNoLlamaARedis(t *testing.T) {
	// Cliente apuntando a un puerto inválido: cualquier comando fallaría.
	c := NewRedisStockCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1}), time.Second)
	require.NoError(t, c.Invalidate(context.Background()))
}

func TestGet_ErrorDeConexionSePropaga(t *testing.T) {
	c := NewRedisStockCache(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:0",
		MaxRetries:  -1,
		DialTimeout: 50 * time.Millisecond,
	}), time.Second)
	got, err := c.Get(context.Background(), inventory.StockKey{ProductID: "p", LocationID: "l"})
	assert.Error(t, err)
	assert.False(t, got.Hit)
}

func TestGenKey_Formato(t *testing.T) {
	k := inventory.StockKey{ProductID: "p1", LocationID: "l1"}
	assert.Equal(t, "inv:stockgen:p1:l1", genKey(k))
}

func TestParseCached(t *testing.T) {
	tests := []struct {
		name string
		vals []interface{}
		want inventory.CachedStock
	}{
		{"ausente sin generación", []interface{}{nil, nil}, inventory.CachedStock{}},
		{"ausente tras invalidar", []interface{}{nil, "3"}, inventory.CachedStock{Generation: 3}},
		{"presente", []interface{}{"45.5", "2"}, inventory.CachedStock{Quantity: decimal.RequireFromString("45.5"), Hit: true, Generation: 2}},
		{"valor corrupto", []interface{}{"abc", "1"}, inventory.CachedStock{Generation: 1}},
		{"respuesta incompleta", []interface{}{"10"}, inventory.CachedStock{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCached(tt.vals)
			assert.Equal(t, tt.want.Hit, got.Hit)
			assert.Equal(t, tt.want.Generation, got.Generation)
			assert.True(t, tt.want.Quantity.Equal(got.Quantity), "cantidad %s", got.Quantity)
		})
	}
}
