package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/analytics"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/infrastructure/memory"
)

func TestDashboard_ResumenDelDiaYDelMes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now()

	store1 := &entity.Location{ID: uuid.New().String(), Name: "Store 1", NameKey: entity.LocationNameKey("Store 1"), Kind: entity.LocationKindStore}
	require.NoError(t, repos.Locations.Create(ctx, store1))
	p1 := &entity.Product{ID: uuid.New().String(), SKU: "P1", Name: "Chorizo"}
	p2 := &entity.Product{ID: uuid.New().String(), SKU: "P2", Name: "Morcilla"}
	require.NoError(t, repos.Products.Create(ctx, p1))
	require.NoError(t, repos.Products.Create(ctx, p2))

	sale := func(txID, method string, at time.Time, items ...entity.SaleItem) {
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.LineTotal)
		}
		require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
			ID: uuid.New().String(), TransactionID: txID, LocationID: store1.ID,
			Items: items, Subtotal: total, Total: total, PaymentMethod: method, CreatedAt: at,
		}))
	}
	line := func(p *entity.Product, qty, lineTotal int64) entity.SaleItem {
		return entity.SaleItem{ProductID: p.ID, Quantity: decimal.NewFromInt(qty), LineTotal: decimal.NewFromInt(lineTotal)}
	}
	sale("T1", "cash", now, line(p1, 2, 300), line(p2, 1, 100))
	sale("T2", "card", now, line(p1, 1, 200))
	sale("T3", "cash", now.AddDate(0, -2, 0), line(p2, 50, 9999)) // fuera del mes

	uc := analytics.NewDashboardUseCase(store.Analytics(), repos.Locations)
	sum, err := uc.GetSummary(ctx, "store 1")
	require.NoError(t, err)

	assert.Equal(t, store1.ID, sum.LocationID)
	assert.Equal(t, "600", sum.TodaySales.String())
	assert.Equal(t, 2, sum.TodayCount)
	assert.Equal(t, "4", sum.TodayUnits.String())
	assert.Equal(t, "600", sum.MonthlySales.String())
	assert.Equal(t, "300", sum.AverageTicket.String())
	require.Len(t, sum.TopProducts, 2)
	assert.Equal(t, "P1", sum.TopProducts[0].SKU)
	assert.Equal(t, "83.33", sum.TopProducts[0].SharePct.String())
	assert.NotEmpty(t, sum.DateLabel)

	require.Len(t, sum.TodayPayments, 2)
	assert.Equal(t, "cash", sum.TodayPayments[0].Method)
	assert.Equal(t, 1, sum.TodayPayments[0].Count)
	assert.Equal(t, "400", sum.TodayPayments[0].Amount.String())
	assert.Equal(t, "card", sum.TodayPayments[1].Method)
	assert.Equal(t, "200", sum.TodayPayments[1].Amount.String())

	_, err = uc.GetSummary(ctx, "Store 9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
