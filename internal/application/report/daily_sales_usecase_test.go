package report_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/report"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/infrastructure/memory"
)

func TestDailySalesCSV_FilasDelDiaEnOrden(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()

	s1 := &entity.Location{ID: uuid.New().String(), Name: "Store 1", NameKey: "store 1", Kind: entity.LocationKindStore}
	s2 := &entity.Location{ID: uuid.New().String(), Name: "Store 2", NameKey: "store 2", Kind: entity.LocationKindStore}
	require.NoError(t, repos.Locations.Create(ctx, s1))
	require.NoError(t, repos.Locations.Create(ctx, s2))

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	sale := func(txID string, loc *entity.Location, at time.Time, customer string, total int64) {
		require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
			ID: uuid.New().String(), TransactionID: txID, LocationID: loc.ID,
			Items: []entity.SaleItem{{ProductID: "p", Quantity: decimal.NewFromInt(1)}, {ProductID: "q", Quantity: decimal.NewFromInt(2)}},
			Subtotal: decimal.NewFromInt(total), Discount: decimal.NewFromFloat(0.5), Total: decimal.NewFromInt(total).Sub(decimal.NewFromFloat(0.5)),
			PaymentMethod: "cash", Cashier: "Ana", Customer: customer, SalesType: entity.SalesTypeRetail, CreatedAt: at,
		}))
	}
	sale("T-LATE", s1, day.Add(18*time.Hour), "", 100)
	sale("T-EARLY", s1, day.Add(9*time.Hour+30*time.Minute), "Carnicería Ruiz", 40)
	sale("T-OTHER", s2, day.Add(10*time.Hour), "", 70)
	sale("T-PREV", s1, day.Add(-time.Minute), "", 999)

	uc := report.NewDailySalesUseCase(repos)
	out, name, err := uc.DownloadDailyCSV(ctx, "2026-03-14", "store 1")
	require.NoError(t, err)
	assert.Equal(t, "Daily-Report-2026-03-14.csv", name)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "encabezado más dos ventas de Store 1")
	assert.Equal(t, "Transaction ID", rows[0][0])
	assert.Equal(t, []string{
		"T-EARLY", "2026-03-14", "09:30:00", "Ana", "Carnicería Ruiz", "Store 1", "2",
		"40.00", "0.00", "0.50", "0.00", "39.50", "cash", "retail",
	}, rows[1])
	assert.Equal(t, "T-LATE", rows[2][0])
	assert.Equal(t, "Walk-in", rows[2][4])
}

func TestDailySalesCSV_TodasLasUbicacionesYFechaInvalida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	uc := report.NewDailySalesUseCase(repos)

	out, name, err := uc.DownloadDailyCSV(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Daily-Report-"+time.Now().Format("2006-01-02")+".csv", name)
	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "sin ventas solo queda el encabezado")

	_, _, err = uc.DownloadDailyCSV(ctx, "14/03/2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.DownloadDailyCSV(ctx, "2026-03-14", "Store 404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
