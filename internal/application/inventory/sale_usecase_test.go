package inventory_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

func saleReq(location string, items ...dto.SaleItemRequest) dto.RecordSaleRequest {
	return dto.RecordSaleRequest{Location: location, Items: items, PaymentMethod: "cash", Cashier: "Cajero 1"}
}

func TestSaleRecord_DescuentaYAplicaPiso(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	f.location(t, "Store 1")
	f.seed(t, p.ID, "Store 1", 45)

	_, err := f.sales.Record(f.ctx, "cajero", saleReq("Store 1", dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(30), UnitPrice: dec(12)}))
	require.NoError(t, err)
	assert.Equal(t, "15", f.qty(t, p.ID, "Store 1").String())

	_, err = f.sales.Record(f.ctx, "cajero", saleReq("Store 1", dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(999), UnitPrice: dec(12)}))
	require.NoError(t, err)
	assert.Equal(t, "0", f.qty(t, p.ID, "Store 1").String(), "nunca negativo")
}

func TestSaleRecord_SinEntradaPreviaNoBloquea(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")

	_, err := f.sales.Record(f.ctx, "cajero", saleReq(entity.LocationMainStore, dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(3), UnitPrice: dec(1)}))
	require.NoError(t, err)

	list, err := f.stock.ListStock(f.ctx, p.ID, entity.LocationMainStore)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].Quantity.IsZero())
}

func TestSaleRecord_Totales(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1")
	p2 := f.product(t, "P2")

	req := saleReq(entity.LocationMainStore,
		dto.SaleItemRequest{ProductID: p1.ID, Quantity: dec(2), UnitPrice: dec(50), DiscountPct: dec(10)},
		dto.SaleItemRequest{ProductID: p2.ID, Quantity: dec(1), UnitPrice: dec(30)},
	)
	req.Discount = dec(10)
	req.Tax = dec(5)
	s, err := f.sales.Record(f.ctx, "cajero", req)
	require.NoError(t, err)

	assert.Equal(t, "90", s.Items[0].LineTotal.String())
	assert.Equal(t, "30", s.Items[1].LineTotal.String())
	assert.Equal(t, "120", s.Subtotal.String())
	assert.Equal(t, "115", s.Total.String())
	assert.True(t, strings.HasPrefix(s.TransactionID, "TXN-"))
}

func TestSaleRecord_DescuentoMayoristaPorGrupoDePrecio(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, "P1")
	p2 := f.product(t, "P2")
	p3 := f.product(t, "P3")
	require.NoError(t, f.repos.Discounts.Save(f.ctx, &entity.DiscountSettings{
		WholesaleMinUnits: 5, Type: entity.DiscountPercentage, Percent: dec(10),
	}))

	s, err := f.sales.Record(f.ctx, "cajero", saleReq(entity.LocationMainStore,
		dto.SaleItemRequest{ProductID: p1.ID, Quantity: dec(3), UnitPrice: dec(100)},
		dto.SaleItemRequest{ProductID: p2.ID, Quantity: dec(2), UnitPrice: dec(100)},
		dto.SaleItemRequest{ProductID: p3.ID, Quantity: dec(1), UnitPrice: dec(50)},
	))
	require.NoError(t, err)

	assert.Equal(t, entity.SalesTypeWholesale, s.SalesType)
	assert.Equal(t, "270", s.Items[0].LineTotal.String())
	assert.Equal(t, "180", s.Items[1].LineTotal.String())
	assert.Equal(t, "50", s.Items[2].LineTotal.String())
	assert.True(t, s.Items[2].WholesaleDiscount.IsZero())
	assert.Equal(t, "50", s.WholesaleDiscount.String())
	assert.Equal(t, "500", s.Total.String())

	stored, err := f.sales.Get(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesTypeWholesale, stored.SalesType)
	assert.Equal(t, "30", stored.Items[0].WholesaleDiscount.String())
}

func TestSaleRecord_MinoristaConConfiguracionPorDefecto(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")

	s, err := f.sales.Record(f.ctx, "cajero", saleReq(entity.LocationMainStore,
		dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(4), UnitPrice: dec(12)},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.SalesTypeRetail, s.SalesType)
	assert.True(t, s.WholesaleDiscount.IsZero())
	assert.Equal(t, "48", s.Total.String())
}

func TestSaleRecord_DescuentoGlobalMayorQueSubtotal(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	f.seed(t, p.ID, entity.LocationMainStore, 10)

	req := saleReq(entity.LocationMainStore, dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(2), UnitPrice: dec(5)})
	req.Discount = dec(11)
	_, err := f.sales.Record(f.ctx, "cajero", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, "10", f.qty(t, p.ID, entity.LocationMainStore).String())
	list, err := f.sales.List(f.ctx, "", nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestSaleRecord_AtomicidadEnValidacion(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	f.seed(t, p.ID, entity.LocationMainStore, 10)

	cases := []struct {
		name string
		req  dto.RecordSaleRequest
		want error
	}{
		{"sin líneas", saleReq(entity.LocationMainStore), domain.ErrInvalidInput},
		{"segunda línea con cantidad cero", saleReq(entity.LocationMainStore,
			dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(2), UnitPrice: dec(1)},
			dto.SaleItemRequest{ProductID: p.ID, UnitPrice: dec(1)},
		), domain.ErrInvalidInput},
		{"segunda línea con producto desconocido", saleReq(entity.LocationMainStore,
			dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(2), UnitPrice: dec(1)},
			dto.SaleItemRequest{ProductID: uuid.New().String(), Quantity: dec(1), UnitPrice: dec(1)},
		), domain.ErrNotFound},
		{"descuento de línea mayor a 100", saleReq(entity.LocationMainStore,
			dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(1), UnitPrice: dec(1), DiscountPct: dec(101)},
		), domain.ErrInvalidInput},
		{"ubicación desconocida", saleReq("Store 9",
			dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(1), UnitPrice: dec(1)},
		), domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.sales.Record(f.ctx, "cajero", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	assert.Equal(t, "10", f.qty(t, p.ID, entity.LocationMainStore).String())
	list, err := f.sales.List(f.ctx, "", nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestSaleRecord_FalloDePersistenciaNoDescuenta(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	f.seed(t, p.ID, entity.LocationMainStore, 10)

	f.store.FailOn("stock.apply", errors.New("conexión perdida"))
	_, err := f.sales.Record(f.ctx, "cajero", saleReq(entity.LocationMainStore,
		dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(4), UnitPrice: dec(1)},
	))
	require.Error(t, err)

	assert.Equal(t, "10", f.qty(t, p.ID, entity.LocationMainStore).String())
	list, err := f.sales.List(f.ctx, "", nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items, "la venta no queda registrada")
	movs, err := f.repos.Movements.List(f.ctx, repository.MovementFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo el ajuste inicial")
}

func TestSaleRecord_TransaccionDuplicada(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	req := saleReq(entity.LocationMainStore, dto.SaleItemRequest{ProductID: p.ID, Quantity: dec(1), UnitPrice: dec(1)})
	req.TransactionID = "TXN-2026-001"

	_, err := f.sales.Record(f.ctx, "cajero", req)
	require.NoError(t, err)
	_, err = f.sales.Record(f.ctx, "cajero", req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "22.5", appinv.LineTotal(dec(5), dec(5), dec(10)).String())
	assert.Equal(t, "0", appinv.LineTotal(dec(5), dec(5), dec(100)).String())
}
