package inventory_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
)

func (f *fixture) batch(t *testing.T, productID, number string, qty int64, ings ...dto.BatchIngredientDTO) *dto.BatchResponse {
	t.Helper()
	b, err := f.production.Create(f.ctx, "tester", dto.CreateBatchRequest{
		ProductID:       productID,
		Quantity:        dec(qty),
		BatchNumber:     number,
		Operator:        "Operario 1",
		IngredientsUsed: ings,
	})
	require.NoError(t, err)
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionCreate_NoMueveStockYUsaPlantaPorDefecto(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	facility := f.systemLocation(t, entity.LocationProductionFacility)

	b := f.batch(t, p.ID, "B1", 100)

	assert.Equal(t, string(entity.BatchInProgress), b.Status)
	assert.Equal(t, facility.ID, b.FacilityID)
	assert.Equal(t, "0", f.qty(t, p.ID, facility.ID).String())
}

func TestProductionCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")

	cases := []struct {
		name string
		req  dto.CreateBatchRequest
		want error
	}{
		{"sin número de lote", dto.CreateBatchRequest{ProductID: p.ID, Quantity: dec(1), Operator: "op"}, domain.ErrInvalidInput},
		{"sin operador", dto.CreateBatchRequest{ProductID: p.ID, Quantity: dec(1), BatchNumber: "B"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateBatchRequest{ProductID: p.ID, BatchNumber: "B", Operator: "op"}, domain.ErrInvalidInput},
		{"producto desconocido", dto.CreateBatchRequest{ProductID: uuid.New().String(), Quantity: dec(1), BatchNumber: "B", Operator: "op"}, domain.ErrNotFound},
		{"planta desconocida", dto.CreateBatchRequest{ProductID: p.ID, Quantity: dec(1), BatchNumber: "B", Operator: "op", Facility: "Planta Norte"}, domain.ErrNotFound},
		{"ingrediente sin cantidad", dto.CreateBatchRequest{
			ProductID: p.ID, Quantity: dec(1), BatchNumber: "B", Operator: "op",
			IngredientsUsed: []dto.BatchIngredientDTO{{IngredientID: uuid.New().String()}},
		}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.production.Create(f.ctx, "tester", tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestProductionCreate_NumeroDeLoteDuplicado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	f.batch(t, p.ID, "B1", 10)

	_, err := f.production.Create(f.ctx, "tester", dto.CreateBatchRequest{
		ProductID: p.ID, Quantity: dec(5), BatchNumber: "B1", Operator: "op",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductionCreate_DescuentaIngredientesSinBloquear(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	sal, err := f.ingredients.Create(f.ctx, "tester", dto.CreateIngredientRequest{
		Name: "Sal", Code: "ING-SAL", Unit: "kg", Stock: dec(10), ReorderPoint: dec(2),
	})
	require.NoError(t, err)

	b := f.batch(t, p.ID, "B1", 50,
		dto.BatchIngredientDTO{IngredientID: sal.ID, Quantity: dec(4)},
		dto.BatchIngredientDTO{IngredientID: uuid.New().String(), Quantity: dec(1)},
	)
	require.NotEmpty(t, b.ID, "un ingrediente desconocido no impide crear el lote")

	got, err := f.ingredients.Get(f.ctx, sal.ID)
	require.NoError(t, err)
	assert.Equal(t, "6", got.Stock.String())

	adjs, err := f.ingredients.ListAdjustments(f.ctx, sal.ID, 0)
	require.NoError(t, err)
	require.Len(t, adjs.Items, 1)
	assert.Equal(t, "Lote B1", adjs.Items[0].Reason)
	assert.Equal(t, "Operario 1", adjs.Items[0].UserName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Complete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionComplete_EsIdempotente(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	facility := f.systemLocation(t, entity.LocationProductionFacility)
	b := f.batch(t, p.ID, "B1", 100)

	done, err := f.production.Complete(f.ctx, "tester", b.ID, dto.CompleteBatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(entity.BatchCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, "100", f.qty(t, p.ID, facility.ID).String())

	again, err := f.production.Complete(f.ctx, "tester", b.ID, dto.CompleteBatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, done.CompletedAt, again.CompletedAt)
	assert.Equal(t, "100", f.qty(t, p.ID, facility.ID).String(), "completar dos veces acredita una sola vez")

	_, err = f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "100", f.qty(t, p.ID, facility.ID).String())

	movs, err := f.repos.Movements.List(f.ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestProductionComplete_CantidadReal(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	facility := f.systemLocation(t, entity.LocationProductionFacility)
	b := f.batch(t, p.ID, "B1", 100)

	done, err := f.production.Complete(f.ctx, "tester", b.ID, dto.CompleteBatchRequest{ActualQuantity: decPtr(95)})
	require.NoError(t, err)
	assert.Equal(t, "95", done.Quantity.String())
	assert.Equal(t, "95", f.qty(t, p.ID, facility.ID).String())

	_, err = f.production.Complete(f.ctx, "tester", b.ID, dto.CompleteBatchRequest{ActualQuantity: decPtr(95)})
	assert.NoError(t, err, "la misma cantidad es un no-op")

	_, err = f.production.Complete(f.ctx, "tester", b.ID, dto.CompleteBatchRequest{ActualQuantity: decPtr(80)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "95", f.qty(t, p.ID, facility.ID).String())

	_, err = f.production.Complete(f.ctx, "tester", uuid.New().String(), dto.CompleteBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductionStatus_SoloAvanza(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	b := f.batch(t, p.ID, "B1", 10)

	_, err := f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "in-progress"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "repetir el estado no es válido")

	qc, err := f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "quality_check"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.BatchQualityCheck), qc.Status)

	_, err = f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "in-progress"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no hay retroceso")

	_, err = f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	done, err := f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.BatchCompleted), done.Status)

	_, err = f.production.UpdateStatus(f.ctx, "tester", b.ID, dto.UpdateBatchStatusRequest{Status: "quality-check"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateQuantity / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionUpdateQuantity_AcreditaDiferenciaTrasCompletar(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	facility := f.systemLocation(t, entity.LocationProductionFacility)
	b := f.batch(t, p.ID, "B1", 100)

	pending, err := f.production.UpdateQuantity(f.ctx, "tester", b.ID, dto.UpdateBatchQuantityRequest{Quantity: dec(110)})
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Revision)
	assert.Equal(t, "0", f.qty(t, p.ID, facility.ID).String(), "sin completar no hay crédito")

	_, err = f.production.Complete(f.ctx, "tester", b.ID, dto.CompleteBatchRequest{})
	require.NoError(t, err)
	assert.Equal(t, "110", f.qty(t, p.ID, facility.ID).String())

	up, err := f.production.UpdateQuantity(f.ctx, "tester", b.ID, dto.UpdateBatchQuantityRequest{Quantity: dec(120)})
	require.NoError(t, err)
	assert.Equal(t, 1, up.Revision)
	assert.Equal(t, "120", f.qty(t, p.ID, facility.ID).String())

	down, err := f.production.UpdateQuantity(f.ctx, "tester", b.ID, dto.UpdateBatchQuantityRequest{Quantity: dec(90)})
	require.NoError(t, err)
	assert.Equal(t, 2, down.Revision)
	assert.Equal(t, "90", f.qty(t, p.ID, facility.ID).String())

	same, err := f.production.UpdateQuantity(f.ctx, "tester", b.ID, dto.UpdateBatchQuantityRequest{Quantity: dec(90)})
	require.NoError(t, err)
	assert.Equal(t, 2, same.Revision, "sin diferencia no hay revisión")
}

func TestProductionDelete(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "P1")
	open := f.batch(t, p.ID, "B1", 10)
	closed := f.batch(t, p.ID, "B2", 10)
	_, err := f.production.Complete(f.ctx, "tester", closed.ID, dto.CompleteBatchRequest{})
	require.NoError(t, err)

	require.NoError(t, f.production.Delete(f.ctx, "tester", open.ID))
	_, err = f.production.Get(f.ctx, open.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.production.Delete(f.ctx, "tester", closed.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	list, err := f.production.List(f.ctx, "completed", "")
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "B2", list.Items[0].BatchNumber)
}
