package report_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/internal/application/ingredients"
	"github.com/lztmeat/inventario-api/internal/application/report"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/infrastructure/memory"
)

type fakeGenerator struct{ got *report.StockReport }

func (g *fakeGenerator) GenerateStockReport(_ context.Context, r *report.StockReport) ([]byte, error) {
	g.got = r
	return []byte("%PDF-fake"), nil
}

func TestStockReport_ArmaLineasOrdenadas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()

	b := &entity.Location{ID: uuid.New().String(), Name: "B Tienda", NameKey: "b tienda"}
	a := &entity.Location{ID: uuid.New().String(), Name: "A Planta", NameKey: "a planta"}
	require.NoError(t, repos.Locations.Create(ctx, b))
	require.NoError(t, repos.Locations.Create(ctx, a))
	p := &entity.Product{ID: uuid.New().String(), SKU: "CH", Name: "Chorizo", Unit: "kg"}
	require.NoError(t, repos.Products.Create(ctx, p))
	_, err := repos.Stock.ApplyDelta(ctx, p.ID, b.ID, decimal.NewFromInt(7))
	require.NoError(t, err)
	_, err = repos.Stock.ApplyDelta(ctx, p.ID, a.ID, decimal.NewFromInt(3))
	require.NoError(t, err)
	require.NoError(t, repos.Ingredients.Create(ctx, &entity.Ingredient{
		ID: uuid.New().String(), Name: "Sal", Code: "SAL", Unit: "kg",
		Stock: decimal.NewFromInt(1), ReorderPoint: decimal.NewFromInt(5),
	}))

	gen := &fakeGenerator{}
	uc := report.NewStockReportUseCase(repos, ingredients.NewUseCase(repos, store), gen)
	pdf, name, err := uc.DownloadStockPDF(ctx)
	require.NoError(t, err)

	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Regexp(t, `^stock_\d{8}_\d{4}\.pdf$`, name)
	require.Len(t, gen.got.Lines, 2)
	assert.Equal(t, "A Planta", gen.got.Lines[0].LocationName)
	assert.Equal(t, "CH", gen.got.Lines[0].SKU)
	require.Len(t, gen.got.Reorder, 1)
	assert.Equal(t, "SAL", gen.got.Reorder[0].Code)
}
