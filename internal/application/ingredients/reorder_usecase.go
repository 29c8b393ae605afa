package ingredients

import (
	"context"
	"sort"

	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/shopspring/decimal"
)

// ReorderList devuelve los ingredientes en o bajo su punto de reorden con la cantidad
// sugerida de pedido, ordenados por urgencia.
func (uc *UseCase) ReorderList(ctx context.Context) ([]dto.ReorderSuggestionDTO, error) {
	// 1. Ingredientes en o bajo el punto de reorden
	rawItems, err := uc.repos.Ingredients.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.ReorderSuggestionDTO{}, nil
	}

	// 2. Construir sugerencias: stock ideal = punto de reorden * 1.5
	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(rawItems))
	deficit := make(map[string]decimal.Decimal, len(rawItems))
	for _, item := range rawItems {
		idealStock := item.ReorderPoint.Mul(factor)
		suggestedQty := idealStock.Sub(item.Stock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		// déficit relativo: fracción del punto de reorden que falta
		rel := decimal.NewFromInt(1)
		if item.ReorderPoint.GreaterThan(decimal.Zero) {
			rel = item.ReorderPoint.Sub(item.Stock).Div(item.ReorderPoint)
		}
		deficit[item.ID] = rel

		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			IngredientID:       item.ID,
			Code:               item.Code,
			Name:               item.Name,
			Unit:               item.Unit,
			CurrentStock:       item.Stock,
			ReorderPoint:       item.ReorderPoint,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           item.CostPerUnit,
			EstimatedOrderCost: suggestedQty.Mul(item.CostPerUnit).Round(2),
			BelowMinimum:       item.Stock.LessThan(item.MinStock),
		})
	}

	// 3. Ordenar: primero los que están bajo el mínimo, luego mayor déficit relativo,
	//    finalmente por nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.BelowMinimum != b.BelowMinimum {
			return a.BelowMinimum
		}
		da, db := deficit[a.IngredientID], deficit[b.IngredientID]
		if !da.Equal(db) {
			return da.GreaterThan(db)
		}
		return a.Name < b.Name
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
