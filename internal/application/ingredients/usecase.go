// Package ingredients gestiona el inventario de insumos: alta, ajustes con foto antes/después
// y la lista de reposición.
package ingredients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	appinv "github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

const (
	defaultAdjustmentLimit = 100
	maxAdjustmentLimit     = 500
)

var minAdjustQuantity = decimal.RequireFromString("0.01")

var _ appinv.IngredientAdjuster = (*UseCase)(nil)

// UseCase casos de uso de ingredientes.
type UseCase struct {
	repos appinv.Repos
	tx    appinv.TxRunner
	now   func() time.Time
}

// NewUseCase construye el caso de uso. repos son de lectura; las escrituras pasan por tx.
func NewUseCase(repos appinv.Repos, tx appinv.TxRunner) *UseCase {
	return &UseCase{repos: repos, tx: tx, now: time.Now}
}

// Create registra un ingrediente. El código es único.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" || in.Code == "" || strings.TrimSpace(in.Unit) == "" {
		return nil, fmt.Errorf("%w: name, code y unit son obligatorios", domain.ErrInvalidInput)
	}
	for _, v := range []decimal.Decimal{in.Stock, in.MinStock, in.ReorderPoint, in.CostPerUnit} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: valores negativos no permitidos", domain.ErrInvalidInput)
		}
	}
	now := uc.now()
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Code:         in.Code,
		CategoryID:   in.CategoryID,
		Unit:         strings.TrimSpace(in.Unit),
		Stock:        in.Stock,
		MinStock:     in.MinStock,
		ReorderPoint: in.ReorderPoint,
		CostPerUnit:  in.CostPerUnit,
		SupplierID:   in.SupplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.tx.Run(ctx, func(r appinv.Repos) error {
		existing, err := r.Ingredients.GetByCode(ctx, ing.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, ing.Code)
		}
		if err := r.Ingredients.Create(ctx, ing); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryCreate, "ingredient", ing.ID, userID, map[string]any{
			"code":  ing.Code,
			"stock": ing.Stock,
		})
	})
	if err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// Get obtiene un ingrediente por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.IngredientResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	ing, err := uc.repos.Ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return toIngredientResponse(ing), nil
}

// List lista los ingredientes ordenados por nombre.
func (uc *UseCase) List(ctx context.Context) (*dto.IngredientListResponse, error) {
	list, err := uc.repos.Ingredients.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		items = append(items, *toIngredientResponse(ing))
	}
	return &dto.IngredientListResponse{Items: items}, nil
}

// AdjustStock suma o resta stock de un ingrediente con piso en cero. El stock anterior y el nuevo
// salen de la misma sentencia atómica y el registro del ajuste se guarda en la misma transacción.
// Un add con unit_cost recalcula el costo promedio ponderado.
func (uc *UseCase) AdjustStock(ctx context.Context, ingredientID, userID, ipAddress string, in dto.AdjustStockRequest) (*dto.AdjustmentResponse, error) {
	typ := entity.AdjustmentType(strings.ToLower(strings.TrimSpace(in.Type)))
	if typ != entity.AdjustmentAdd && typ != entity.AdjustmentRemove {
		return nil, fmt.Errorf("%w: tipo de ajuste %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Quantity.LessThan(minAdjustQuantity) {
		return nil, fmt.Errorf("%w: la cantidad mínima es 0.01", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: motivo requerido", domain.ErrInvalidInput)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: costo unitario negativo", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(ingredientID); err != nil {
		return nil, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, ingredientID)
	}

	var adj *entity.StockAdjustment
	err := uc.tx.Run(ctx, func(r appinv.Repos) error {
		ing, err := r.Ingredients.GetByID(ctx, ingredientID)
		if err != nil {
			return err
		}
		if ing == nil {
			return fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, ingredientID)
		}
		delta := in.Quantity
		if typ == entity.AdjustmentRemove {
			delta = delta.Neg()
		}
		prev, cur, err := r.Ingredients.ApplyStockDelta(ctx, ing.ID, delta)
		if err != nil {
			return err
		}
		if typ == entity.AdjustmentAdd && in.UnitCost != nil {
			// El costo se relee con la fila ya bloqueada por ApplyStockDelta; la lectura inicial
			// puede ser anterior a otro ajuste confirmado mientras se esperaba el lock.
			locked, err := r.Ingredients.GetByID(ctx, ing.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, ingredientID)
			}
			cost := inventory.CostCalculator(prev, locked.CostPerUnit, in.Quantity, *in.UnitCost)
			if err := r.Ingredients.UpdateCost(ctx, ing.ID, cost); err != nil {
				return err
			}
		}
		adj = &entity.StockAdjustment{
			ID:             uuid.New().String(),
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			IngredientCode: ing.Code,
			Type:           typ,
			Quantity:       in.Quantity,
			PreviousStock:  prev,
			NewStock:       cur,
			Unit:           ing.Unit,
			Reason:         strings.TrimSpace(in.Reason),
			UserID:         userID,
			UserName:       in.UserName,
			IPAddress:      ipAddress,
			CreatedAt:      uc.now(),
		}
		if err := r.Adjustments.Create(ctx, adj); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryAdjust, "ingredient", ing.ID, userID, map[string]any{
			"type":           typ,
			"quantity":       in.Quantity,
			"previous_stock": prev,
			"new_stock":      cur,
			"reason":         adj.Reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adj), nil
}

// ListAdjustments lista ajustes, más recientes primero; ingredientID es opcional.
func (uc *UseCase) ListAdjustments(ctx context.Context, ingredientID string, limit int) (*dto.AdjustmentListResponse, error) {
	if limit <= 0 || limit > maxAdjustmentLimit {
		limit = defaultAdjustmentLimit
	}
	list, err := uc.repos.Adjustments.List(ctx, ingredientID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{Items: items}, nil
}

func toIngredientResponse(i *entity.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		Code:         i.Code,
		CategoryID:   i.CategoryID,
		Unit:         i.Unit,
		Stock:        i.Stock,
		MinStock:     i.MinStock,
		ReorderPoint: i.ReorderPoint,
		CostPerUnit:  i.CostPerUnit,
		SupplierID:   i.SupplierID,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

func toAdjustmentResponse(a *entity.StockAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:             a.ID,
		IngredientID:   a.IngredientID,
		IngredientName: a.IngredientName,
		IngredientCode: a.IngredientCode,
		Type:           string(a.Type),
		Quantity:       a.Quantity,
		PreviousStock:  a.PreviousStock,
		NewStock:       a.NewStock,
		Unit:           a.Unit,
		Reason:         a.Reason,
		UserID:         a.UserID,
		UserName:       a.UserName,
		IPAddress:      a.IPAddress,
		CreatedAt:      a.CreatedAt,
	}
}
