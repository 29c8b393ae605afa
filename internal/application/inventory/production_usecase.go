package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

// IngredientAdjuster descuenta ingredientes por la misma vía que un ajuste manual.
// Lo implementa ingredients.UseCase.
type IngredientAdjuster interface {
	AdjustStock(ctx context.Context, ingredientID, userID, ipAddress string, in dto.AdjustStockRequest) (*dto.AdjustmentResponse, error)
}

// ProductionUseCase registra lotes de producción y acredita el stock producido al completarlos.
type ProductionUseCase struct {
	repos       Repos
	ledger      *StockLedger
	ingredients IngredientAdjuster
	log         *logger.Logger
	now         func() time.Time
}

// NewProductionUseCase construye el caso de uso. ingredients puede ser nil (sin descuento de insumos).
func NewProductionUseCase(repos Repos, ledger *StockLedger, ingredients IngredientAdjuster, log *logger.Logger) *ProductionUseCase {
	return &ProductionUseCase{repos: repos, ledger: ledger, ingredients: ingredients, log: log, now: time.Now}
}

// Create registra un lote en curso. No mueve stock de producto: eso ocurre al completarlo.
// Los ingredientes se descuentan después del commit y sus fallos solo se registran en el log.
func (uc *ProductionUseCase) Create(ctx context.Context, userID string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	in.BatchNumber = strings.TrimSpace(in.BatchNumber)
	in.Operator = strings.TrimSpace(in.Operator)
	if in.BatchNumber == "" || in.Operator == "" {
		return nil, fmt.Errorf("%w: batch_number y operator son obligatorios", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	ingredients := make([]entity.BatchIngredient, 0, len(in.IngredientsUsed))
	for i, ing := range in.IngredientsUsed {
		if strings.TrimSpace(ing.IngredientID) == "" || !ing.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: ingrediente %d inválido", domain.ErrInvalidInput, i+1)
		}
		ingredients = append(ingredients, entity.BatchIngredient{IngredientID: ing.IngredientID, Quantity: ing.Quantity})
	}
	if _, err := RequireProduct(ctx, uc.repos.Products, in.ProductID); err != nil {
		return nil, err
	}
	facilityRef := in.Facility
	if strings.TrimSpace(facilityRef) == "" {
		facilityRef = entity.LocationProductionFacility
	}
	facility, err := ResolveLocation(ctx, uc.repos.Locations, facilityRef)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	batch := &entity.ProductionBatch{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		FacilityID:  facility.ID,
		Quantity:    in.Quantity,
		BatchNumber: in.BatchNumber,
		Operator:    in.Operator,
		Status:      entity.BatchInProgress,
		Ingredients: ingredients,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.ledger.Run(ctx, func(r Repos, _ Mutator) error {
		existing, err := r.Batches.GetByBatchNumber(ctx, batch.BatchNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: lote %s", domain.ErrDuplicate, batch.BatchNumber)
		}
		if err := r.Batches.Create(ctx, batch); err != nil {
			return err
		}
		return RecordHistory(ctx, r.History, entity.HistoryCreate, "production", batch.ID, userID, map[string]any{
			"batch_number": batch.BatchNumber,
			"quantity":     batch.Quantity,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.deductIngredients(ctx, userID, batch)
	return toBatchResponse(batch), nil
}

func (uc *ProductionUseCase) deductIngredients(ctx context.Context, userID string, b *entity.ProductionBatch) {
	if uc.ingredients == nil {
		return
	}
	for _, ing := range b.Ingredients {
		_, err := uc.ingredients.AdjustStock(ctx, ing.IngredientID, userID, "", dto.AdjustStockRequest{
			Type:     string(entity.AdjustmentRemove),
			Quantity: ing.Quantity,
			Reason:   "Lote " + b.BatchNumber,
			UserName: b.Operator,
		})
		if err != nil {
			uc.log.Warn().Err(err).
				Str("batch_number", b.BatchNumber).
				Str("ingredient_id", ing.IngredientID).
				Msg("no se pudo descontar el ingrediente del lote")
		}
	}
}

// UpdateStatus avanza el estado del lote. Pasar a completed equivale a Complete sin cantidad real.
func (uc *ProductionUseCase) UpdateStatus(ctx context.Context, userID, batchID string, in dto.UpdateBatchStatusRequest) (*dto.BatchResponse, error) {
	target, err := inventory.ParseBatchStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if target == entity.BatchCompleted {
		return uc.Complete(ctx, userID, batchID, dto.CompleteBatchRequest{})
	}

	var out *entity.ProductionBatch
	err = uc.ledger.Run(ctx, func(r Repos, _ Mutator) error {
		b, err := getBatchForUpdate(ctx, r.Batches, batchID)
		if err != nil {
			return err
		}
		if _, err := inventory.CheckBatchTransition(b.Status, target); err != nil {
			return err
		}
		prev := b.Status
		b.Status = target
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		out = b
		return RecordHistory(ctx, r.History, entity.HistoryStatus, "production", b.ID, userID, map[string]any{
			"from": prev,
			"to":   target,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(out), nil
}

// Complete marca el lote como completado y acredita su cantidad en la planta, una sola vez.
// Sobre un lote ya completado es un no-op, salvo que se pida otra cantidad real.
func (uc *ProductionUseCase) Complete(ctx context.Context, userID, batchID string, in dto.CompleteBatchRequest) (*dto.BatchResponse, error) {
	if in.ActualQuantity != nil && !in.ActualQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad real debe ser mayor que cero", domain.ErrInvalidInput)
	}

	var out *entity.ProductionBatch
	err := uc.ledger.Run(ctx, func(r Repos, m Mutator) error {
		b, err := getBatchForUpdate(ctx, r.Batches, batchID)
		if err != nil {
			return err
		}
		noop, err := inventory.CheckBatchTransition(b.Status, entity.BatchCompleted)
		if err != nil {
			return err
		}
		if noop {
			if in.ActualQuantity != nil && !in.ActualQuantity.Equal(b.Quantity) {
				return fmt.Errorf("%w: el lote ya está completado; use la corrección de cantidad", domain.ErrInvalidTransition)
			}
			out = b
			return nil
		}

		if in.ActualQuantity != nil {
			b.Quantity = *in.ActualQuantity
		}
		now := uc.now()
		b.Status = entity.BatchCompleted
		b.CompletedAt = &now
		b.UpdatedAt = now
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		if _, err := m.Mutate(ctx, inventory.Event{
			Kind:       entity.MovementProductionCredit,
			Key:        inventory.ProductionCompletedKey(b.ID),
			ProductID:  b.ProductID,
			LocationID: b.FacilityID,
			Delta:      b.Quantity,
			Reference:  "Lote " + b.BatchNumber,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}
		out = b
		return RecordHistory(ctx, r.History, entity.HistoryComplete, "production", b.ID, userID, map[string]any{
			"batch_number": b.BatchNumber,
			"quantity":     b.Quantity,
			"facility_id":  b.FacilityID,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(out), nil
}

// UpdateQuantity corrige la cantidad de un lote. Si ya estaba completado, acredita
// la diferencia como una nueva revisión (las diferencias negativas respetan el piso en cero).
func (uc *ProductionUseCase) UpdateQuantity(ctx context.Context, userID, batchID string, in dto.UpdateBatchQuantityRequest) (*dto.BatchResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}

	var out *entity.ProductionBatch
	err := uc.ledger.Run(ctx, func(r Repos, m Mutator) error {
		b, err := getBatchForUpdate(ctx, r.Batches, batchID)
		if err != nil {
			return err
		}
		diff := in.Quantity.Sub(b.Quantity)
		if diff.IsZero() {
			out = b
			return nil
		}
		if b.Status == entity.BatchCompleted {
			b.Revision++
			if _, err := m.Mutate(ctx, inventory.Event{
				Kind:       entity.MovementProductionCredit,
				Key:        inventory.ProductionRevisionKey(b.ID, b.Revision),
				ProductID:  b.ProductID,
				LocationID: b.FacilityID,
				Delta:      diff,
				Reference:  fmt.Sprintf("Lote %s revisión %d", b.BatchNumber, b.Revision),
				CreatedBy:  userID,
			}); err != nil {
				return err
			}
		}
		prev := b.Quantity
		b.Quantity = in.Quantity
		b.UpdatedAt = uc.now()
		if err := r.Batches.Update(ctx, b); err != nil {
			return err
		}
		out = b
		return RecordHistory(ctx, r.History, entity.HistoryUpdate, "production", b.ID, userID, map[string]any{
			"previous_quantity": prev,
			"quantity":          b.Quantity,
			"revision":          b.Revision,
		})
	})
	if err != nil {
		return nil, err
	}
	return toBatchResponse(out), nil
}

// Delete elimina un lote no completado.
func (uc *ProductionUseCase) Delete(ctx context.Context, userID, batchID string) error {
	return uc.ledger.Run(ctx, func(r Repos, _ Mutator) error {
		b, err := getBatchForUpdate(ctx, r.Batches, batchID)
		if err != nil {
			return err
		}
		if b.Status == entity.BatchCompleted {
			return fmt.Errorf("%w: un lote completado no se puede eliminar", domain.ErrInvalidTransition)
		}
		if err := r.Batches.Delete(ctx, b.ID); err != nil {
			return err
		}
		return RecordHistory(ctx, r.History, entity.HistoryDelete, "production", b.ID, userID, map[string]any{
			"batch_number": b.BatchNumber,
		})
	})
}

// Get obtiene un lote por ID.
func (uc *ProductionUseCase) Get(ctx context.Context, batchID string) (*dto.BatchResponse, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return nil, domain.ErrNotFound
	}
	b, err := uc.repos.Batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBatchResponse(b), nil
}

// List lista lotes; status y productID son filtros opcionales.
func (uc *ProductionUseCase) List(ctx context.Context, status, productID string) (*dto.BatchListResponse, error) {
	filter := repository.BatchFilter{ProductID: productID}
	if status != "" {
		s, err := inventory.ParseBatchStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}
	list, err := uc.repos.Batches.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.BatchListResponse{Items: items}, nil
}

func getBatchForUpdate(ctx context.Context, repo repository.ProductionBatchRepository, id string) (*entity.ProductionBatch, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	b, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: lote %s", domain.ErrNotFound, id)
	}
	return b, nil
}

func toBatchResponse(b *entity.ProductionBatch) *dto.BatchResponse {
	ings := make([]dto.BatchIngredientDTO, 0, len(b.Ingredients))
	for _, i := range b.Ingredients {
		ings = append(ings, dto.BatchIngredientDTO{IngredientID: i.IngredientID, Quantity: i.Quantity})
	}
	return &dto.BatchResponse{
		ID:              b.ID,
		ProductID:       b.ProductID,
		FacilityID:      b.FacilityID,
		Quantity:        b.Quantity,
		BatchNumber:     b.BatchNumber,
		Operator:        b.Operator,
		Status:          string(b.Status),
		IngredientsUsed: ings,
		Notes:           b.Notes,
		Revision:        b.Revision,
		CompletedAt:     b.CompletedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

