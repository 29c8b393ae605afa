package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lztmeat/inventario-api/internal/application/dto"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/lztmeat/inventario-api/pkg/logger"
)

const defaultMovementLimit = 100

// StockUseCase consultas del Quantity Store y ajustes manuales de producto.
type StockUseCase struct {
	repos  Repos
	ledger *StockLedger
	cache  StockCache
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso. repos son los repositorios de lectura (fuera de tx).
func NewStockUseCase(repos Repos, ledger *StockLedger, cache StockCache, log *logger.Logger) *StockUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	return &StockUseCase{repos: repos, ledger: ledger, cache: cache, log: log}
}

// GetStock devuelve la cantidad de productID en la ubicación (0 si nunca tuvo movimientos).
// Producto o ubicación inexistentes devuelven ErrNotFound.
func (uc *StockUseCase) GetStock(ctx context.Context, productID, locationRef string) (*dto.StockResponse, error) {
	if _, err := RequireProduct(ctx, uc.repos.Products, productID); err != nil {
		return nil, err
	}
	loc, err := ResolveLocation(ctx, uc.repos.Locations, locationRef)
	if err != nil {
		return nil, err
	}
	key := StockKey{ProductID: productID, LocationID: loc.ID}

	// La generación se lee antes que el store: si un commit invalida la clave entre ambas
	// lecturas, Set descarta el valor viejo.
	cached, cacheErr := uc.cache.Get(ctx, key)
	if cacheErr != nil {
		uc.log.Warn().Err(cacheErr).Str("product_id", productID).Msg("lectura de caché de stock")
	} else if cached.Hit {
		return &dto.StockResponse{ProductID: productID, LocationID: loc.ID, Quantity: cached.Quantity}, nil
	}

	entry, err := uc.repos.Stock.Get(ctx, productID, loc.ID)
	if err != nil {
		return nil, err
	}
	if cacheErr != nil {
		return toStockResponse(entry), nil
	}
	if err := uc.cache.Set(ctx, key, entry.Quantity, cached.Generation); err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("escritura de caché de stock")
	}
	return toStockResponse(entry), nil
}

// ListStock lista las entradas de stock; productID y locationRef son filtros opcionales.
func (uc *StockUseCase) ListStock(ctx context.Context, productID, locationRef string) (*dto.StockListResponse, error) {
	filter := repository.StockFilter{ProductID: productID}
	if locationRef != "" {
		loc, err := ResolveLocation(ctx, uc.repos.Locations, locationRef)
		if err != nil {
			return nil, err
		}
		filter.LocationID = loc.ID
	}
	list, err := uc.repos.Stock.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{Items: items}, nil
}

// ListMovements lista el libro de movimientos, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID, locationRef string, limit int) (*dto.MovementListResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultMovementLimit
	}
	filter := repository.MovementFilter{ProductID: productID, Limit: limit}
	if locationRef != "" {
		loc, err := ResolveLocation(ctx, uc.repos.Locations, locationRef)
		if err != nil {
			return nil, err
		}
		filter.LocationID = loc.ID
	}
	list, err := uc.repos.Movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:             m.ID,
			IdempotencyKey: m.IdempotencyKey,
			Kind:           string(m.Kind),
			ProductID:      m.ProductID,
			LocationID:     m.LocationID,
			Delta:          m.Delta,
			BalanceAfter:   m.BalanceAfter,
			Reference:      m.Reference,
			CreatedBy:      m.CreatedBy,
			CreatedAt:      m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{Items: items}, nil
}

// AdjustProductStock aplica un ManualAdjustment: la única forma de compensar créditos de
// producción o débitos de venta ya aplicados. Con IdempotencyKey el ajuste se aplica una sola vez.
func (uc *StockUseCase) AdjustProductStock(ctx context.Context, userID string, in dto.AdjustProductStockRequest) (*dto.AdjustProductStockResponse, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: motivo requerido", domain.ErrInvalidInput)
	}
	if in.Delta.IsZero() {
		return nil, fmt.Errorf("%w: delta no puede ser cero", domain.ErrInvalidInput)
	}
	if _, err := RequireProduct(ctx, uc.repos.Products, in.ProductID); err != nil {
		return nil, err
	}
	loc, err := ResolveLocation(ctx, uc.repos.Locations, in.Location)
	if err != nil {
		return nil, err
	}
	key := in.IdempotencyKey
	if key == "" {
		key = uuid.New().String()
	}

	var res *MutationResult
	err = uc.ledger.Run(ctx, func(r Repos, m Mutator) error {
		var err error
		res, err = m.Mutate(ctx, inventory.Event{
			Kind:       entity.MovementManualAdjustment,
			Key:        inventory.AdjustmentKey(key),
			ProductID:  in.ProductID,
			LocationID: loc.ID,
			Delta:      in.Delta,
			Reference:  in.Reason,
			CreatedBy:  userID,
		})
		if err != nil {
			return err
		}
		if !res.Applied {
			return nil
		}
		return RecordHistory(ctx, r.History, entity.HistoryAdjust, "stock", in.ProductID, userID, map[string]any{
			"location_id": loc.ID,
			"delta":       in.Delta,
			"reason":      in.Reason,
			"quantity":    res.Quantity,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustProductStockResponse{
		ProductID:  in.ProductID,
		LocationID: loc.ID,
		Quantity:   res.Quantity,
		Applied:    res.Applied,
	}, nil
}

func toStockResponse(s *entity.StockEntry) *dto.StockResponse {
	out := &dto.StockResponse{ProductID: s.ProductID, LocationID: s.LocationID, Quantity: s.Quantity}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

