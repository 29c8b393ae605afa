package usecase

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
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja solo vía el libro de movimientos.
type ProductUseCase struct {
	repos appinv.Repos
	tx    appinv.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repos appinv.Repos, tx appinv.TxRunner) *ProductUseCase {
	return &ProductUseCase{repos: repos, tx: tx}
}

// Create crea un nuevo producto. El SKU es único.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	if in.Unit == "" {
		in.Unit = "kg"
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Unit:       in.Unit,
		Price:      in.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := uc.tx.Run(ctx, func(r appinv.Repos) error {
		existing, err := r.Products.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, product.SKU)
		}
		if err := r.Products.Create(ctx, product); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryCreate, "product", product.ID, userID, map[string]any{
			"sku":  product.SKU,
			"name": product.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := appinv.RequireProduct(ctx, uc.repos.Products, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, categoría, unidad o precio. La identidad (id, sku) no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(r appinv.Repos) error {
		product, err := appinv.RequireProduct(ctx, r.Products, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			product.Name = strings.TrimSpace(*in.Name)
		}
		if in.CategoryID != nil {
			product.CategoryID = *in.CategoryID
		}
		if in.Unit != nil {
			product.Unit = *in.Unit
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		product.UpdatedAt = time.Now()
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		out = product
		return appinv.RecordHistory(ctx, r.History, entity.HistoryUpdate, "product", product.ID, userID, in)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	switch {
	case limit <= 0:
		limit = 100
	case limit > 500:
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repos.Products.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto sin referencias de inventario, producción, traslados o ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.tx.Run(ctx, func(r appinv.Repos) error {
		product, err := appinv.RequireProduct(ctx, r.Products, id)
		if err != nil {
			return err
		}
		used, err := r.Products.HasReferences(ctx, product.ID)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: el producto tiene inventario o movimientos asociados", domain.ErrConflict)
		}
		if err := r.Products.Delete(ctx, product.ID); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryDelete, "product", product.ID, userID, map[string]any{
			"sku": product.SKU,
		})
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Unit:       p.Unit,
		Price:      p.Price,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
