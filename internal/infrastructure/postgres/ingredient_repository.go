package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/lztmeat/inventario-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.IngredientRepository      = (*IngredientRepo)(nil)
	_ repository.StockAdjustmentRepository = (*AdjustmentRepo)(nil)
)

// IngredientRepo ingredientes (materia prima) sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, name, code, category_id, unit, stock, min_stock, reorder_point, cost_per_unit, supplier_id, created_at, updated_at`

// Create persiste un ingrediente. code es único.
func (r *IngredientRepo) Create(ctx context.Context, in *entity.Ingredient) error {
	query := `INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		in.ID, in.Name, in.Code, in.CategoryID, in.Unit, in.Stock, in.MinStock,
		in.ReorderPoint, in.CostPerUnit, in.SupplierID, in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	return r.getOne(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = $1`, id)
}

// GetByCode obtiene un ingrediente por código.
func (r *IngredientRepo) GetByCode(ctx context.Context, code string) (*entity.Ingredient, error) {
	return r.getOne(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE code = $1`, code)
}

func (r *IngredientRepo) getOne(ctx context.Context, query string, arg any) (*entity.Ingredient, error) {
	in, err := scanIngredient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return in, nil
}

// Update actualiza los datos descriptivos. Stock y costo tienen operaciones propias.
func (r *IngredientRepo) Update(ctx context.Context, in *entity.Ingredient) error {
	query := `
		UPDATE ingredients SET name = $2, category_id = $3, unit = $4, min_stock = $5,
			reorder_point = $6, supplier_id = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		in.ID, in.Name, in.CategoryID, in.Unit, in.MinStock, in.ReorderPoint, in.SupplierID, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List ingredientes ordenados por nombre.
func (r *IngredientRepo) List(ctx context.Context) ([]*entity.Ingredient, error) {
	return r.list(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name`)
}

// ListBelowReorderPoint ingredientes con stock <= punto de reorden.
func (r *IngredientRepo) ListBelowReorderPoint(ctx context.Context) ([]*entity.Ingredient, error) {
	return r.list(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE stock <= reorder_point ORDER BY name`)
}

func (r *IngredientRepo) list(ctx context.Context, query string) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Ingredient
	for rows.Next() {
		in, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// ApplyStockDelta suma delta con piso en cero y devuelve el stock anterior y el nuevo.
func (r *IngredientRepo) ApplyStockDelta(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		WITH prev AS (SELECT stock FROM ingredients WHERE id = $1 FOR UPDATE)
		UPDATE ingredients i
		SET stock = GREATEST(i.stock + $2::numeric, 0), updated_at = now()
		FROM prev
		WHERE i.id = $1
		RETURNING prev.stock, i.stock`
	var previous, current decimal.Decimal
	err := r.q.QueryRow(ctx, query, id, delta).Scan(&previous, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, decimal.Zero, fmt.Errorf("apply ingredient delta: %w", err)
	}
	return previous, current, nil
}

// UpdateCost actualiza solo el costo promedio ponderado.
func (r *IngredientRepo) UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ingredients SET cost_per_unit = $2, updated_at = now() WHERE id = $1`,
		id, cost,
	)
	if err != nil {
		return fmt.Errorf("update ingredient cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var in entity.Ingredient
	if err := row.Scan(
		&in.ID, &in.Name, &in.Code, &in.CategoryID, &in.Unit, &in.Stock, &in.MinStock,
		&in.ReorderPoint, &in.CostPerUnit, &in.SupplierID, &in.CreatedAt, &in.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &in, nil
}

// AdjustmentRepo registro de ajustes de ingredientes (solo inserción).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, ingredient_id, ingredient_name, ingredient_code, type, quantity, previous_stock,
	new_stock, unit, reason, user_id, user_name, ip_address, created_at`

// Create persiste el ajuste con la instantánea de stock anterior y nuevo.
func (r *AdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `INSERT INTO stock_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.IngredientID, a.IngredientName, a.IngredientCode, string(a.Type), a.Quantity, a.PreviousStock,
		a.NewStock, a.Unit, a.Reason, a.UserID, a.UserName, a.IPAddress, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// List ajustes más recientes primero; ingredientID vacío lista todos.
func (r *AdjustmentRepo) List(ctx context.Context, ingredientID string, limit int) ([]*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments
		WHERE ($1 = '' OR ingredient_id::text = $1)
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, ingredientID, clampLimit(limit, 100, 500))
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockAdjustment
	for rows.Next() {
		var (
			a   entity.StockAdjustment
			typ string
		)
		if err := rows.Scan(
			&a.ID, &a.IngredientID, &a.IngredientName, &a.IngredientCode, &typ, &a.Quantity, &a.PreviousStock,
			&a.NewStock, &a.Unit, &a.Reason, &a.UserID, &a.UserName, &a.IPAddress, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		a.Type = entity.AdjustmentType(typ)
		list = append(list, &a)
	}
	return list, rows.Err()
}
