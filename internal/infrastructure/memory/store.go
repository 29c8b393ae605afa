// Package memory implementa todos los repositorios y el TxRunner en memoria.
// Lo usan los tests, los escenarios BDD y el modo STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/lztmeat/inventario-api/internal/application/inventory"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*Store)(nil)

type stockKey struct {
	productID  string
	locationID string
}

// data es el estado completo. Las entidades se guardan por valor; los slices internos
// se copian al escribir, así clone() puede ser superficial por entidad.
type data struct {
	products    map[string]entity.Product
	locations   map[string]entity.Location
	stock       map[stockKey]entity.StockEntry
	movements   []entity.StockMovement
	movementKey map[string]int // idempotency_key -> índice en movements
	batches     map[string]entity.ProductionBatch
	transfers   map[string]entity.Transfer
	sales       map[string]entity.Sale
	discounts   *entity.DiscountSettings // nil hasta el primer Save
	ingredients map[string]entity.Ingredient
	adjustments []entity.StockAdjustment
	history     []entity.HistoryEntry
}

func newData() *data {
	return &data{
		products:    map[string]entity.Product{},
		locations:   map[string]entity.Location{},
		stock:       map[stockKey]entity.StockEntry{},
		movementKey: map[string]int{},
		batches:     map[string]entity.ProductionBatch{},
		transfers:   map[string]entity.Transfer{},
		sales:       map[string]entity.Sale{},
		ingredients: map[string]entity.Ingredient{},
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.stock {
		c.stock[k] = v
	}
	c.movements = append([]entity.StockMovement(nil), d.movements...)
	for k, v := range d.movementKey {
		c.movementKey[k] = v
	}
	for k, v := range d.batches {
		c.batches[k] = v
	}
	for k, v := range d.transfers {
		c.transfers[k] = v
	}
	for k, v := range d.sales {
		c.sales[k] = v
	}
	if d.discounts != nil {
		ds := *d.discounts
		c.discounts = &ds
	}
	for k, v := range d.ingredients {
		c.ingredients[k] = v
	}
	c.adjustments = append([]entity.StockAdjustment(nil), d.adjustments...)
	c.history = append([]entity.HistoryEntry(nil), d.history...)
	return c
}

// Store almacén en memoria seguro para uso concurrente.
// Run serializa las transacciones: trabaja sobre una copia y la publica solo en el commit.
type Store struct {
	mu     sync.RWMutex
	d      *data
	faults map[string]error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{d: newData(), faults: map[string]error{}}
}

// Repos devuelve los repositorios sobre el estado publicado (fuera de transacción).
func (s *Store) Repos() inventory.Repos {
	return reposFor(&view{s: s})
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia reemplaza al estado.
func (s *Store) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := s.d.clone()
	if err := fn(reposFor(&view{s: s, tx: cp})); err != nil {
		return err
	}
	s.d = cp
	return nil
}

// FailOn hace que la próxima operación op ("sales.create", "stock.apply", ...) devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault consume una falla inyectada. Se llama con s.mu tomado (tx) o dentro de write().
func (s *Store) fault(op string) error {
	if err, ok := s.faults[op]; ok {
		delete(s.faults, op)
		return err
	}
	return nil
}

// view apunta al estado publicado (tx == nil) o a la copia de una transacción.
type view struct {
	s  *Store
	tx *data
}

func (v *view) read(fn func(d *data)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.d)
}

func (v *view) write(op string, fn func(d *data) error) error {
	if v.tx != nil {
		if err := v.s.fault(op); err != nil {
			return err
		}
		return fn(v.tx)
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fault(op); err != nil {
		return err
	}
	return fn(v.s.d)
}

func reposFor(v *view) inventory.Repos {
	return inventory.Repos{
		Stock:       &StockRepo{v: v},
		Movements:   &MovementRepo{v: v},
		Products:    &ProductRepo{v: v},
		Locations:   &LocationRepo{v: v},
		Batches:     &BatchRepo{v: v},
		Transfers:   &TransferRepo{v: v},
		Sales:       &SaleRepo{v: v},
		Discounts:   &DiscountRepo{v: v},
		Ingredients: &IngredientRepo{v: v},
		Adjustments: &AdjustmentRepo{v: v},
		History:     &HistoryRepo{v: v},
	}
}
