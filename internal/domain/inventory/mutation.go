// Package inventory contiene las reglas puras del libro de stock: eventos de
// mutación, claves de idempotencia, piso en cero y máquinas de estado.
package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Event es una mutación de stock solicitada al motor.
// Key identifica el evento: una segunda aplicación con la misma clave es un no-op.
type Event struct {
	Kind       entity.MovementKind
	Key        string
	ProductID  string
	LocationID string
	Delta      decimal.Decimal
	Reference  string
	CreatedBy  string
}

// Validate verifica campos obligatorios y el signo del delta según el tipo de evento.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Key) == "" {
		return fmt.Errorf("%w: clave de idempotencia requerida", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(e.ProductID) == "" {
		return fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(e.LocationID) == "" {
		return fmt.Errorf("%w: ubicación requerida", domain.ErrInvalidInput)
	}
	if e.Delta.IsZero() {
		return fmt.Errorf("%w: la cantidad no puede ser cero", domain.ErrInvalidInput)
	}
	switch e.Kind {
	case entity.MovementTransferCredit:
		if e.Delta.IsNegative() {
			return fmt.Errorf("%w: %s debe ser positivo", domain.ErrInvalidInput, e.Kind)
		}
	case entity.MovementTransferDebit, entity.MovementSaleDebit:
		if e.Delta.IsPositive() {
			return fmt.Errorf("%w: %s debe ser negativo", domain.ErrInvalidInput, e.Kind)
		}
	case entity.MovementProductionCredit, entity.MovementManualAdjustment:
		// ambos signos: las correcciones de lote y los ajustes pueden restar
	default:
		return fmt.Errorf("%w: tipo de evento desconocido %q", domain.ErrInvalidInput, e.Kind)
	}
	return nil
}

// Strict indica si el evento debe rechazarse en lugar de aplicar el piso en cero.
// Un débito de traslado nunca se recorta: el stock que sale del origen es el mismo que llega al destino.
func (e Event) Strict() bool {
	return e.Kind == entity.MovementTransferDebit
}

// ClampAtZero aplica el piso en cero a una cantidad resultante.
func ClampAtZero(q decimal.Decimal) decimal.Decimal {
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}

// ── Claves de idempotencia ────────────────────────────────────────────────────

// ProductionCompletedKey clave del crédito por completar un lote.
func ProductionCompletedKey(batchID string) string {
	return "production:" + batchID + ":completed"
}

// ProductionRevisionKey clave de la corrección n de la cantidad de un lote completado.
func ProductionRevisionKey(batchID string, revision int) string {
	return "production:" + batchID + ":revision:" + strconv.Itoa(revision)
}

// TransferDebitKey clave del débito en el origen al recibir un traslado.
func TransferDebitKey(transferID string) string {
	return "transfer:" + transferID + ":received:debit"
}

// TransferCreditKey clave del crédito en el destino al recibir un traslado.
func TransferCreditKey(transferID string) string {
	return "transfer:" + transferID + ":received:credit"
}

// SaleLineKey clave del débito de la línea index de una venta.
func SaleLineKey(saleID string, index int) string {
	return "sale:" + saleID + ":line:" + strconv.Itoa(index)
}

// AdjustmentKey clave de un ajuste manual.
func AdjustmentKey(id string) string {
	return "adjustment:" + id
}
