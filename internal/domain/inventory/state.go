package inventory

import (
	"fmt"
	"strings"

	"github.com/lztmeat/inventario-api/internal/domain"
	"github.com/lztmeat/inventario-api/internal/domain/entity"
)

// ParseBatchStatus interpreta un estado de lote (acepta guion o guion bajo).
func ParseBatchStatus(s string) (entity.BatchStatus, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case string(entity.BatchInProgress):
		return entity.BatchInProgress, nil
	case string(entity.BatchQualityCheck):
		return entity.BatchQualityCheck, nil
	case string(entity.BatchCompleted):
		return entity.BatchCompleted, nil
	}
	return "", fmt.Errorf("%w: estado de lote %q", domain.ErrInvalidInput, s)
}

// CheckBatchTransition valida el paso de un lote de current a target.
// Solo avanza: in-progress -> quality-check -> completed, o in-progress -> completed.
// Re-completar un lote completado es un no-op (noop=true); cualquier otro repetido o retroceso es error.
func CheckBatchTransition(current, target entity.BatchStatus) (noop bool, err error) {
	if current == entity.BatchCompleted && target == entity.BatchCompleted {
		return true, nil
	}
	switch {
	case current == entity.BatchInProgress && target == entity.BatchQualityCheck,
		current == entity.BatchInProgress && target == entity.BatchCompleted,
		current == entity.BatchQualityCheck && target == entity.BatchCompleted:
		return false, nil
	}
	return false, fmt.Errorf("%w: lote de %q a %q", domain.ErrInvalidTransition, current, target)
}

// ParseTransferStatus interpreta un estado de traslado sin distinguir mayúsculas.
func ParseTransferStatus(s string) (entity.TransferStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "pending":
		return entity.TransferPending, nil
	case "in transit":
		return entity.TransferInTransit, nil
	case "completed":
		return entity.TransferCompleted, nil
	case "cancelled", "canceled":
		return entity.TransferCancelled, nil
	}
	return "", fmt.Errorf("%w: estado de traslado %q", domain.ErrInvalidInput, s)
}

// CheckTransferTransition valida el paso de un traslado de current a target.
// Pending -> In Transit -> Completed; Pending o In Transit -> Cancelled o Completed.
// Completed y Cancelled son terminales.
func CheckTransferTransition(current, target entity.TransferStatus) error {
	switch current {
	case entity.TransferPending:
		if target == entity.TransferInTransit || target == entity.TransferCancelled || target == entity.TransferCompleted {
			return nil
		}
	case entity.TransferInTransit:
		if target == entity.TransferCancelled || target == entity.TransferCompleted {
			return nil
		}
	}
	return fmt.Errorf("%w: traslado de %q a %q", domain.ErrInvalidTransition, current, target)
}
