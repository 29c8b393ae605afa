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
)

// TransferUseCase gestiona traslados entre ubicaciones. El stock se mueve solo al recibir.
type TransferUseCase struct {
	repos  Repos
	ledger *StockLedger
	now    func() time.Time
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(repos Repos, ledger *StockLedger) *TransferUseCase {
	return &TransferUseCase{repos: repos, ledger: ledger, now: time.Now}
}

// Create registra un traslado Pending sin efecto sobre el stock.
func (uc *TransferUseCase) Create(ctx context.Context, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	in.RequestedBy = strings.TrimSpace(in.RequestedBy)
	if in.RequestedBy == "" {
		return nil, fmt.Errorf("%w: requested_by es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if _, err := RequireProduct(ctx, uc.repos.Products, in.ProductID); err != nil {
		return nil, err
	}
	from, err := ResolveLocation(ctx, uc.repos.Locations, in.From)
	if err != nil {
		return nil, err
	}
	to, err := ResolveLocation(ctx, uc.repos.Locations, in.To)
	if err != nil {
		return nil, err
	}
	if from.ID == to.ID {
		return nil, fmt.Errorf("%w: origen y destino deben ser distintos", domain.ErrInvalidInput)
	}

	now := uc.now()
	t := &entity.Transfer{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		FromID:      from.ID,
		ToID:        to.ID,
		Quantity:    in.Quantity,
		Status:      entity.TransferPending,
		RequestedBy: in.RequestedBy,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.ledger.Run(ctx, func(r Repos, _ Mutator) error {
		if err := r.Transfers.Create(ctx, t); err != nil {
			return err
		}
		return RecordHistory(ctx, r.History, entity.HistoryCreate, "transfer", t.ID, userID, map[string]any{
			"from":     from.Name,
			"to":       to.Name,
			"quantity": t.Quantity,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// UpdateStatus cambia el estado del traslado. Completed delega en Receive con los valores por defecto.
func (uc *TransferUseCase) UpdateStatus(ctx context.Context, userID, transferID string, in dto.UpdateTransferStatusRequest) (*dto.TransferResponse, error) {
	target, err := inventory.ParseTransferStatus(in.Status)
	if err != nil {
		return nil, err
	}
	if target == entity.TransferCompleted {
		return uc.Receive(ctx, userID, transferID, dto.ReceiveTransferRequest{ReceivedBy: userID})
	}

	var out *entity.Transfer
	err = uc.ledger.Run(ctx, func(r Repos, _ Mutator) error {
		t, err := getTransferForUpdate(ctx, r.Transfers, transferID)
		if err != nil {
			return err
		}
		if err := inventory.CheckTransferTransition(t.Status, target); err != nil {
			return err
		}
		prev := t.Status
		t.Status = target
		t.UpdatedAt = uc.now()
		if err := r.Transfers.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return RecordHistory(ctx, r.History, entity.HistoryStatus, "transfer", t.ID, userID, map[string]any{
			"from": prev,
			"to":   target,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(out), nil
}

// Receive completa el traslado: debita el origen y acredita el destino con la cantidad recibida
// en la misma transacción que el cambio de estado. La discrepancia es solicitado - recibido.
func (uc *TransferUseCase) Receive(ctx context.Context, userID, transferID string, in dto.ReceiveTransferRequest) (*dto.TransferResponse, error) {
	if in.QuantityReceived != nil && !in.QuantityReceived.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad recibida debe ser mayor que cero", domain.ErrInvalidInput)
	}
	receivedBy := strings.TrimSpace(in.ReceivedBy)
	if receivedBy == "" {
		receivedBy = userID
	}

	var out *entity.Transfer
	err := uc.ledger.Run(ctx, func(r Repos, m Mutator) error {
		t, err := getTransferForUpdate(ctx, r.Transfers, transferID)
		if err != nil {
			return err
		}
		if err := inventory.CheckTransferTransition(t.Status, entity.TransferCompleted); err != nil {
			return err
		}
		received := t.Quantity
		if in.QuantityReceived != nil {
			received = *in.QuantityReceived
		}
		discrepancy := t.Quantity.Sub(received)
		ref := "Traslado " + t.ID

		if _, err := m.Mutate(ctx, inventory.Event{
			Kind:       entity.MovementTransferDebit,
			Key:        inventory.TransferDebitKey(t.ID),
			ProductID:  t.ProductID,
			LocationID: t.FromID,
			Delta:      received.Neg(),
			Reference:  ref,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}
		if _, err := m.Mutate(ctx, inventory.Event{
			Kind:       entity.MovementTransferCredit,
			Key:        inventory.TransferCreditKey(t.ID),
			ProductID:  t.ProductID,
			LocationID: t.ToID,
			Delta:      received,
			Reference:  ref,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}

		now := uc.now()
		t.Status = entity.TransferCompleted
		t.QuantityReceived = &received
		t.Discrepancy = &discrepancy
		t.DiscrepancyReason = strings.TrimSpace(in.DiscrepancyReason)
		t.ReceivedBy = receivedBy
		t.ReceivedAt = &now
		t.UpdatedAt = now
		if err := r.Transfers.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return RecordHistory(ctx, r.History, entity.HistoryReceive, "transfer", t.ID, userID, map[string]any{
			"quantity_received": received,
			"discrepancy":       discrepancy,
			"reason":            t.DiscrepancyReason,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(out), nil
}

// Get obtiene un traslado por ID.
func (uc *TransferUseCase) Get(ctx context.Context, transferID string) (*dto.TransferResponse, error) {
	if _, err := uuid.Parse(transferID); err != nil {
		return nil, domain.ErrNotFound
	}
	t, err := uc.repos.Transfers.GetByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(t), nil
}

// List lista traslados; status y locationRef (origen o destino) son filtros opcionales.
func (uc *TransferUseCase) List(ctx context.Context, status, locationRef string) (*dto.TransferListResponse, error) {
	var filter repository.TransferFilter
	if status != "" {
		s, err := inventory.ParseTransferStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}
	if locationRef != "" {
		loc, err := ResolveLocation(ctx, uc.repos.Locations, locationRef)
		if err != nil {
			return nil, err
		}
		filter.LocationID = loc.ID
	}
	list, err := uc.repos.Transfers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{Items: items}, nil
}

func getTransferForUpdate(ctx context.Context, repo repository.TransferRepository, id string) (*entity.Transfer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	t, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: traslado %s", domain.ErrNotFound, id)
	}
	return t, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:                t.ID,
		ProductID:         t.ProductID,
		FromID:            t.FromID,
		ToID:              t.ToID,
		Quantity:          t.Quantity,
		QuantityReceived:  t.QuantityReceived,
		Discrepancy:       t.Discrepancy,
		DiscrepancyReason: t.DiscrepancyReason,
		Status:            string(t.Status),
		RequestedBy:       t.RequestedBy,
		ReceivedBy:        t.ReceivedBy,
		ReceivedAt:        t.ReceivedAt,
		Notes:             t.Notes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
