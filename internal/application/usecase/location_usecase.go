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
	"github.com/lztmeat/inventario-api/pkg/logger"
)

// LocationUseCase registro de ubicaciones (tiendas y plantas).
type LocationUseCase struct {
	repos appinv.Repos
	tx    appinv.TxRunner
	log   *logger.Logger
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repos appinv.Repos, tx appinv.TxRunner, log *logger.Logger) *LocationUseCase {
	return &LocationUseCase{repos: repos, tx: tx, log: log}
}

// systemLocations ubicaciones que siempre deben existir.
var systemLocations = []struct {
	name string
	kind string
}{
	{entity.LocationMainStore, entity.LocationKindStore},
	{entity.LocationProductionFacility, entity.LocationKindFacility},
}

// EnsureSystemLocations crea Main Store y Production Facility si faltan. Es idempotente;
// se llama una vez al arrancar.
func (uc *LocationUseCase) EnsureSystemLocations(ctx context.Context) error {
	return uc.tx.Run(ctx, func(r appinv.Repos) error {
		for _, s := range systemLocations {
			existing, err := r.Locations.GetByNameKey(ctx, entity.LocationNameKey(s.name))
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			now := time.Now()
			if err := r.Locations.Create(ctx, &entity.Location{
				ID:        uuid.New().String(),
				Name:      s.name,
				NameKey:   entity.LocationNameKey(s.name),
				Kind:      s.kind,
				IsSystem:  true,
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
			uc.log.Info().Str("location", s.name).Msg("ubicación de sistema creada")
		}
		return nil
	})
}

// Create registra una ubicación. El nombre es único sin distinguir mayúsculas ni espacios.
func (uc *LocationUseCase) Create(ctx context.Context, userID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	switch kind {
	case "":
		kind = entity.LocationKindStore
	case entity.LocationKindStore, entity.LocationKindFacility:
	default:
		return nil, fmt.Errorf("%w: tipo de ubicación %q", domain.ErrInvalidInput, in.Kind)
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      name,
		NameKey:   entity.LocationNameKey(name),
		Kind:      kind,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r appinv.Repos) error {
		existing, err := r.Locations.GetByNameKey(ctx, loc.NameKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ubicación %q", domain.ErrDuplicate, name)
		}
		if err := r.Locations.Create(ctx, loc); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryCreate, "location", loc.ID, userID, map[string]any{
			"name": loc.Name,
			"kind": loc.Kind,
		})
	})
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Get obtiene una ubicación por id o nombre.
func (uc *LocationUseCase) Get(ctx context.Context, ref string) (*dto.LocationResponse, error) {
	loc, err := appinv.ResolveLocation(ctx, uc.repos.Locations, ref)
	if err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// List lista todas las ubicaciones por nombre.
func (uc *LocationUseCase) List(ctx context.Context) (*dto.LocationListResponse, error) {
	list, err := uc.repos.Locations.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items}, nil
}

// Delete elimina una ubicación. Las de sistema y las referenciadas por traslados
// activos no se pueden eliminar.
func (uc *LocationUseCase) Delete(ctx context.Context, userID, ref string) error {
	return uc.tx.Run(ctx, func(r appinv.Repos) error {
		loc, err := appinv.ResolveLocation(ctx, r.Locations, ref)
		if err != nil {
			return err
		}
		if loc.IsSystem {
			return fmt.Errorf("%w: %s es una ubicación de sistema", domain.ErrConflict, loc.Name)
		}
		active, err := r.Transfers.CountActiveByLocation(ctx, loc.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: %s tiene %d traslados activos", domain.ErrConflict, loc.Name, active)
		}
		if err := r.Locations.Delete(ctx, loc.ID); err != nil {
			return err
		}
		return appinv.RecordHistory(ctx, r.History, entity.HistoryDelete, "location", loc.ID, userID, map[string]any{
			"name": loc.Name,
		})
	})
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Kind:      l.Kind,
		Address:   l.Address,
		IsSystem:  l.IsSystem,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
