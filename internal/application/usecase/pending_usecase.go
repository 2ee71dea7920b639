package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// PendingChangeUseCase casos de uso del ledger de cambios pendientes. Los
// backends anotan las mutaciones propias; esta vía existe para entradas
// originadas por la UI y para consultar o limpiar la cola.
type PendingChangeUseCase struct {
	repo repository.PendingChangeRepository
}

// NewPendingChangeUseCase construye el caso de uso.
func NewPendingChangeUseCase(repo repository.PendingChangeRepository) *PendingChangeUseCase {
	return &PendingChangeUseCase{repo: repo}
}

// Add registra una entrada en el ledger. EntityType y Action deben ser
// valores conocidos; Data es opaco y se guarda tal cual.
func (uc *PendingChangeUseCase) Add(ctx context.Context, in dto.AddPendingChangeRequest) (*dto.PendingChangeResponse, error) {
	if !entity.ValidEntityType(in.EntityType) {
		return nil, fmt.Errorf("%w: entity_type desconocido %q", domain.ErrValidation, in.EntityType)
	}
	if !entity.ValidAction(in.Action) {
		return nil, fmt.Errorf("%w: action desconocida %q", domain.ErrValidation, in.Action)
	}
	change := &entity.PendingChange{
		EntityType: in.EntityType,
		Action:     in.Action,
		Payload:    in.Data,
	}
	if err := uc.repo.Append(ctx, change); err != nil {
		return nil, err
	}
	return toPendingChangeResponse(change), nil
}

// Pending lista las entradas aún no sincronizadas, más antigua primero.
func (uc *PendingChangeUseCase) Pending(ctx context.Context) ([]*dto.PendingChangeResponse, error) {
	list, err := uc.repo.Pending(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PendingChangeResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toPendingChangeResponse(c))
	}
	return out, nil
}

// Clear marca todas las entradas pendientes como sincronizadas.
func (uc *PendingChangeUseCase) Clear(ctx context.Context) error {
	return uc.repo.Clear(ctx)
}

func toPendingChangeResponse(c *entity.PendingChange) *dto.PendingChangeResponse {
	if c == nil {
		return nil
	}
	return &dto.PendingChangeResponse{
		ID:         c.ID,
		EntityType: c.EntityType,
		Action:     c.Action,
		Payload:    c.Payload,
		CreatedAt:  c.CreatedAt,
		SyncedAt:   c.SyncedAt,
	}
}
