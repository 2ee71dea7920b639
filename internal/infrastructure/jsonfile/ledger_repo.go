package jsonfile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.PendingChangeRepository = (*ledgerRepo)(nil)

type ledgerRepo struct {
	s *Store
}

// Append agrega una entrada originada por el boundary (addPendingChange).
// Las mutaciones de entidades escriben las suyas dentro de su propia unidad
// durable; esta vía existe para entradas registradas por la UI.
func (r *ledgerRepo) Append(ctx context.Context, change *entity.PendingChange) error {
	if !entity.ValidEntityType(change.EntityType) {
		return fmt.Errorf("%w: entity_type %q desconocido", domain.ErrValidation, change.EntityType)
	}
	if !entity.ValidAction(change.Action) {
		return fmt.Errorf("%w: action %q desconocida", domain.ErrValidation, change.Action)
	}
	return r.s.mutate(func(d *document) error {
		change.ID = d.nextID("pending_change")
		change.CreatedAt = time.Now()
		change.SyncedAt = nil
		cp := *change
		d.PendingChanges = append(d.PendingChanges, &cp)
		return nil
	})
}

func (r *ledgerRepo) Pending(ctx context.Context) ([]*entity.PendingChange, error) {
	var out []*entity.PendingChange
	r.s.read(func(d *document) {
		out = []*entity.PendingChange{}
		for _, ch := range d.PendingChanges {
			if ch.SyncedAt == nil {
				cp := *ch
				out = append(out, &cp)
			}
		}
	})
	// Más antiguo primero; ID como desempate para órdenes estables.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// MarkSynced estampa SyncedAt en las entradas indicadas. Las entradas
// sincronizadas se retienen para auditoría; solo dejan de ser pendientes.
func (r *ledgerRepo) MarkSynced(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.s.mutate(func(d *document) error {
		now := time.Now()
		for _, ch := range d.PendingChanges {
			if want[ch.ID] && ch.SyncedAt == nil {
				t := now
				ch.SyncedAt = &t
			}
		}
		return nil
	})
}

func (r *ledgerRepo) Clear(ctx context.Context) error {
	return r.s.mutate(func(d *document) error {
		now := time.Now()
		for _, ch := range d.PendingChanges {
			if ch.SyncedAt == nil {
				t := now
				ch.SyncedAt = &t
			}
		}
		return nil
	})
}
