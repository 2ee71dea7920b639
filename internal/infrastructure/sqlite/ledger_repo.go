package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.PendingChangeRepository = (*ledgerRepo)(nil)

type ledgerRepo struct {
	s *Store
}

// Append entrada originada por el boundary. Las mutaciones de entidades
// insertan las suyas dentro de su propia transacción (appendChangeTx).
func (r *ledgerRepo) Append(ctx context.Context, change *entity.PendingChange) error {
	if !entity.ValidEntityType(change.EntityType) {
		return fmt.Errorf("%w: entity_type %q desconocido", domain.ErrValidation, change.EntityType)
	}
	if !entity.ValidAction(change.Action) {
		return fmt.Errorf("%w: action %q desconocida", domain.ErrValidation, change.Action)
	}
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		change.CreatedAt = now
		change.SyncedAt = nil
		res, err := tx.ExecContext(ctx, `
			INSERT INTO pending_changes (entity_type, action, payload, created_at, synced_at)
			VALUES (?, ?, ?, ?, NULL)`,
			change.EntityType, change.Action, string(change.Payload), fmtTime(now),
		)
		if err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}
		if change.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("id de entrada: %w", err)
		}
		return nil
	})
}

func (r *ledgerRepo) Pending(ctx context.Context) ([]*entity.PendingChange, error) {
	rows, err := r.s.db.QueryContext(ctx,
		selectChange+` WHERE synced_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("pending changes: %w", err)
	}
	defer rows.Close()
	list := []*entity.PendingChange{}
	for rows.Next() {
		ch, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ch)
	}
	return list, rows.Err()
}

func (r *ledgerRepo) MarkSynced(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		args := make([]any, 0, len(ids)+1)
		args = append(args, fmtTime(time.Now()))
		for _, id := range ids {
			args = append(args, id)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE pending_changes SET synced_at = ? WHERE synced_at IS NULL AND id IN (`+placeholders+`)`,
			args...,
		); err != nil {
			return fmt.Errorf("mark synced: %w", err)
		}
		return nil
	})
}

func (r *ledgerRepo) Clear(ctx context.Context) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE pending_changes SET synced_at = ? WHERE synced_at IS NULL`,
			fmtTime(time.Now()),
		); err != nil {
			return fmt.Errorf("clear ledger: %w", err)
		}
		return nil
	})
}

// allChanges incluye también las entradas ya sincronizadas (para Snapshot).
func (s *Store) allChanges(ctx context.Context) ([]*entity.PendingChange, error) {
	rows, err := s.db.QueryContext(ctx, selectChange+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("all changes: %w", err)
	}
	defer rows.Close()
	list := []*entity.PendingChange{}
	for rows.Next() {
		ch, err := scanChange(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ch)
	}
	return list, rows.Err()
}
