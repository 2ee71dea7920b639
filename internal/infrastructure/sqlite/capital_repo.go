package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.CapitalRepository = (*capitalRepo)(nil)

type capitalRepo struct {
	s *Store
}

func (r *capitalRepo) Create(ctx context.Context, capTx *entity.CapitalTransaction) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		capTx.CreatedAt = now
		res, err := tx.ExecContext(ctx, `
			INSERT INTO capital_transactions (amount, reason, created_at)
			VALUES (?, ?, ?)`,
			capTx.Amount.String(), capTx.Reason, fmtTime(now),
		)
		if err != nil {
			return fmt.Errorf("insert capital transaction: %w", err)
		}
		if capTx.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("id de movimiento: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityCapital, entity.ActionCreate, capTx, now)
	})
}

func (r *capitalRepo) List(ctx context.Context) ([]*entity.CapitalTransaction, error) {
	rows, err := r.s.db.QueryContext(ctx, selectCapital+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list capital transactions: %w", err)
	}
	defer rows.Close()
	list := []*entity.CapitalTransaction{}
	for rows.Next() {
		c, err := scanCapital(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
