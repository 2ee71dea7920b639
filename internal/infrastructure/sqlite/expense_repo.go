package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*expenseRepo)(nil)

type expenseRepo struct {
	s *Store
}

func (r *expenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		expense.CreatedAt = now
		res, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (amount, description, category, created_at)
			VALUES (?, ?, ?, ?)`,
			expense.Amount.String(), expense.Description, expense.Category, fmtTime(now),
		)
		if err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		if expense.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("id de gasto: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityExpense, entity.ActionCreate, expense, now)
	})
}

func (r *expenseRepo) GetByID(ctx context.Context, id int64) (*entity.Expense, error) {
	return scanExpense(r.s.db.QueryRowContext(ctx, selectExpense+` WHERE id = ?`, id))
}

func (r *expenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	rows, err := r.s.db.QueryContext(ctx, selectExpense+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	list := []*entity.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *expenseRepo) Delete(ctx context.Context, id int64) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		existing, err := scanExpense(tx.QueryRowContext(ctx, selectExpense+` WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityExpense, entity.ActionDelete, existing, time.Now())
	})
}
