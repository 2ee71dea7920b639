package jsonfile

import (
	"context"
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
	return r.s.mutate(func(d *document) error {
		now := time.Now()
		expense.ID = d.nextID("expense")
		expense.CreatedAt = now
		cp := *expense
		d.Expenses = append(d.Expenses, &cp)
		return d.appendChange(entity.EntityExpense, entity.ActionCreate, &cp, now)
	})
}

func (r *expenseRepo) GetByID(ctx context.Context, id int64) (*entity.Expense, error) {
	var out *entity.Expense
	r.s.read(func(d *document) {
		if _, e := d.findExpense(id); e != nil {
			cp := *e
			out = &cp
		}
	})
	return out, nil
}

func (r *expenseRepo) List(ctx context.Context) ([]*entity.Expense, error) {
	var out []*entity.Expense
	r.s.read(func(d *document) {
		out = make([]*entity.Expense, 0, len(d.Expenses))
		for _, e := range d.Expenses {
			cp := *e
			out = append(out, &cp)
		}
	})
	return out, nil
}

func (r *expenseRepo) Delete(ctx context.Context, id int64) error {
	return r.s.mutate(func(d *document) error {
		i, existing := d.findExpense(id)
		if existing == nil {
			return domain.ErrNotFound
		}
		d.Expenses = append(d.Expenses[:i], d.Expenses[i+1:]...)
		return d.appendChange(entity.EntityExpense, entity.ActionDelete, existing, time.Now())
	})
}
