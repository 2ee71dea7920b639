package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id int64) (*entity.Expense, error)
	List(ctx context.Context) ([]*entity.Expense, error)
	Delete(ctx context.Context, id int64) error
}
