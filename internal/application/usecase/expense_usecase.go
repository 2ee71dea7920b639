package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// ExpenseUseCase casos de uso de gastos operativos.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto. El monto debe ser positivo.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description requerida", domain.ErrValidation)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrValidation)
	}
	expense := &entity.Expense{
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// List lista todos los gastos.
func (uc *ExpenseUseCase) List(ctx context.Context) ([]*dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toExpenseResponse(e))
	}
	return out, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id int64) error {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		CreatedAt:   e.CreatedAt,
	}
}
