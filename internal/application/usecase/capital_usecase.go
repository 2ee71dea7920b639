package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// CapitalUseCase casos de uso de movimientos de capital.
type CapitalUseCase struct {
	repo repository.CapitalRepository
}

// NewCapitalUseCase construye el caso de uso.
func NewCapitalUseCase(repo repository.CapitalRepository) *CapitalUseCase {
	return &CapitalUseCase{repo: repo}
}

// Create registra un movimiento. Amount con signo: positivo inyección,
// negativo retiro. Cero se rechaza.
func (uc *CapitalUseCase) Create(ctx context.Context, in dto.CreateCapitalRequest) (*dto.CapitalResponse, error) {
	if in.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount no puede ser cero", domain.ErrValidation)
	}
	tx := &entity.CapitalTransaction{
		Amount: in.Amount,
		Reason: in.Reason,
	}
	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return toCapitalResponse(tx), nil
}

// List lista todos los movimientos de capital.
func (uc *CapitalUseCase) List(ctx context.Context) ([]*dto.CapitalResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CapitalResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, toCapitalResponse(tx))
	}
	return out, nil
}

// Balance suma los montos con signo de todos los movimientos.
func (uc *CapitalUseCase) Balance(ctx context.Context) (decimal.Decimal, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, tx := range list {
		total = total.Add(tx.Amount)
	}
	return total, nil
}

func toCapitalResponse(tx *entity.CapitalTransaction) *dto.CapitalResponse {
	if tx == nil {
		return nil
	}
	return &dto.CapitalResponse{
		ID:        tx.ID,
		Amount:    tx.Amount,
		Reason:    tx.Reason,
		CreatedAt: tx.CreatedAt,
	}
}
