package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// SaleUseCase casos de uso de ventas. La creación pasa siempre por
// Store.Sell, que valida y decrementa stock en la misma unidad durable.
type SaleUseCase struct {
	store repository.Store
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(store repository.Store) *SaleUseCase {
	return &SaleUseCase{store: store}
}

// Sell vende quantity unidades de un producto. Con stock insuficiente
// retorna domain.ErrInsufficientStock y no muta nada.
func (uc *SaleUseCase) Sell(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser positivo", domain.ErrValidation)
	}
	sale, err := uc.store.Sell(ctx, in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// GetByID obtiene una venta por ID.
func (uc *SaleUseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.store.Sales().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// List lista todas las ventas.
func (uc *SaleUseCase) List(ctx context.Context) ([]*dto.SaleResponse, error) {
	list, err := uc.store.Sales().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// Delete elimina una venta y restaura el stock del producto si aún existe.
func (uc *SaleUseCase) Delete(ctx context.Context, id int64) error {
	return uc.store.DeleteSale(ctx, id)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Cost:        s.Cost,
		Total:       s.Total,
		Profit:      s.Profit,
		CreatedAt:   s.CreatedAt,
	}
}
