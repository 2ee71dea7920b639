package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// SaleRepository puerto de lectura para Sale. Las ventas se crean solo a
// través de Store.Sell y se eliminan solo a través de Store.DeleteSale, que
// revierte el efecto sobre el stock en la misma unidad durable.
type SaleRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context) ([]*entity.Sale, error)
}
