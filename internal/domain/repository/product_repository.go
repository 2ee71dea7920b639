package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe; los casos de
// uso traducen eso a domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// Search hace match por substring, insensible a mayúsculas y acentos,
	// contra name, barcode y category (OR). Orden determinista por ID.
	Search(ctx context.Context, query string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}
