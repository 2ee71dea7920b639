package jsonfile

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/pkg/textutil"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	s *Store
}

// Create asigna ID monotónico, estampa tiempos, persiste y deja la entrada
// en el ledger en la misma unidad durable.
func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.s.mutate(func(d *document) error {
		if product.Barcode != "" {
			for _, p := range d.Products {
				if p.Barcode == product.Barcode {
					return fmt.Errorf("%w: barcode %q ya existe", domain.ErrDuplicate, product.Barcode)
				}
			}
		}
		now := time.Now()
		product.ID = d.nextID("product")
		product.CreatedAt = now
		product.UpdatedAt = now
		cp := *product
		d.Products = append(d.Products, &cp)
		return d.appendChange(entity.EntityProduct, entity.ActionCreate, &cp, now)
	})
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(func(d *document) {
		if _, p := d.findProduct(id); p != nil {
			cp := *p
			out = &cp
		}
	})
	return out, nil
}

func (r *productRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	var out *entity.Product
	r.s.read(func(d *document) {
		for _, p := range d.Products {
			if p.Barcode == barcode {
				cp := *p
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *productRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.s.read(func(d *document) {
		out = make([]*entity.Product, 0, len(d.Products))
		for _, p := range d.Products {
			cp := *p
			out = append(out, &cp)
		}
	})
	return out, nil
}

// Search match por substring insensible a mayúsculas y acentos contra name,
// barcode y category (OR). Mismo criterio en ambos backends: el folding se
// hace en Go, no en el motor de almacenamiento.
func (r *productRepo) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	var out []*entity.Product
	r.s.read(func(d *document) {
		out = []*entity.Product{}
		for _, p := range d.Products {
			if textutil.ContainsFold(p.Name, query) ||
				textutil.ContainsFold(p.Barcode, query) ||
				textutil.ContainsFold(p.Category, query) {
				cp := *p
				out = append(out, &cp)
			}
		}
	})
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.s.mutate(func(d *document) error {
		i, existing := d.findProduct(product.ID)
		if existing == nil {
			return domain.ErrNotFound
		}
		if product.Barcode != "" {
			for _, p := range d.Products {
				if p.ID != product.ID && p.Barcode == product.Barcode {
					return fmt.Errorf("%w: barcode %q ya existe", domain.ErrDuplicate, product.Barcode)
				}
			}
		}
		if product.Quantity < 0 {
			return fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrValidation)
		}
		now := time.Now()
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = now
		cp := *product
		d.Products[i] = &cp
		return d.appendChange(entity.EntityProduct, entity.ActionUpdate, &cp, now)
	})
}

// Delete elimina el producto. Las ventas históricas que lo referencian no se
// alteran: conservan su snapshot de nombre y precios.
func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.s.mutate(func(d *document) error {
		i, existing := d.findProduct(id)
		if existing == nil {
			return domain.ErrNotFound
		}
		d.Products = append(d.Products[:i], d.Products[i+1:]...)
		return d.appendChange(entity.EntityProduct, entity.ActionDelete, existing, time.Now())
	})
}
