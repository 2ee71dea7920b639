package jsonfile

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.SaleRepository = (*saleRepo)(nil)

type saleRepo struct {
	s *Store
}

func (r *saleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	r.s.read(func(d *document) {
		if _, sale := d.findSale(id); sale != nil {
			cp := *sale
			out = &cp
		}
	})
	return out, nil
}

func (r *saleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	var out []*entity.Sale
	r.s.read(func(d *document) {
		out = make([]*entity.Sale, 0, len(d.Sales))
		for _, sale := range d.Sales {
			cp := *sale
			out = append(out, &cp)
		}
	})
	return out, nil
}
