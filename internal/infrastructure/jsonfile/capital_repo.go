package jsonfile

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.CapitalRepository = (*capitalRepo)(nil)

type capitalRepo struct {
	s *Store
}

func (r *capitalRepo) Create(ctx context.Context, tx *entity.CapitalTransaction) error {
	return r.s.mutate(func(d *document) error {
		now := time.Now()
		tx.ID = d.nextID("capital_transaction")
		tx.CreatedAt = now
		cp := *tx
		d.Capital = append(d.Capital, &cp)
		return d.appendChange(entity.EntityCapital, entity.ActionCreate, &cp, now)
	})
}

func (r *capitalRepo) List(ctx context.Context) ([]*entity.CapitalTransaction, error) {
	var out []*entity.CapitalTransaction
	r.s.read(func(d *document) {
		out = make([]*entity.CapitalTransaction, 0, len(d.Capital))
		for _, tx := range d.Capital {
			cp := *tx
			out = append(out, &cp)
		}
	})
	return out, nil
}
