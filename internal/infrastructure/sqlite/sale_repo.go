package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

var _ repository.SaleRepository = (*saleRepo)(nil)

type saleRepo struct {
	s *Store
}

func (r *saleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	return scanSale(r.s.db.QueryRowContext(ctx, selectSale+` WHERE id = ?`, id))
}

func (r *saleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.s.db.QueryContext(ctx, selectSale+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := []*entity.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}
