package sqlite

import (
	"context"
	"database/sql"
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

func (r *productRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		now := time.Now()
		product.CreatedAt = now
		product.UpdatedAt = now
		res, err := tx.ExecContext(ctx, `
			INSERT INTO products (name, barcode, purchase_price, selling_price, quantity, min_stock, category, supplier, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			product.Name, product.Barcode,
			product.PurchasePrice.String(), product.SellingPrice.String(),
			product.Quantity, product.MinStock, product.Category, product.Supplier,
			fmtTime(now), fmtTime(now),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: barcode %q ya existe", domain.ErrDuplicate, product.Barcode)
			}
			return fmt.Errorf("insert product: %w", err)
		}
		if product.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("id de producto: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityProduct, entity.ActionCreate, product, now)
	})
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return scanProduct(r.s.db.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, id))
}

func (r *productRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return scanProduct(r.s.db.QueryRowContext(ctx, selectProduct+` WHERE barcode = ?`, barcode))
}

func (r *productRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.s.db.QueryContext(ctx, selectProduct+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Search filtra en Go con folding de acentos: LIKE de SQLite solo pliega
// mayúsculas ASCII, y ambos backends deben devolver las mismas filas.
func (r *productRepo) Search(ctx context.Context, query string) ([]*entity.Product, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*entity.Product{}
	for _, p := range all {
		if textutil.ContainsFold(p.Name, query) ||
			textutil.ContainsFold(p.Barcode, query) ||
			textutil.ContainsFold(p.Category, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, product *entity.Product) error {
	if product.Quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativo", domain.ErrValidation)
	}
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		existing, err := scanProduct(tx.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, product.ID))
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, `
			UPDATE products SET name = ?, barcode = ?, purchase_price = ?, selling_price = ?,
				quantity = ?, min_stock = ?, category = ?, supplier = ?, updated_at = ?
			WHERE id = ?`,
			product.Name, product.Barcode,
			product.PurchasePrice.String(), product.SellingPrice.String(),
			product.Quantity, product.MinStock, product.Category, product.Supplier,
			fmtTime(now), product.ID,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: barcode %q ya existe", domain.ErrDuplicate, product.Barcode)
			}
			return fmt.Errorf("update product: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityProduct, entity.ActionUpdate, product, now)
	})
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.s.tx(ctx, func(tx *sql.Tx) error {
		existing, err := scanProduct(tx.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityProduct, entity.ActionDelete, existing, time.Now())
	})
}
