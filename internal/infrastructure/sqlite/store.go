// Package sqlite implementa el Store sobre una base SQLite embebida: el
// backend local primario. Un solo escritor (mutex + una conexión), WAL con
// synchronous=FULL para que cada commit confirmado sea durable, y cada
// mutación de entidad deja su entrada de ledger dentro de la misma
// transacción.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-local/internal/domain"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
	"github.com/jhoicas/PuntoVenta-local/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

var _ repository.Store = (*Store)(nil)

// Store backend embebido.
type Store struct {
	db  *sql.DB
	log *logger.Logger

	// mu serializa las mutaciones: las operaciones del boundary se procesan
	// estrictamente en secuencia dentro del proceso privilegiado.
	mu sync.Mutex
}

// Open crea o abre la base en path y aplica pragmas y esquema. Idempotente.
func Open(path string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("conectar base: %w", err)
	}

	// SQLite admite un solo escritor; una única conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		// FULL: un commit confirmado sobrevive a un corte de energía. Es el
		// contrato write-then-acknowledge del store.
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("aplicar %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar esquema: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// tx ejecuta fn dentro de una transacción serializada con Commit/Rollback.
func (s *Store) tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Products() repository.ProductRepository     { return &productRepo{s} }
func (s *Store) Sales() repository.SaleRepository           { return &saleRepo{s} }
func (s *Store) Expenses() repository.ExpenseRepository     { return &expenseRepo{s} }
func (s *Store) Capital() repository.CapitalRepository      { return &capitalRepo{s} }
func (s *Store) Settings() repository.SettingRepository     { return &settingRepo{s} }
func (s *Store) Users() repository.UserRepository           { return &userRepo{s} }
func (s *Store) Ledger() repository.PendingChangeRepository { return &ledgerRepo{s} }

// Sell decremento de stock + venta + entradas de ledger en una transacción.
// El rollback de la transacción es el rollback del decremento tentativo.
func (s *Store) Sell(ctx context.Context, productID int64, quantity int) (*entity.Sale, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrValidation)
	}
	var created *entity.Sale
	err := s.tx(ctx, func(tx *sql.Tx) error {
		p, err := scanProduct(tx.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, productID))
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if quantity > p.Quantity {
			return domain.ErrInsufficientStock
		}
		now := time.Now()
		p.Quantity -= quantity
		p.UpdatedAt = now
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`,
			p.Quantity, fmtTime(now), p.ID,
		); err != nil {
			return fmt.Errorf("decrementar stock: %w", err)
		}

		qty := decimal.NewFromInt(int64(quantity))
		sale := &entity.Sale{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    quantity,
			Price:       p.SellingPrice,
			Cost:        p.PurchasePrice,
			Total:       p.SellingPrice.Mul(qty),
			Profit:      p.SellingPrice.Sub(p.PurchasePrice).Mul(qty),
			CreatedAt:   now,
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO sales (product_id, product_name, quantity, price, cost, total, profit, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sale.ProductID, sale.ProductName, sale.Quantity,
			sale.Price.String(), sale.Cost.String(), sale.Total.String(), sale.Profit.String(),
			fmtTime(sale.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert sale: %w", err)
		}
		sale.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("id de venta: %w", err)
		}

		if err := appendChangeTx(ctx, tx, entity.EntityProduct, entity.ActionUpdate, p, now); err != nil {
			return err
		}
		if err := appendChangeTx(ctx, tx, entity.EntitySale, entity.ActionCreate, sale, now); err != nil {
			return err
		}
		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteSale elimina la venta y restaura el stock si el producto aún existe.
func (s *Store) DeleteSale(ctx context.Context, id int64) error {
	return s.tx(ctx, func(tx *sql.Tx) error {
		sale, err := scanSale(tx.QueryRowContext(ctx, selectSale+` WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}
		if err := appendChangeTx(ctx, tx, entity.EntitySale, entity.ActionDelete, sale, now); err != nil {
			return err
		}

		p, err := scanProduct(tx.QueryRowContext(ctx, selectProduct+` WHERE id = ?`, sale.ProductID))
		if err != nil {
			return err
		}
		if p == nil {
			return nil // referencia débil: el producto ya no existe
		}
		p.Quantity += sale.Quantity
		p.UpdatedAt = now
		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET quantity = ?, updated_at = ? WHERE id = ?`,
			p.Quantity, fmtTime(now), p.ID,
		); err != nil {
			return fmt.Errorf("restaurar stock: %w", err)
		}
		return appendChangeTx(ctx, tx, entity.EntityProduct, entity.ActionUpdate, p, now)
	})
}

// DashboardStats agrega en SQL; el total de hoy se acota al día calendario
// local, igual que el backend de archivo plano.
func (s *Store) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	stats := &entity.DashboardStats{
		InventoryValue: decimal.Zero,
		TodaySales:     decimal.Zero,
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity <= min_stock), 0) FROM products`,
	).Scan(&stats.TotalProducts, &stats.LowStockCount); err != nil {
		return nil, fmt.Errorf("contar productos: %w", err)
	}

	// Los precios viven como TEXT decimal: las sumas se hacen en Go para no
	// perder precisión en aritmética flotante de SQLite.
	rows, err := s.db.QueryContext(ctx, `SELECT selling_price, quantity FROM products`)
	if err != nil {
		return nil, fmt.Errorf("valor de inventario: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var priceRaw string
		var qty int
		if err := rows.Scan(&priceRaw, &qty); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		price, err := parseDecimal(priceRaw)
		if err != nil {
			return nil, err
		}
		stats.InventoryValue = stats.InventoryValue.Add(price.Mul(decimal.NewFromInt(int64(qty))))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	saleRows, err := s.db.QueryContext(ctx,
		`SELECT total FROM sales WHERE created_at >= ? AND created_at < ?`,
		fmtTime(dayStart), fmtTime(dayEnd),
	)
	if err != nil {
		return nil, fmt.Errorf("ventas de hoy: %w", err)
	}
	defer saleRows.Close()
	for saleRows.Next() {
		var totalRaw string
		if err := saleRows.Scan(&totalRaw); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		total, err := parseDecimal(totalRaw)
		if err != nil {
			return nil, err
		}
		stats.TodaySales = stats.TodaySales.Add(total)
	}
	return stats, saleRows.Err()
}

// Snapshot materializa el documento lógico completo, el mismo esquema que
// persiste el backend de archivo plano y que usan los respaldos.
func (s *Store) Snapshot(ctx context.Context) ([]byte, error) {
	snap := entity.NewSnapshot()
	var err error

	if snap.Products, err = s.Products().List(ctx); err != nil {
		return nil, err
	}
	if snap.Sales, err = s.Sales().List(ctx); err != nil {
		return nil, err
	}
	if snap.Expenses, err = s.Expenses().List(ctx); err != nil {
		return nil, err
	}
	if snap.Capital, err = s.Capital().List(ctx); err != nil {
		return nil, err
	}
	if snap.Settings, err = s.Settings().GetAll(ctx); err != nil {
		return nil, err
	}
	if snap.PendingChanges, err = s.allChanges(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = s.Users().List(ctx); err != nil {
		return nil, err
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializar snapshot: %w", err)
	}
	return raw, nil
}

// Flush fuerza un checkpoint del WAL hacia la base principal.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
