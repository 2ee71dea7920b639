package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// Columnas canónicas por tabla; los scans dependen de este orden.
const (
	selectProduct = `SELECT id, name, barcode, purchase_price, selling_price, quantity, min_stock, category, supplier, created_at, updated_at FROM products`
	selectSale    = `SELECT id, product_id, product_name, quantity, price, cost, total, profit, created_at FROM sales`
	selectExpense = `SELECT id, amount, description, category, created_at FROM expenses`
	selectCapital = `SELECT id, amount, reason, created_at FROM capital_transactions`
	selectChange  = `SELECT id, entity_type, action, payload, created_at, synced_at FROM pending_changes`
	selectUser    = `SELECT id, username, password_hash, full_name, role, is_active, last_login, created_at FROM users`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsear tiempo %q: %w", s, err)
	}
	return t.Local(), nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsear decimal %q: %w", s, err)
	}
	return d, nil
}

// isUniqueViolation verifica si un error es violación de constraint UNIQUE.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// appendChangeTx inserta la entrada de ledger dentro de la transacción de la
// mutación que la origina: una sola unidad durable para ambas.
func appendChangeTx(ctx context.Context, tx *sql.Tx, entityType, action string, payload any, now time.Time) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar snapshot para ledger: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pending_changes (entity_type, action, payload, created_at, synced_at)
		VALUES (?, ?, ?, ?, NULL)`,
		entityType, action, string(raw), fmtTime(now),
	); err != nil {
		return fmt.Errorf("append ledger: %w", err)
	}
	return nil
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var purchaseRaw, sellingRaw, createdRaw, updatedRaw string
	err := row.Scan(&p.ID, &p.Name, &p.Barcode, &purchaseRaw, &sellingRaw,
		&p.Quantity, &p.MinStock, &p.Category, &p.Supplier, &createdRaw, &updatedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if p.PurchasePrice, err = parseDecimal(purchaseRaw); err != nil {
		return nil, err
	}
	if p.SellingPrice, err = parseDecimal(sellingRaw); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdRaw); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedRaw); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanSale(row rowScanner) (*entity.Sale, error) {
	var s entity.Sale
	var priceRaw, costRaw, totalRaw, profitRaw, createdRaw string
	err := row.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity,
		&priceRaw, &costRaw, &totalRaw, &profitRaw, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if s.Price, err = parseDecimal(priceRaw); err != nil {
		return nil, err
	}
	if s.Cost, err = parseDecimal(costRaw); err != nil {
		return nil, err
	}
	if s.Total, err = parseDecimal(totalRaw); err != nil {
		return nil, err
	}
	if s.Profit, err = parseDecimal(profitRaw); err != nil {
		return nil, err
	}
	if s.CreatedAt, err = parseTime(createdRaw); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanExpense(row rowScanner) (*entity.Expense, error) {
	var e entity.Expense
	var amountRaw, createdRaw string
	err := row.Scan(&e.ID, &amountRaw, &e.Description, &e.Category, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	if e.Amount, err = parseDecimal(amountRaw); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdRaw); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanCapital(row rowScanner) (*entity.CapitalTransaction, error) {
	var c entity.CapitalTransaction
	var amountRaw, createdRaw string
	err := row.Scan(&c.ID, &amountRaw, &c.Reason, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan capital transaction: %w", err)
	}
	if c.Amount, err = parseDecimal(amountRaw); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdRaw); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanChange(row rowScanner) (*entity.PendingChange, error) {
	var ch entity.PendingChange
	var payloadRaw, createdRaw string
	var syncedRaw sql.NullString
	err := row.Scan(&ch.ID, &ch.EntityType, &ch.Action, &payloadRaw, &createdRaw, &syncedRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan pending change: %w", err)
	}
	ch.Payload = json.RawMessage(payloadRaw)
	if ch.CreatedAt, err = parseTime(createdRaw); err != nil {
		return nil, err
	}
	if syncedRaw.Valid {
		t, err := parseTime(syncedRaw.String)
		if err != nil {
			return nil, err
		}
		ch.SyncedAt = &t
	}
	return &ch, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var isActive int
	var lastLoginRaw sql.NullString
	var createdRaw string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role,
		&isActive, &lastLoginRaw, &createdRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.IsActive = isActive != 0
	if lastLoginRaw.Valid {
		t, err := parseTime(lastLoginRaw.String)
		if err != nil {
			return nil, err
		}
		u.LastLogin = &t
	}
	if u.CreatedAt, err = parseTime(createdRaw); err != nil {
		return nil, err
	}
	return &u, nil
}
