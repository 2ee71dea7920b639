package repository

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/domain/entity"
)

// Store agrupa los repositorios de todas las entidades más las operaciones
// compuestas que deben ejecutarse como una sola unidad durable. Hay dos
// implementaciones intercambiables con el mismo contrato externo: el backend
// embebido sobre SQLite y el backend de archivo plano JSON.
//
// Todas las mutaciones se serializan (un solo escritor, sin paralelismo
// interno) y responden write-then-acknowledge: si una llamada retorna sin
// error, el dato ya es durable. Las lecturas reflejan solo escrituras
// completadas.
type Store interface {
	Products() ProductRepository
	Sales() SaleRepository
	Expenses() ExpenseRepository
	Capital() CapitalRepository
	Settings() SettingRepository
	Users() UserRepository
	Ledger() PendingChangeRepository

	// Sell operación compuesta atómica: valida stock disponible, decrementa
	// Product.Quantity y crea la Sale (con snapshots de precio y costo) en
	// una sola unidad durable. Si la persistencia falla después del
	// decremento tentativo, el decremento se revierte antes de retornar el
	// error. Con stock insuficiente retorna domain.ErrInsufficientStock sin
	// tocar nada.
	Sell(ctx context.Context, productID int64, quantity int) (*entity.Sale, error)

	// DeleteSale elimina la venta y restaura el stock del producto
	// referenciado (si aún existe) en una sola unidad durable. La Sale en sí
	// nunca se muta: solo se elimina.
	DeleteSale(ctx context.Context, id int64) error

	// DashboardStats lectura derivada sobre el último estado completado.
	DashboardStats(ctx context.Context) (*entity.DashboardStats, error)

	// Snapshot serializa el documento lógico completo (esquema de respaldo).
	Snapshot(ctx context.Context) ([]byte, error)

	// Flush fuerza la escritura durable inmediata del estado actual.
	Flush(ctx context.Context) error

	Close() error
}
