package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock umbral de stock mínimo cuando el producto no define uno.
const DefaultMinStock = 3

// Product representa un producto del inventario de la tienda.
// Quantity nunca es negativo: una venta que lo dejaría bajo cero se rechaza.
// Barcode es opcional pero único cuando no está vacío.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	Category      string          `json:"category,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LowStock indica si el producto está en o bajo su umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinStock
}
