package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest la operación "vender": las ventas solo se crean por esta
// vía, nunca se editan. Precio y costo se toman como snapshot del producto.
type CreateSaleRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// SaleResponse representación de venta hacia la UI.
type SaleResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Total       decimal.Decimal `json:"total"`
	Profit      decimal.Decimal `json:"profit"`
	CreatedAt   time.Time       `json:"created_at"`
}
