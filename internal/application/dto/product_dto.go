package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. MinStock cero u omitido toma el
// default del dominio.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes se
// aplican sobre el registro existente y se revalidan los invariantes.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Barcode       *string          `json:"barcode"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	Quantity      *int             `json:"quantity"`
	MinStock      *int             `json:"min_stock"`
	Category      *string          `json:"category"`
	Supplier      *string          `json:"supplier"`
}

// ProductResponse representación de producto hacia la UI.
type ProductResponse struct {
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
