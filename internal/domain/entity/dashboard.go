package entity

import "github.com/shopspring/decimal"

// DashboardStats resumen derivado del estado del store. TodaySales cubre el
// día calendario actual en hora local.
type DashboardStats struct {
	TotalProducts  int             `json:"total_products"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`
	TodaySales     decimal.Decimal `json:"today_sales"`
}
