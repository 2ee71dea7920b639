package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse resumen del negocio para la pantalla principal.
type DashboardStatsResponse struct {
	TotalProducts  int             `json:"total_products"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStockCount  int             `json:"low_stock_count"`
	TodaySales     decimal.Decimal `json:"today_sales"`
}
