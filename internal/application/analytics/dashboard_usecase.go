package analytics

import (
	"context"

	"github.com/jhoicas/PuntoVenta-local/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-local/internal/domain/repository"
)

// DashboardUseCase métricas agregadas para la pantalla principal. El cálculo
// vive en el backend, que lee sobre su último estado completado.
type DashboardUseCase struct {
	store repository.Store
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store repository.Store) *DashboardUseCase {
	return &DashboardUseCase{store: store}
}

// Stats retorna los contadores y totales del resumen: productos totales,
// valor del inventario a precio de venta, productos en stock bajo y ventas
// del día calendario actual.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats, err := uc.store.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		TotalProducts:  stats.TotalProducts,
		InventoryValue: stats.InventoryValue,
		LowStockCount:  stats.LowStockCount,
		TodaySales:     stats.TodaySales,
	}, nil
}
