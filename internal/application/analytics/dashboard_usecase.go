package analytics

import (
	"context"
	"time"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/application/inventory"
	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// Serie de producción y conteos recientes que muestra el tablero.
const (
	trendDays        = 7
	recentCountLimit = 5
)

// DashboardUseCase arma los indicadores del tablero de planta: totales del
// día, pedidos pendientes, serie de producción y conteos físicos recientes.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetDashboard calcula los indicadores con la fecha actual.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	today := time.Now()

	production, err := uc.repo.TotalByCategoryOn(today, entity.CategoryProduction)
	if err != nil {
		return nil, err
	}
	shipment, err := uc.repo.TotalByCategoryOn(today, entity.CategoryShipment)
	if err != nil {
		return nil, err
	}
	pending, err := uc.repo.PendingOrderCount()
	if err != nil {
		return nil, err
	}
	trend, err := uc.repo.DailyProductionTotals(trendDays)
	if err != nil {
		return nil, err
	}
	counts, err := uc.repo.RecentStockCounts(recentCountLimit)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardDTO{
		TodayProduction: production,
		// El despacho se registra con signo negativo; el tablero lo
		// muestra como salida del día en positivo.
		TodayShipment: shipment.Neg(),
		PendingOrders: pending,
	}
	for _, t := range trend {
		out.ProductionTrend = append(out.ProductionTrend, dto.DailyTotalDTO{Date: t.Date, Quantity: t.Quantity})
	}
	for _, e := range counts {
		out.RecentStockCounts = append(out.RecentStockCounts, inventory.ToMovementDTO(e))
	}
	return out, nil
}
