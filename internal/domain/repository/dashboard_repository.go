package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/domain/entity"
)

// DailyTotal es el total de una categoría de movimiento en un día.
type DailyTotal struct {
	Date     string // YYYY-MM-DD
	Quantity decimal.Decimal
}

// DashboardRepository define el puerto de agregados para el tablero.
type DashboardRepository interface {
	// TotalByCategoryOn suma las cantidades de una categoría en un día.
	TotalByCategoryOn(day time.Time, category string) (decimal.Decimal, error)
	PendingOrderCount() (int, error)
	// DailyProductionTotals devuelve la serie de producción diaria de los
	// últimos days días, ordenada por fecha ascendente.
	DailyProductionTotals(days int) ([]DailyTotal, error)
	RecentStockCounts(limit int) ([]*entity.MovementLogEntry, error)
}
