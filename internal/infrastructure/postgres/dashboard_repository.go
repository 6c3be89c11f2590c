package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados de solo lectura para el tablero operativo.
// Consulta directamente sobre el pool, fuera de transacciones.
type DashboardRepo struct {
	q Querier
}

func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// TotalByCategoryOn suma las cantidades (con signo) de una categoría en el
// día calendario de day. Sin movimientos devuelve cero.
func (r *DashboardRepo) TotalByCategoryOn(day time.Time, category string) (decimal.Decimal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantity), 0)
		FROM movement_logs
		WHERE category = $1 AND occurred_at >= $2 AND occurred_at < $3`,
		category, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total by category: %w", err)
	}
	return total, nil
}

func (r *DashboardRepo) PendingOrderCount() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `
		SELECT COUNT(DISTINCT order_id)
		FROM order_lines
		WHERE status = $1`, entity.OrderStatusPending).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("pending order count: %w", err)
	}
	return n, nil
}

// DailyProductionTotals serie de producción diaria de los últimos days días
// (incluye el día actual), ordenada por fecha ascendente. Los días sin
// producción no aparecen en la serie.
func (r *DashboardRepo) DailyProductionTotals(days int) ([]repository.DailyTotal, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -(days - 1))
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())

	rows, err := r.q.Query(context.Background(), `
		SELECT to_char(occurred_at::date, 'YYYY-MM-DD') AS day,
		       SUM(quantity)
		FROM movement_logs
		WHERE category = $1 AND occurred_at >= $2
		GROUP BY day
		ORDER BY day`, entity.CategoryProduction, since)
	if err != nil {
		return nil, fmt.Errorf("daily production totals: %w", err)
	}
	defer rows.Close()

	var list []repository.DailyTotal
	for rows.Next() {
		var t repository.DailyTotal
		if err := rows.Scan(&t.Date, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *DashboardRepo) RecentStockCounts(limit int) ([]*entity.MovementLogEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT `+movementColumns+`
		FROM movement_logs
		WHERE category = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2`, entity.CategoryStockCount, limit)
	if err != nil {
		return nil, fmt.Errorf("recent stock counts: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}
