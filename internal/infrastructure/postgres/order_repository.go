package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `order_id, order_date, customer, code, name, sub_type,
	quantity, pallet_number, status, remark, lot_number`

// OrderRepo implementación del puerto de pedidos sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) CreateLines(lines []*entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, l := range lines {
		_, err := r.q.Exec(context.Background(), query,
			l.OrderID, l.OrderDate, l.Customer, l.Code, l.Name, l.SubType,
			l.Quantity, l.PalletNumber, l.Status, l.Remark, l.LotNumber)
		if err != nil {
			// Dos confirmaciones en el mismo minuto generan el mismo
			// order_id; la PK lo rechaza.
			if isUniqueViolation(err) {
				return fmt.Errorf("insert order line: %w", domain.ErrConflict)
			}
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) ListByOrder(orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM order_lines
		WHERE order_id = $1
		ORDER BY pallet_number, code`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	return collectOrderLines(rows)
}

// ReplaceLines borra y reinserta en bloque; pensado para ejecutarse dentro
// de una transacción.
func (r *OrderRepo) ReplaceLines(orderID string, lines []*entity.OrderLine) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	return r.CreateLines(lines)
}

func (r *OrderRepo) Delete(orderID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM order_lines WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE order_lines SET status = $2 WHERE order_id = $1`, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *OrderRepo) SetLot(orderID string, palletNumber int, code, lot string) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE order_lines SET lot_number = $4
		WHERE order_id = $1 AND pallet_number = $2 AND code = $3`,
		orderID, palletNumber, code, lot)
	if err != nil {
		return fmt.Errorf("set lot: %w", err)
	}
	return nil
}

func (r *OrderRepo) Search(filter repository.OrderSearch) ([]*entity.OrderLine, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Lot != "" {
		add("lot_number ILIKE $%d", "%"+filter.Lot+"%")
	}
	if filter.Customer != "" {
		add("customer = $%d", filter.Customer)
	}
	if filter.Code != "" {
		add("code = $%d", filter.Code)
	}
	if filter.From != nil {
		add("order_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("order_date < $%d", *filter.To)
	}
	if filter.CompletedOnly {
		add("status = $%d", entity.OrderStatusComplete)
	}

	query := `SELECT ` + orderColumns + ` FROM order_lines`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY order_date DESC, order_id, pallet_number"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search order lines: %w", err)
	}
	defer rows.Close()
	return collectOrderLines(rows)
}

func collectOrderLines(rows pgx.Rows) ([]*entity.OrderLine, error) {
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.OrderID, &l.OrderDate, &l.Customer, &l.Code,
			&l.Name, &l.SubType, &l.Quantity, &l.PalletNumber, &l.Status,
			&l.Remark, &l.LotNumber); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
