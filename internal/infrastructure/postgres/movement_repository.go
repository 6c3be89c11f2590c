package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx).
type MovementLogRepo struct {
	q Querier
}

// NewMovementLogRepository construye el adaptador. Pasar pool o tx
// (Querier).
func NewMovementLogRepository(q Querier) *MovementLogRepo {
	return &MovementLogRepo{q: q}
}

const movementColumns = `id, batch_id, occurred_at, factory, category, code, name, spec, sub_type, color, quantity, note, customer, production_line, created_at`

// Append persiste una entrada del log.
func (r *MovementLogRepo) Append(entry *entity.MovementLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_logs (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.BatchID, entry.OccurredAt, entry.Factory, entry.Category,
		entry.Code, entry.Name, entry.Spec, entry.SubType, entry.Color,
		entry.Quantity, entry.Note, entry.Customer, entry.ProductionLine, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement log: %w", err)
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.MovementLogEntry, error) {
	var e entity.MovementLogEntry
	err := row.Scan(&e.ID, &e.BatchID, &e.OccurredAt, &e.Factory, &e.Category,
		&e.Code, &e.Name, &e.Spec, &e.SubType, &e.Color,
		&e.Quantity, &e.Note, &e.Customer, &e.ProductionLine, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID obtiene una entrada por id; nil si no existe.
func (r *MovementLogRepo) GetByID(id string) (*entity.MovementLogEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_logs WHERE id = $1`
	e, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return e, nil
}

// ListByBatch devuelve todas las entradas de un lote (producción + sus
// descuentos AUTO_CONSUMPTION) en orden de creación.
func (r *MovementLogRepo) ListByBatch(batchID string) ([]*entity.MovementLogEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_logs WHERE batch_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list by batch: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// DeleteByBatch borra todas las entradas de un lote (reversa de
// producción).
func (r *MovementLogRepo) DeleteByBatch(batchID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movement_logs WHERE batch_id = $1`, batchID)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// List busca entradas según el filtro (fábrica, categoría, línea, código o
// nombre, rango de fechas), más recientes primero.
func (r *MovementLogRepo) List(f repository.MovementFilter) ([]*entity.MovementLogEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM movement_logs WHERE 1=1`
	var args []any
	pos := 1
	add := func(clause string, val any) {
		query += fmt.Sprintf(clause, pos)
		args = append(args, val)
		pos++
	}
	if f.Factory != "" {
		add(" AND factory = $%d", f.Factory)
	}
	if f.Category != "" {
		add(" AND category = $%d", f.Category)
	}
	if f.Line != "" {
		add(" AND production_line = $%d", f.Line)
	}
	if f.Code != "" {
		query += fmt.Sprintf(" AND (code ILIKE '%%' || $%d || '%%' OR name ILIKE '%%' || $%d || '%%')", pos, pos)
		args = append(args, f.Code)
		pos++
	}
	if f.From != nil {
		add(" AND occurred_at >= $%d", *f.From)
	}
	if f.To != nil {
		add(" AND occurred_at <= $%d", *f.To)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.MovementLogEntry, error) {
	var list []*entity.MovementLogEntry
	for rows.Next() {
		var e entity.MovementLogEntry
		if err := rows.Scan(&e.ID, &e.BatchID, &e.OccurredAt, &e.Factory, &e.Category,
			&e.Code, &e.Name, &e.Spec, &e.SubType, &e.Color,
			&e.Quantity, &e.Note, &e.Customer, &e.ProductionLine, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
