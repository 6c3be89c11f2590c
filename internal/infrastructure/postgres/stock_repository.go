package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx
// (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `factory, code, name, spec, sub_type, color, unit, quantity, updated_at`

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(&s.Factory, &s.Code, &s.Name, &s.Spec, &s.SubType, &s.Color, &s.Unit, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el stock vigente de un ítem en una fábrica. Si no existe
// devuelve un registro nuevo con cantidad cero.
func (r *StockRepo) Get(factory, code string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE factory = $1 AND code = $2`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, factory, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{Factory: factory, Code: code, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si
// no existe devuelve un registro nuevo con cantidad cero, listo para crear
// con Upsert.
func (r *StockRepo) GetForUpdate(factory, code string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE factory = $1 AND code = $2 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, factory, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{Factory: factory, Code: code, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza el registro de stock (por fábrica y código).
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (factory, code, name, spec, sub_type, color, unit, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (factory, code)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.Factory, record.Code, record.Name, record.Spec, record.SubType,
		record.Color, record.Unit, record.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List devuelve el stock filtrado por fábrica y por categorías de ítem del
// catálogo (join con items; vacío = sin filtro).
func (r *StockRepo) List(factory string, categories []string) ([]*entity.StockRecord, error) {
	query := `
		SELECT s.factory, s.code, s.name, s.spec, s.sub_type, s.color, s.unit, s.quantity, s.updated_at
		FROM stock_records s
		LEFT JOIN items i ON i.code = s.code
		WHERE ($1 = '' OR s.factory = $1)
		  AND (cardinality($2::text[]) = 0 OR i.category = ANY($2::text[]))
		ORDER BY s.factory, s.code`
	if categories == nil {
		categories = []string{}
	}
	rows, err := r.q.Query(context.Background(), query, factory, categories)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.Factory, &s.Code, &s.Name, &s.Spec, &s.SubType,
			&s.Color, &s.Unit, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
