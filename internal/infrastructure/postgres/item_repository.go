package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del catálogo de ítems sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// GetByCode devuelve nil sin error cuando el código no está en el catálogo;
// la validación de existencia la decide el caso de uso.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(context.Background(), `
		SELECT code, name, spec, sub_type, color, unit, category
		FROM items
		WHERE code = $1`, code).
		Scan(&it.Code, &it.Name, &it.Spec, &it.SubType, &it.Color, &it.Unit, &it.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepo) List(category string) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT code, name, spec, sub_type, color, unit, category
		FROM items
		WHERE $1 = '' OR category = $1
		ORDER BY code`, category)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.Code, &it.Name, &it.Spec, &it.SubType,
			&it.Color, &it.Unit, &it.Category); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
