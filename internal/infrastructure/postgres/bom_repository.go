package postgres

import (
	"context"
	"fmt"

	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de lectura de la lista de materiales sobre
// PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListByProduct devuelve las líneas BOM del producto en su orden de
// definición (id). Con subType no vacío filtra a esa subvariante más las
// filas sin subvariante. La deduplicación por material es responsabilidad
// del dominio, no del repositorio.
func (r *BOMRepo) ListByProduct(productCode, subType string) ([]entity.BOMLine, error) {
	query := `
		SELECT product_code, material_code, sub_type, qty_per_unit
		FROM bom_lines
		WHERE product_code = $1
		  AND ($2 = '' OR sub_type = '' OR sub_type = $2)
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, productCode, subType)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()

	var list []entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ProductCode, &l.MaterialCode, &l.SubType, &l.QtyPerUnit); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
