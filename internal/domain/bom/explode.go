// Package bom implementa la explosión de la lista de materiales (servicio
// de dominio puro, análogo a un paso de MRP de un solo nivel).
package bom

import (
	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/domain/entity"
)

// Requirement es la cantidad de un material a descontar por una producción.
type Requirement struct {
	MaterialCode string
	Quantity     decimal.Decimal // producedQty × QtyPerUnit
}

// Explode calcula los requerimientos de materiales para producir
// producedQty unidades, deduplicando líneas por código de material: gana la
// primera aparición. La deduplicación protege contra filas BOM duplicadas
// en el origen; las duplicadas posteriores se ignoran en silencio.
// Cantidad cero o negativa degrada sin error: el requerimiento se anula o
// invierte de signo.
func Explode(lines []entity.BOMLine, producedQty decimal.Decimal) []Requirement {
	seen := make(map[string]bool, len(lines))
	var out []Requirement
	for _, line := range lines {
		if seen[line.MaterialCode] {
			continue
		}
		seen[line.MaterialCode] = true
		out = append(out, Requirement{
			MaterialCode: line.MaterialCode,
			Quantity:     producedQty.Mul(line.QtyPerUnit),
		})
	}
	return out
}
