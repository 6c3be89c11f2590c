package repository

import "github.com/chamstek/factory-ops/internal/domain/entity"

// BOMRepository define el puerto de lectura de la lista de materiales.
type BOMRepository interface {
	// ListByProduct devuelve las líneas BOM del producto en su orden de
	// definición. Si subType no es vacío, filtra a las filas de esa
	// subvariante más las filas sin subvariante. Producto sin receta
	// devuelve lista vacía, no error.
	ListByProduct(productCode, subType string) ([]entity.BOMLine, error)
}
