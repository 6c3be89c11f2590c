package entity

import "github.com/shopspring/decimal"

// BOMLine es una línea de la lista de materiales: cantidad de material
// requerida por unidad de producto. SubType vacío aplica a cualquier
// subvariante del producto; un mismo código de producto puede tener recetas
// distintas según SubType (color de compuesto, forma de pellet, etc.).
type BOMLine struct {
	ProductCode  string
	MaterialCode string
	SubType      string
	QtyPerUnit   decimal.Decimal
}
