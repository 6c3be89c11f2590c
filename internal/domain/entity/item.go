package entity

// Categorías del catálogo de ítems.
const (
	ItemCategoryRaw      = "RAW"      // materia prima
	ItemCategorySemi     = "SEMI"     // semielaborado
	ItemCategoryProduct  = "PRODUCT"  // producto
	ItemCategoryFinished = "FINISHED" // producto terminado
)

// Item representa un ítem del catálogo maestro. Los campos descriptivos
// (Spec, SubType, Color, Unit) se copian a los registros de stock y al log
// de movimientos en el momento de cada operación.
type Item struct {
	Code     string
	Name     string
	Spec     string
	SubType  string
	Color    string
	Unit     string
	Category string
}
