package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de movimiento de inventario. La cantidad registrada lleva el
// signo de la categoría: las aditivas suman stock, las sustractivas restan.
const (
	CategoryReceipt         = "RECEIPT"          // entrada de materia prima
	CategoryProduction      = "PRODUCTION"       // producción registrada
	CategoryStockCount      = "STOCK_COUNT"      // ajuste por inventario físico
	CategoryAutoConsumption = "AUTO_CONSUMPTION" // descuento BOM generado por el sistema
	CategoryShipment        = "SHIPMENT"         // salida por despacho de pedido
	CategoryShipmentCancel  = "SHIPMENT_CANCEL"  // reversa de un despacho
)

// MovementLogEntry es una entrada inmutable del log de movimientos (audit
// trail). Cada entrada provoca exactamente una mutación del StockRecord
// correspondiente.
//
// BatchID agrupa una entrada de producción con sus descuentos BOM
// (AUTO_CONSUMPTION): la reversa de una producción es una búsqueda exacta
// por BatchID, no una correlación por fecha+texto.
type MovementLogEntry struct {
	ID             string
	BatchID        string
	OccurredAt     time.Time
	Factory        string
	Category       string
	Code           string
	Name           string
	Spec           string
	SubType        string
	Color          string
	Quantity       decimal.Decimal // con signo
	Note           string
	Customer       string // solo SHIPMENT
	ProductionLine string // solo PRODUCTION
	CreatedAt      time.Time
}
