package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. El estado vive en cada línea y se muta en bloque
// por pedido completo.
const (
	OrderStatusPending  = "PENDING"  // preparado, pendiente de despacho
	OrderStatusComplete = "COMPLETE" // despachado
)

// OrderLine es una línea de pedido ya particionada en palés: la carga de un
// ítem sobre un palé concreto. Un pedido es el conjunto de líneas que
// comparten OrderID. Los números de palé son 1-based y contiguos dentro del
// pedido; los asigna el particionador al confirmar (o reasigna un re-split).
// El número de LOT lo asigna un flujo posterior, independiente del
// particionado.
type OrderLine struct {
	OrderID      string
	OrderDate    time.Time
	Customer     string
	Code         string
	Name         string
	SubType      string
	Quantity     decimal.Decimal
	PalletNumber int
	Status       string
	Remark       string
	LotNumber    string
}
