package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine una línea del carrito de pedido. El carrito es un acumulador
// propiedad del cliente y viaja completo en la confirmación: el servidor no
// guarda estado de sesión.
type CartLine struct {
	Code     string          `json:"code"`
	Quantity decimal.Decimal `json:"quantity"`
	Remark   string          `json:"remark,omitempty"` // unidad de empaque (BOX, BAG, ...)
}

// ConfirmOrderRequest body para POST /api/orders. Capacity cero usa la
// capacidad de palé por defecto (1000).
type ConfirmOrderRequest struct {
	Customer  string          `json:"customer"`
	OrderDate *time.Time      `json:"order_date,omitempty"`
	Capacity  decimal.Decimal `json:"capacity,omitempty"`
	Cart      []CartLine      `json:"cart"`
}

// ResplitRequest body para POST /api/orders/:id/resplit.
type ResplitRequest struct {
	Capacity decimal.Decimal `json:"capacity"`
}

// LotAssignment asignación de LOT a la carga de un ítem en un palé.
type LotAssignment struct {
	PalletNumber int    `json:"pallet_number"`
	Code         string `json:"code"`
	Lot          string `json:"lot"`
}

// AssignLotsRequest body para PUT /api/orders/:id/lots.
type AssignLotsRequest struct {
	Lots []LotAssignment `json:"lots"`
}

// ShipOrderRequest body para POST /api/orders/:id/ship y cancel-shipment.
// La fábrica indica de dónde se descuenta (o repone) el stock.
type ShipOrderRequest struct {
	Factory string `json:"factory"`
}

// OrderLineDTO línea de pedido en respuestas.
type OrderLineDTO struct {
	OrderID      string          `json:"order_id"`
	OrderDate    time.Time       `json:"order_date"`
	Customer     string          `json:"customer"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	SubType      string          `json:"sub_type,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	PalletNumber int             `json:"pallet_number"`
	Status       string          `json:"status"`
	Remark       string          `json:"remark,omitempty"`
	LotNumber    string          `json:"lot_number,omitempty"`
}
