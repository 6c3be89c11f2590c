package repository

import (
	"time"

	"github.com/chamstek/factory-ops/internal/domain/entity"
)

// OrderSearch criterios de búsqueda de líneas de pedido (trazabilidad LOT).
type OrderSearch struct {
	Lot           string // substring, sin mayúsculas
	Customer      string
	Code          string
	From          *time.Time
	To            *time.Time
	CompletedOnly bool
	Limit         int
	Offset        int
}

// OrderRepository define el puerto de persistencia de pedidos (líneas por
// palé). Las mutaciones multi-fila se usan dentro de transacciones.
type OrderRepository interface {
	CreateLines(lines []*entity.OrderLine) error
	ListByOrder(orderID string) ([]*entity.OrderLine, error)
	// ReplaceLines borra las líneas del pedido y las sustituye en bloque
	// (re-split y edición de palés).
	ReplaceLines(orderID string, lines []*entity.OrderLine) error
	Delete(orderID string) error
	UpdateStatus(orderID, status string) error
	SetLot(orderID string, palletNumber int, code, lot string) error
	Search(filter OrderSearch) ([]*entity.OrderLine, error)
}
