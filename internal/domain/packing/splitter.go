// Package packing implementa el particionado de pedidos en palés de
// capacidad fija (servicio de dominio puro).
package packing

import (
	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/domain"
)

// Line es una línea de pedido a particionar: un ítem y su cantidad total.
type Line struct {
	Code     string
	Quantity decimal.Decimal
}

// Assignment es la carga asignada a un palé. LineIndex referencia la línea
// de entrada que la originó (una línea puede repartirse en varios palés y
// un palé puede llevar varias líneas).
type Assignment struct {
	LineIndex    int
	Code         string
	PalletNumber int
	Quantity     decimal.Decimal
}

// Split particiona las líneas, en su orden de entrada, en palés de
// capacidad fija: llena cada palé hasta el tope antes de abrir el
// siguiente, arrastrando el remanente de una línea al palé siguiente.
// Los números de palé son 1-based, contiguos y no decrecientes.
// Capacidad no positiva se rechaza antes de cualquier efecto.
func Split(lines []Line, capacity decimal.Decimal) ([]Assignment, error) {
	if capacity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidCapacity
	}

	var out []Assignment
	pallet := 1
	fill := decimal.Zero

	for i, line := range lines {
		remaining := line.Quantity
		for remaining.GreaterThan(decimal.Zero) {
			space := capacity.Sub(fill)
			if space.LessThanOrEqual(decimal.Zero) {
				pallet++
				fill = decimal.Zero
				space = capacity
			}
			load := decimal.Min(remaining, space)
			out = append(out, Assignment{
				LineIndex:    i,
				Code:         line.Code,
				PalletNumber: pallet,
				Quantity:     load,
			})
			fill = fill.Add(load)
			remaining = remaining.Sub(load)
		}
	}
	return out, nil
}
