package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord es el stock vigente de un ítem en una fábrica (agregado
// materializado del log de movimientos, mantenido incrementalmente).
// Se crea con el primer movimiento del par (fábrica, código) y nunca se
// elimina. La cantidad puede quedar negativa: es una señal de calidad de
// datos, no un error.
type StockRecord struct {
	Factory   string
	Code      string
	Name      string
	Spec      string
	SubType   string
	Color     string
	Unit      string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
