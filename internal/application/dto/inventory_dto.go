package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements
// (entradas y cancelaciones de despacho; producción y conteo tienen
// endpoints propios).
type RegisterMovementRequest struct {
	Factory  string          `json:"factory"`
	Code     string          `json:"code"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note,omitempty"`
}

// RegisterProductionRequest body para POST /api/inventory/production.
// SubType delimita la receta BOM cuando el producto tiene variantes.
type RegisterProductionRequest struct {
	Factory    string          `json:"factory"`
	Code       string          `json:"code"`
	Quantity   decimal.Decimal `json:"quantity"`
	Line       string          `json:"line,omitempty"`
	SubType    string          `json:"sub_type,omitempty"`
	Note       string          `json:"note,omitempty"`
	OccurredAt *time.Time      `json:"occurred_at,omitempty"`
}

// StockCountRequest body para POST /api/inventory/stock-count. El delta se
// calcula en el servidor: contado − sistema.
type StockCountRequest struct {
	Factory    string          `json:"factory"`
	Code       string          `json:"code"`
	CountedQty decimal.Decimal `json:"counted_qty"`
	Note       string          `json:"note,omitempty"`
}

// ItemDTO fila del catálogo de ítems; alimenta los selectores de los
// formularios de registro.
type ItemDTO struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Spec     string `json:"spec,omitempty"`
	SubType  string `json:"sub_type,omitempty"`
	Color    string `json:"color,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category"`
}

// StockRecordDTO fila de la vista de stock.
type StockRecordDTO struct {
	Factory   string          `json:"factory"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Spec      string          `json:"spec"`
	SubType   string          `json:"sub_type"`
	Color     string          `json:"color"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementDTO entrada del log de movimientos en respuestas.
type MovementDTO struct {
	ID             string          `json:"id"`
	BatchID        string          `json:"batch_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
	Factory        string          `json:"factory"`
	Category       string          `json:"category"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Note           string          `json:"note,omitempty"`
	Customer       string          `json:"customer,omitempty"`
	ProductionLine string          `json:"production_line,omitempty"`
}
