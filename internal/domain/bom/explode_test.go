package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamstek/factory-ops/internal/domain/bom"
	"github.com/chamstek/factory-ops/internal/domain/entity"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// Escenario de referencia: producir 100 de PROD-X con BOM
// [(MAT-1, 0.8), (MAT-2, 0.1)] requiere MAT-1: 80 y MAT-2: 10.
func TestExplode_EscenarioReferencia(t *testing.T) {
	lines := []entity.BOMLine{
		{ProductCode: "PROD-X", MaterialCode: "MAT-1", SubType: "type-A", QtyPerUnit: dec(0.8)},
		{ProductCode: "PROD-X", MaterialCode: "MAT-2", SubType: "type-A", QtyPerUnit: dec(0.1)},
	}

	got := bom.Explode(lines, dec(100))
	require.Len(t, got, 2)

	assert.Equal(t, "MAT-1", got[0].MaterialCode)
	assert.True(t, got[0].Quantity.Equal(dec(80)))
	assert.Equal(t, "MAT-2", got[1].MaterialCode)
	assert.True(t, got[1].Quantity.Equal(dec(10)))
}

// TestExplode_DuplicadosGanaPrimero valida que una fila BOM duplicada por
// material no duplica el descuento: se aplica solo la primera.
func TestExplode_DuplicadosGanaPrimero(t *testing.T) {
	lines := []entity.BOMLine{
		{ProductCode: "P", MaterialCode: "M1", QtyPerUnit: dec(0.5)},
		{ProductCode: "P", MaterialCode: "M1", QtyPerUnit: dec(0.9)}, // duplicada, se ignora
		{ProductCode: "P", MaterialCode: "M2", QtyPerUnit: dec(0.2)},
	}

	got := bom.Explode(lines, dec(10))
	require.Len(t, got, 2)
	assert.True(t, got[0].Quantity.Equal(dec(5)), "debe usar la primera fila, no la duplicada")
	assert.True(t, got[1].Quantity.Equal(dec(2)))
}

func TestExplode_SinBOM(t *testing.T) {
	assert.Empty(t, bom.Explode(nil, dec(100)), "un producto sin receta no consume nada")
}

func TestExplode_CantidadCeroONegativa(t *testing.T) {
	lines := []entity.BOMLine{{ProductCode: "P", MaterialCode: "M1", QtyPerUnit: dec(0.5)}}

	got := bom.Explode(lines, decimal.Zero)
	require.Len(t, got, 1)
	assert.True(t, got[0].Quantity.IsZero())

	got = bom.Explode(lines, dec(-10))
	require.Len(t, got, 1)
	assert.True(t, got[0].Quantity.Equal(dec(-5)), "cantidad negativa invierte el signo del consumo")
}
