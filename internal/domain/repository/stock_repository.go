package repository

import "github.com/chamstek/factory-ops/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el stock por
// fábrica+código. Las mutaciones se usan dentro de transacciones.
type StockRepository interface {
	Get(factory, code string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si el
	// registro no existe devuelve uno nuevo con cantidad cero, listo para
	// crear con Upsert.
	GetForUpdate(factory, code string) (*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
	// List devuelve el stock, opcionalmente filtrado por fábrica y por
	// categorías de ítem del catálogo (vacío = sin filtro).
	List(factory string, categories []string) ([]*entity.StockRecord, error)
}
