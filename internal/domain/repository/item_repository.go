package repository

import "github.com/chamstek/factory-ops/internal/domain/entity"

// ItemRepository define el puerto de lectura del catálogo de ítems.
type ItemRepository interface {
	// GetByCode devuelve nil (sin error) si el código no existe.
	GetByCode(code string) (*entity.Item, error)
	List(category string) ([]*entity.Item, error)
}
