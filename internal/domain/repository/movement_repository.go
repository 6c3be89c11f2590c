package repository

import (
	"time"

	"github.com/chamstek/factory-ops/internal/domain/entity"
)

// MovementFilter criterios de búsqueda sobre el log de movimientos.
type MovementFilter struct {
	Factory  string
	Category string
	Line     string
	Code     string // coincide por código o nombre (substring, sin mayúsculas)
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// MovementLogRepository define el puerto de persistencia del log de
// movimientos (append-only; el borrado existe solo para la reversa de
// producciones, por lote completo).
type MovementLogRepository interface {
	Append(entry *entity.MovementLogEntry) error
	GetByID(id string) (*entity.MovementLogEntry, error)
	ListByBatch(batchID string) ([]*entity.MovementLogEntry, error)
	DeleteByBatch(batchID string) error
	List(filter MovementFilter) ([]*entity.MovementLogEntry, error)
}
