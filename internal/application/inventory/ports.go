package inventory

import (
	"context"

	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén,
// pasando repositorios atados a esa tx. Garantiza que una producción con
// sus N descuentos BOM (N+1 mutaciones de stock más N+1 entradas de log)
// se aplica completa o no se aplica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		bomRepo repository.BOMRepository,
	) error) error
}
