package orders

import (
	"context"

	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén con
// los repositorios de pedidos. El despacho de un pedido (N descuentos de
// stock, N entradas de log y el cambio de estado en bloque) se aplica
// completo o no se aplica.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
