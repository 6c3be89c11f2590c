package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamstek/factory-ops/internal/application/inventory"
	"github.com/chamstek/factory-ops/internal/application/orders"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// Reintentos acotados ante fallos transitorios del almacén; después se
// propaga el error al caller en vez de descartarlo.
const (
	maxTxAttempts = 3
	retryBackoff  = 100 * time.Millisecond
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con
// reintento acotado cuando la transacción completa falla por una causa
// transitoria (deadlock, serialización, conexión).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repositorios de
// inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	logRepo repository.MovementLogRepository,
	stockRepo repository.StockRepository,
	bomRepo repository.BOMRepository,
) error) error {
	return r.withRetry(ctx, func(q Querier) error {
		return fn(NewMovementLogRepository(q), NewStockRepository(q), NewBOMRepository(q))
	})
}

// RunOrders inicia una transacción con los repositorios del flujo de
// pedidos (despacho, re-split, LOTs).
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	logRepo repository.MovementLogRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.withRetry(ctx, func(q Querier) error {
		return fn(NewMovementLogRepository(q), NewStockRepository(q), NewOrderRepository(q))
	})
}

// withRetry ejecuta la transacción completa hasta maxTxAttempts veces.
// Solo se reintenta ante errores transitorios; los errores de negocio
// salen a la primera.
func (r *TxRunner) withRetry(ctx context.Context, fn func(q Querier) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		lastErr = r.runOnce(ctx, fn)
		if lastErr == nil || !isTransient(lastErr) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("transacción agotó %d intentos: %w", maxTxAttempts, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
