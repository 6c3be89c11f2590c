package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/internal/domain/bom"
	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional: entradas, producciones con descuento BOM, conteos físicos
// y reversas de producción. Cada operación corre en una única transacción
// con bloqueo de fila sobre el stock (SELECT FOR UPDATE).
type RegisterMovementUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, itemRepo repository.ItemRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, itemRepo: itemRepo}
}

// MovementInput entrada para un movimiento simple (RECEIPT o
// SHIPMENT_CANCEL). La cantidad se recibe positiva; el signo lo fija la
// categoría.
type MovementInput struct {
	Factory    string
	Code       string
	Category   string
	Quantity   decimal.Decimal
	Note       string
	OccurredAt time.Time
}

// ProductionInput entrada para registrar una producción. SubType delimita
// la receta BOM cuando el producto tiene variantes.
type ProductionInput struct {
	Factory    string
	Code       string
	Quantity   decimal.Decimal
	Line       string
	SubType    string
	Note       string
	OccurredAt time.Time
}

// StockCountInput entrada para un conteo físico. El delta lo calcula el
// servidor contra la cantidad en sistema.
type StockCountInput struct {
	Factory    string
	Code       string
	CountedQty decimal.Decimal
	Note       string
}

// RegisterMovement aplica un movimiento simple: una entrada de log más un
// ajuste de stock, en una transacción. Solo admite categorías aditivas de
// registro manual; producción, conteo y despacho tienen flujos propios.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) error {
	if in.Factory == "" || in.Code == "" {
		return domain.ErrInvalidInput
	}
	if in.Category != entity.CategoryReceipt && in.Category != entity.CategoryShipmentCancel {
		return domain.ErrInvalidInput
	}
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByCode(in.Code)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}

	return uc.txRunner.Run(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		_ repository.BOMRepository,
	) error {
		entry := &entity.MovementLogEntry{
			BatchID:    uuid.New().String(),
			OccurredAt: occurred,
			Factory:    in.Factory,
			Category:   in.Category,
			Code:       item.Code,
			Name:       item.Name,
			Spec:       item.Spec,
			SubType:    item.SubType,
			Color:      item.Color,
			Quantity:   in.Quantity,
			Note:       in.Note,
			CreatedAt:  time.Now(),
		}
		if err := logRepo.Append(entry); err != nil {
			return fmt.Errorf("append log: %w", err)
		}
		return adjustStock(stockRepo, in.Factory, item.Code, in.Quantity, item, occurred)
	})
}

// RegisterProduction registra una producción: acredita el producto y
// descuenta cada material de su BOM (delimitada por SubType, deduplicada
// por material con la primera aparición) en la misma fábrica y la misma
// transacción. Devuelve el BatchID que enlaza la entrada de producción con
// sus descuentos AUTO_CONSUMPTION para la reversa exacta.
// Un producto sin receta solo acredita el producto.
func (uc *RegisterMovementUseCase) RegisterProduction(ctx context.Context, in ProductionInput) (string, error) {
	if in.Factory == "" || in.Code == "" {
		return "", domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByCode(in.Code)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	batchID := uuid.New().String()
	err = uc.txRunner.Run(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		bomRepo repository.BOMRepository,
	) error {
		return uc.runProduction(logRepo, stockRepo, bomRepo, item, in, batchID)
	})
	if err != nil {
		return "", err
	}
	return batchID, nil
}

// runProduction aplica la producción con los repositorios de la
// transacción del caller (también lo usa EditProduction).
func (uc *RegisterMovementUseCase) runProduction(
	logRepo repository.MovementLogRepository,
	stockRepo repository.StockRepository,
	bomRepo repository.BOMRepository,
	item *entity.Item,
	in ProductionInput,
	batchID string,
) error {
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	now := time.Now()

	entry := &entity.MovementLogEntry{
		BatchID:        batchID,
		OccurredAt:     occurred,
		Factory:        in.Factory,
		Category:       entity.CategoryProduction,
		Code:           item.Code,
		Name:           item.Name,
		Spec:           item.Spec,
		SubType:        item.SubType,
		Color:          item.Color,
		Quantity:       in.Quantity,
		Note:           in.Note,
		ProductionLine: in.Line,
		CreatedAt:      now,
	}
	if err := logRepo.Append(entry); err != nil {
		return fmt.Errorf("append production log: %w", err)
	}
	if err := adjustStock(stockRepo, in.Factory, item.Code, in.Quantity, item, occurred); err != nil {
		return err
	}

	lines, err := bomRepo.ListByProduct(item.Code, in.SubType)
	if err != nil {
		return fmt.Errorf("list bom: %w", err)
	}
	for _, req := range bom.Explode(lines, in.Quantity) {
		consumed := req.Quantity.Neg()
		if err := adjustStock(stockRepo, in.Factory, req.MaterialCode, consumed, nil, occurred); err != nil {
			return err
		}
		auto := &entity.MovementLogEntry{
			BatchID:        batchID,
			OccurredAt:     occurred,
			Factory:        in.Factory,
			Category:       entity.CategoryAutoConsumption,
			Code:           req.MaterialCode,
			Name:           "System",
			Spec:           "-",
			SubType:        "-",
			Color:          "-",
			Quantity:       consumed,
			Note:           fmt.Sprintf("consumo BOM %s", item.Code),
			ProductionLine: in.Line,
			CreatedAt:      now,
		}
		if err := logRepo.Append(auto); err != nil {
			return fmt.Errorf("append consumption log: %w", err)
		}
	}
	return nil
}

// DeleteProduction revierte una producción completa: anula el crédito del
// producto, anula cada descuento AUTO_CONSUMPTION del mismo lote (su
// cantidad ya es negativa, negarla repone el material) y borra todas las
// entradas del lote. Todo en una transacción.
func (uc *RegisterMovementUseCase) DeleteProduction(ctx context.Context, entryID string) error {
	return uc.txRunner.Run(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		_ repository.BOMRepository,
	) error {
		return deleteBatch(logRepo, stockRepo, entryID)
	})
}

// EditProduction edita una producción: reversa completa del lote original
// y re-ejecución del flujo con los valores nuevos, timestamp fresco y un
// BatchID nuevo. Una sola transacción. Devuelve el BatchID nuevo.
func (uc *RegisterMovementUseCase) EditProduction(ctx context.Context, entryID string, in ProductionInput) (string, error) {
	if in.Factory == "" || in.Code == "" {
		return "", domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByCode(in.Code)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	batchID := uuid.New().String()
	in.OccurredAt = time.Time{} // timestamp fresco en la re-ejecución
	err = uc.txRunner.Run(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		bomRepo repository.BOMRepository,
	) error {
		if err := deleteBatch(logRepo, stockRepo, entryID); err != nil {
			return err
		}
		return uc.runProduction(logRepo, stockRepo, bomRepo, item, in, batchID)
	})
	if err != nil {
		return "", err
	}
	return batchID, nil
}

// RegisterStockCount registra un conteo físico: calcula el delta contra la
// cantidad en sistema, lo deja en el log como STOCK_COUNT y fija el stock
// en la cantidad contada. Devuelve el delta aplicado.
func (uc *RegisterMovementUseCase) RegisterStockCount(ctx context.Context, in StockCountInput) (decimal.Decimal, error) {
	if in.Factory == "" || in.Code == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByCode(in.Code)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	var delta decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		_ repository.BOMRepository,
	) error {
		rec, err := stockRepo.GetForUpdate(in.Factory, in.Code)
		if err != nil {
			return err
		}
		now := time.Now()
		delta = in.CountedQty.Sub(rec.Quantity)
		entry := &entity.MovementLogEntry{
			BatchID:    uuid.New().String(),
			OccurredAt: now,
			Factory:    in.Factory,
			Category:   entity.CategoryStockCount,
			Code:       item.Code,
			Name:       item.Name,
			Spec:       item.Spec,
			SubType:    item.SubType,
			Color:      item.Color,
			Quantity:   delta,
			Note:       "[conteo] " + in.Note,
			CreatedAt:  now,
		}
		if err := logRepo.Append(entry); err != nil {
			return fmt.Errorf("append count log: %w", err)
		}
		fillDisplay(rec, item)
		rec.Quantity = in.CountedQty
		rec.UpdatedAt = now
		return stockRepo.Upsert(rec)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return delta, nil
}

// deleteBatch revierte y borra el lote de la producción indicada usando
// los repositorios de la transacción del caller.
func deleteBatch(
	logRepo repository.MovementLogRepository,
	stockRepo repository.StockRepository,
	entryID string,
) error {
	e, err := logRepo.GetByID(entryID)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if e.Category != entity.CategoryProduction {
		return domain.ErrInvalidInput
	}
	entries, err := logRepo.ListByBatch(e.BatchID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, le := range entries {
		if err := adjustStock(stockRepo, le.Factory, le.Code, le.Quantity.Neg(), nil, now); err != nil {
			return err
		}
	}
	return logRepo.DeleteByBatch(e.BatchID)
}

// adjustStock bloquea la fila de stock, suma el delta (sin piso: el
// resultado puede quedar negativo) y persiste. Si el registro no existía,
// se crea con los campos descriptivos del ítem, o con "-" cuando no hay
// ítem de catálogo (materiales descontados por BOM).
func adjustStock(
	stockRepo repository.StockRepository,
	factory, code string,
	delta decimal.Decimal,
	item *entity.Item,
	now time.Time,
) error {
	rec, err := stockRepo.GetForUpdate(factory, code)
	if err != nil {
		return err
	}
	fillDisplay(rec, item)
	rec.Quantity = rec.Quantity.Add(delta)
	rec.UpdatedAt = now
	if err := stockRepo.Upsert(rec); err != nil {
		return fmt.Errorf("upsert stock %s/%s: %w", factory, code, err)
	}
	return nil
}

// fillDisplay completa los campos descriptivos de un registro recién
// creado. Un registro ya poblado no se toca.
func fillDisplay(rec *entity.StockRecord, item *entity.Item) {
	if rec.Name != "" {
		return
	}
	if item != nil {
		rec.Name = item.Name
		rec.Spec = item.Spec
		rec.SubType = item.SubType
		rec.Color = item.Color
		rec.Unit = item.Unit
		return
	}
	rec.Name = "-"
	rec.Spec = "-"
	rec.SubType = "-"
	rec.Color = "-"
	rec.Unit = "-"
}
