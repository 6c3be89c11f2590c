package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/packing"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// DefaultPalletCapacity capacidad de palé si la confirmación no indica otra.
var DefaultPalletCapacity = decimal.NewFromInt(1000)

// OrderUseCase confirma pedidos (carrito → particionado en palés),
// re-particiona, asigna LOTs y despacha con descuento de stock.
// El carrito es un acumulador propiedad del caller: viaja completo en la
// confirmación, sin estado de sesión en el servidor.
type OrderUseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	orderRepo repository.OrderRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, orderRepo repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, itemRepo: itemRepo, orderRepo: orderRepo}
}

// Confirm valida el carrito, particiona las cantidades en palés y persiste
// las líneas del pedido en estado PENDING. Devuelve el id del pedido.
func (uc *OrderUseCase) Confirm(ctx context.Context, in dto.ConfirmOrderRequest) (string, error) {
	if in.Customer == "" {
		return "", domain.ErrInvalidInput
	}
	if len(in.Cart) == 0 {
		return "", domain.ErrEmptyCart
	}
	capacity := in.Capacity
	if capacity.IsZero() {
		capacity = DefaultPalletCapacity
	}

	items := make([]*entity.Item, len(in.Cart))
	lines := make([]packing.Line, len(in.Cart))
	for i, cl := range in.Cart {
		if cl.Quantity.LessThanOrEqual(decimal.Zero) {
			return "", domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByCode(cl.Code)
		if err != nil {
			return "", err
		}
		if item == nil {
			return "", domain.ErrNotFound
		}
		items[i] = item
		lines[i] = packing.Line{Code: cl.Code, Quantity: cl.Quantity}
	}

	assignments, err := packing.Split(lines, capacity)
	if err != nil {
		return "", err
	}

	now := time.Now()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	orderID := "ORD-" + now.Format("0601021504")

	rows := make([]*entity.OrderLine, 0, len(assignments))
	for _, a := range assignments {
		item := items[a.LineIndex]
		rows = append(rows, &entity.OrderLine{
			OrderID:      orderID,
			OrderDate:    orderDate,
			Customer:     in.Customer,
			Code:         a.Code,
			Name:         item.Name,
			SubType:      item.SubType,
			Quantity:     a.Quantity,
			PalletNumber: a.PalletNumber,
			Status:       entity.OrderStatusPending,
			Remark:       in.Cart[a.LineIndex].Remark,
		})
	}

	err = uc.txRunner.RunOrders(ctx, func(
		_ repository.MovementLogRepository,
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		return orderRepo.CreateLines(rows)
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

// Resplit descarta el particionado vigente de un pedido PENDING y lo
// recalcula con la nueva capacidad sobre el total por ítem, renumerando
// los palés desde 1. Los LOTs asignados quedan anulados: referían a palés
// que ya no existen.
func (uc *OrderUseCase) Resplit(ctx context.Context, orderID string, capacity decimal.Decimal) error {
	return uc.txRunner.RunOrders(ctx, func(
		_ repository.MovementLogRepository,
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		existing, err := orderRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return domain.ErrNotFound
		}
		if existing[0].Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}

		// Total por ítem preservando el orden de primera aparición.
		type itemTotal struct {
			line  *entity.OrderLine
			total decimal.Decimal
		}
		index := map[string]int{}
		var totals []itemTotal
		for _, l := range existing {
			if i, ok := index[l.Code]; ok {
				totals[i].total = totals[i].total.Add(l.Quantity)
				continue
			}
			index[l.Code] = len(totals)
			totals = append(totals, itemTotal{line: l, total: l.Quantity})
		}

		lines := make([]packing.Line, len(totals))
		for i, t := range totals {
			lines[i] = packing.Line{Code: t.line.Code, Quantity: t.total}
		}
		assignments, err := packing.Split(lines, capacity)
		if err != nil {
			return err
		}

		rows := make([]*entity.OrderLine, 0, len(assignments))
		for _, a := range assignments {
			base := totals[a.LineIndex].line
			rows = append(rows, &entity.OrderLine{
				OrderID:      orderID,
				OrderDate:    base.OrderDate,
				Customer:     base.Customer,
				Code:         base.Code,
				Name:         base.Name,
				SubType:      base.SubType,
				Quantity:     a.Quantity,
				PalletNumber: a.PalletNumber,
				Status:       entity.OrderStatusPending,
				Remark:       base.Remark,
			})
		}
		return orderRepo.ReplaceLines(orderID, rows)
	})
}

// AssignLots fija el número de LOT de cada carga (palé, ítem) de un pedido
// PENDING. El LOT es trazabilidad posterior a la producción, independiente
// del particionado.
func (uc *OrderUseCase) AssignLots(ctx context.Context, orderID string, lots []dto.LotAssignment) error {
	if len(lots) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrders(ctx, func(
		_ repository.MovementLogRepository,
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		existing, err := orderRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return domain.ErrNotFound
		}
		if existing[0].Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		for _, a := range lots {
			if err := orderRepo.SetLot(orderID, a.PalletNumber, a.Code, a.Lot); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ship despacha un pedido PENDING: descuenta el stock de cada línea en la
// fábrica indicada, deja una entrada SHIPMENT por línea (todas bajo el
// mismo BatchID) y marca el pedido COMPLETE en bloque.
func (uc *OrderUseCase) Ship(ctx context.Context, orderID, factory string) error {
	if factory == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrders(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		lines, err := orderRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrNotFound
		}
		if lines[0].Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		batchID := uuid.New().String()
		now := time.Now()
		for _, l := range lines {
			if err := uc.adjustStock(stockRepo, factory, l.Code, l.Quantity.Neg(), now); err != nil {
				return err
			}
			entry := &entity.MovementLogEntry{
				BatchID:    batchID,
				OccurredAt: now,
				Factory:    factory,
				Category:   entity.CategoryShipment,
				Code:       l.Code,
				Name:       l.Name,
				SubType:    l.SubType,
				Quantity:   l.Quantity.Neg(),
				Note:       fmt.Sprintf("despacho pedido %s", orderID),
				Customer:   l.Customer,
				CreatedAt:  now,
			}
			if err := logRepo.Append(entry); err != nil {
				return fmt.Errorf("append shipment log: %w", err)
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusComplete)
	})
}

// CancelShipment revierte el despacho de un pedido COMPLETE: repone el
// stock con entradas SHIPMENT_CANCEL y devuelve el pedido a PENDING.
func (uc *OrderUseCase) CancelShipment(ctx context.Context, orderID, factory string) error {
	if factory == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunOrders(ctx, func(
		logRepo repository.MovementLogRepository,
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		lines, err := orderRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrNotFound
		}
		if lines[0].Status != entity.OrderStatusComplete {
			return domain.ErrConflict
		}
		batchID := uuid.New().String()
		now := time.Now()
		for _, l := range lines {
			if err := uc.adjustStock(stockRepo, factory, l.Code, l.Quantity, now); err != nil {
				return err
			}
			entry := &entity.MovementLogEntry{
				BatchID:    batchID,
				OccurredAt: now,
				Factory:    factory,
				Category:   entity.CategoryShipmentCancel,
				Code:       l.Code,
				Name:       l.Name,
				SubType:    l.SubType,
				Quantity:   l.Quantity,
				Note:       fmt.Sprintf("cancelación despacho %s", orderID),
				Customer:   l.Customer,
				CreatedAt:  now,
			}
			if err := logRepo.Append(entry); err != nil {
				return fmt.Errorf("append cancel log: %w", err)
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusPending)
	})
}

// Delete borra un pedido completo. Solo pedidos PENDING: un pedido
// despachado se revierte primero con CancelShipment.
func (uc *OrderUseCase) Delete(ctx context.Context, orderID string) error {
	return uc.txRunner.RunOrders(ctx, func(
		_ repository.MovementLogRepository,
		_ repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		existing, err := orderRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			return domain.ErrNotFound
		}
		if existing[0].Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		return orderRepo.Delete(orderID)
	})
}

// Get devuelve las líneas de un pedido.
func (uc *OrderUseCase) Get(ctx context.Context, orderID string) ([]dto.OrderLineDTO, error) {
	lines, err := uc.orderRepo.ListByOrder(orderID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}
	return toOrderLineDTOs(lines), nil
}

// Search busca líneas de pedido por LOT, cliente, ítem y fechas.
func (uc *OrderUseCase) Search(ctx context.Context, filter repository.OrderSearch) ([]dto.OrderLineDTO, error) {
	lines, err := uc.orderRepo.Search(filter)
	if err != nil {
		return nil, err
	}
	return toOrderLineDTOs(lines), nil
}

// adjustStock bloquea la fila de stock y aplica el delta sin piso. Los
// campos descriptivos de un registro nuevo se toman del catálogo cuando el
// ítem existe.
func (uc *OrderUseCase) adjustStock(
	stockRepo repository.StockRepository,
	factory, code string,
	delta decimal.Decimal,
	now time.Time,
) error {
	rec, err := stockRepo.GetForUpdate(factory, code)
	if err != nil {
		return err
	}
	if rec.Name == "" {
		item, err := uc.itemRepo.GetByCode(code)
		if err != nil {
			return err
		}
		if item != nil {
			rec.Name = item.Name
			rec.Spec = item.Spec
			rec.SubType = item.SubType
			rec.Color = item.Color
			rec.Unit = item.Unit
		} else {
			rec.Name, rec.Spec, rec.SubType, rec.Color, rec.Unit = "-", "-", "-", "-", "-"
		}
	}
	rec.Quantity = rec.Quantity.Add(delta)
	rec.UpdatedAt = now
	if err := stockRepo.Upsert(rec); err != nil {
		return fmt.Errorf("upsert stock %s/%s: %w", factory, code, err)
	}
	return nil
}

func toOrderLineDTOs(lines []*entity.OrderLine) []dto.OrderLineDTO {
	out := make([]dto.OrderLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.OrderLineDTO{
			OrderID:      l.OrderID,
			OrderDate:    l.OrderDate,
			Customer:     l.Customer,
			Code:         l.Code,
			Name:         l.Name,
			SubType:      l.SubType,
			Quantity:     l.Quantity,
			PalletNumber: l.PalletNumber,
			Status:       l.Status,
			Remark:       l.Remark,
			LotNumber:    l.LotNumber,
		})
	}
	return out
}
