package orders_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/application/orders"
	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	lines []*entity.OrderLine
}

func (f *fakeOrderRepo) CreateLines(lines []*entity.OrderLine) error {
	for _, l := range lines {
		cp := *l
		f.lines = append(f.lines, &cp)
	}
	return nil
}

func (f *fakeOrderRepo) ListByOrder(orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	for _, l := range f.lines {
		if l.OrderID == orderID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PalletNumber != out[j].PalletNumber {
			return out[i].PalletNumber < out[j].PalletNumber
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (f *fakeOrderRepo) ReplaceLines(orderID string, lines []*entity.OrderLine) error {
	if err := f.Delete(orderID); err != nil {
		return err
	}
	return f.CreateLines(lines)
}

func (f *fakeOrderRepo) Delete(orderID string) error {
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.OrderID != orderID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(orderID, status string) error {
	for _, l := range f.lines {
		if l.OrderID == orderID {
			l.Status = status
		}
	}
	return nil
}

func (f *fakeOrderRepo) SetLot(orderID string, palletNumber int, code, lot string) error {
	for _, l := range f.lines {
		if l.OrderID == orderID && l.PalletNumber == palletNumber && l.Code == code {
			l.LotNumber = lot
		}
	}
	return nil
}

func (f *fakeOrderRepo) Search(filter repository.OrderSearch) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	for _, l := range f.lines {
		if filter.Lot != "" && !strings.Contains(l.LotNumber, filter.Lot) {
			continue
		}
		if filter.Customer != "" && l.Customer != filter.Customer {
			continue
		}
		if filter.CompletedOnly && l.Status != entity.OrderStatusComplete {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

type fakeStockRepo struct {
	records map[string]*entity.StockRecord
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[string]*entity.StockRecord)}
}

func (f *fakeStockRepo) key(factory, code string) string { return factory + "|" + code }

func (f *fakeStockRepo) Get(factory, code string) (*entity.StockRecord, error) {
	return f.GetForUpdate(factory, code)
}

func (f *fakeStockRepo) GetForUpdate(factory, code string) (*entity.StockRecord, error) {
	if rec, ok := f.records[f.key(factory, code)]; ok {
		cp := *rec
		return &cp, nil
	}
	return &entity.StockRecord{Factory: factory, Code: code, Quantity: decimal.Zero}, nil
}

func (f *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	cp := *record
	f.records[f.key(record.Factory, record.Code)] = &cp
	return nil
}

func (f *fakeStockRepo) List(string, []string) ([]*entity.StockRecord, error) { return nil, nil }

func (f *fakeStockRepo) quantity(factory, code string) decimal.Decimal {
	if rec, ok := f.records[f.key(factory, code)]; ok {
		return rec.Quantity
	}
	return decimal.Zero
}

type fakeLogRepo struct {
	entries []*entity.MovementLogEntry
}

func (f *fakeLogRepo) Append(entry *entity.MovementLogEntry) error {
	cp := *entry
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeLogRepo) GetByID(string) (*entity.MovementLogEntry, error) { return nil, nil }

func (f *fakeLogRepo) ListByBatch(batchID string) ([]*entity.MovementLogEntry, error) {
	var out []*entity.MovementLogEntry
	for _, e := range f.entries {
		if e.BatchID == batchID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLogRepo) DeleteByBatch(string) error { return nil }

func (f *fakeLogRepo) List(repository.MovementFilter) ([]*entity.MovementLogEntry, error) {
	return f.entries, nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (f *fakeItemRepo) GetByCode(code string) (*entity.Item, error) {
	if it, ok := f.items[code]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeItemRepo) List(string) ([]*entity.Item, error) { return nil, nil }

type fakeTxRunner struct {
	logRepo   *fakeLogRepo
	stockRepo *fakeStockRepo
	orderRepo *fakeOrderRepo
}

func (f *fakeTxRunner) RunOrders(_ context.Context, fn func(
	logRepo repository.MovementLogRepository,
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(f.logRepo, f.stockRepo, f.orderRepo)
}

func buildUseCase() (*orders.OrderUseCase, *fakeTxRunner) {
	tx := &fakeTxRunner{
		logRepo:   &fakeLogRepo{},
		stockRepo: newFakeStockRepo(),
		orderRepo: &fakeOrderRepo{},
	}
	items := &fakeItemRepo{items: map[string]*entity.Item{
		"PROD-A": {Code: "PROD-A", Name: "Producto A", Unit: "kg", Category: entity.ItemCategoryProduct},
		"PROD-B": {Code: "PROD-B", Name: "Producto B", Unit: "kg", Category: entity.ItemCategoryProduct},
	}}
	return orders.NewOrderUseCase(tx, items, tx.orderRepo), tx
}

func confirmOrder(t *testing.T, uc *orders.OrderUseCase, capacity int64) string {
	t.Helper()
	orderID, err := uc.Confirm(context.Background(), dto.ConfirmOrderRequest{
		Customer: "Cliente SA",
		Capacity: decimal.NewFromInt(capacity),
		Cart: []dto.CartLine{
			{Code: "PROD-A", Quantity: decimal.NewFromInt(1500), Remark: "BOX"},
			{Code: "PROD-B", Quantity: decimal.NewFromInt(700), Remark: "BAG"},
		},
	})
	require.NoError(t, err)
	return orderID
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirm — carrito → palés persistidos en PENDING
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_DivideElCarritoEnPales(t *testing.T) {
	uc, tx := buildUseCase()
	orderID := confirmOrder(t, uc, 1000)

	assert.True(t, strings.HasPrefix(orderID, "ORD-"))

	lines, err := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, err)
	// 1500 A + 700 B con capacidad 1000:
	//   palé 1: A 1000 · palé 2: A 500 + B 500 · palé 3: B 200
	require.Len(t, lines, 4)

	assert.Equal(t, 1, lines[0].PalletNumber)
	assert.Equal(t, "PROD-A", lines[0].Code)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, 2, lines[1].PalletNumber)
	assert.Equal(t, "PROD-A", lines[1].Code)
	assert.True(t, lines[1].Quantity.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, 2, lines[2].PalletNumber)
	assert.Equal(t, "PROD-B", lines[2].Code)
	assert.True(t, lines[2].Quantity.Equal(decimal.NewFromInt(500)))

	assert.Equal(t, 3, lines[3].PalletNumber)
	assert.Equal(t, "PROD-B", lines[3].Code)
	assert.True(t, lines[3].Quantity.Equal(decimal.NewFromInt(200)))

	for _, l := range lines {
		assert.Equal(t, entity.OrderStatusPending, l.Status)
		assert.Equal(t, "Cliente SA", l.Customer)
	}
	assert.Equal(t, "BOX", lines[0].Remark, "la unidad de empaque viaja del carrito a cada palé")
	assert.Equal(t, "BAG", lines[3].Remark)
}

func TestConfirm_ValidaCarrito(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()

	_, err := uc.Confirm(ctx, dto.ConfirmOrderRequest{Customer: "X"})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = uc.Confirm(ctx, dto.ConfirmOrderRequest{
		Cart: []dto.CartLine{{Code: "PROD-A", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente vacío")

	_, err = uc.Confirm(ctx, dto.ConfirmOrderRequest{
		Customer: "X",
		Cart:     []dto.CartLine{{Code: "PROD-A", Quantity: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	_, err = uc.Confirm(ctx, dto.ConfirmOrderRequest{
		Customer: "X",
		Cart:     []dto.CartLine{{Code: "NO-EXISTE", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Confirm(ctx, dto.ConfirmOrderRequest{
		Customer: "X",
		Capacity: decimal.NewFromInt(-5),
		Cart:     []dto.CartLine{{Code: "PROD-A", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resplit — renumeración con nueva capacidad
// ──────────────────────────────────────────────────────────────────────────────

func TestResplit_RecalculaConNuevaCapacidad(t *testing.T) {
	uc, tx := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.AssignLots(ctx, orderID, []dto.LotAssignment{
		{PalletNumber: 1, Code: "PROD-A", Lot: "LOT-001"},
	}))

	require.NoError(t, uc.Resplit(ctx, orderID, decimal.NewFromInt(2000)))

	lines, err := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, err)
	// 2200 en total con capacidad 2000: palé 1 lleno (A 1500 + B 500), palé 2 B 200.
	require.Len(t, lines, 3)
	assert.Equal(t, 1, lines[0].PalletNumber)
	assert.True(t, lines[0].Quantity.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 2, lines[2].PalletNumber)
	assert.True(t, lines[2].Quantity.Equal(decimal.NewFromInt(200)))

	// La cantidad total se conserva y los LOTs anteriores quedan anulados.
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Quantity)
		assert.Empty(t, l.LotNumber)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(2200)))
}

func TestResplit_RechazaPedidoDespachado(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.Ship(ctx, orderID, "F1"))
	err := uc.Resplit(ctx, orderID, decimal.NewFromInt(500))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestResplit_PedidoInexistente(t *testing.T) {
	uc, _ := buildUseCase()
	err := uc.Resplit(context.Background(), "ORD-0000000000", decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — borrado de pedido completo
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_BorraPedidoPendiente(t *testing.T) {
	uc, tx := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.Delete(ctx, orderID))

	lines, err := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, err)
	assert.Empty(t, lines, "no debe quedar ninguna línea del pedido")

	// El borrado no toca stock ni log: nunca hubo despacho.
	assert.True(t, tx.stockRepo.quantity("F1", "PROD-A").IsZero())
	assert.Empty(t, tx.logRepo.entries)
}

func TestDelete_RechazaPedidoDespachado(t *testing.T) {
	uc, tx := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.Ship(ctx, orderID, "F1"))
	err := uc.Delete(ctx, orderID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	lines, listErr := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, listErr)
	assert.Len(t, lines, 4, "un pedido despachado no se borra")
}

func TestDelete_PedidoInexistente(t *testing.T) {
	uc, _ := buildUseCase()
	err := uc.Delete(context.Background(), "ORD-0000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AssignLots
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignLots_FijaElLotPorCarga(t *testing.T) {
	uc, tx := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.AssignLots(ctx, orderID, []dto.LotAssignment{
		{PalletNumber: 1, Code: "PROD-A", Lot: "LOT-A1"},
		{PalletNumber: 2, Code: "PROD-B", Lot: "LOT-B1"},
	}))

	lines, err := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, err)
	assert.Equal(t, "LOT-A1", lines[0].LotNumber)
	assert.Equal(t, "LOT-B1", lines[2].LotNumber)
	assert.Empty(t, lines[1].LotNumber, "las cargas no asignadas quedan sin LOT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ship / CancelShipment — despacho con descuento y reversa
// ──────────────────────────────────────────────────────────────────────────────

func TestShip_DescuentaStockYCompletaElPedido(t *testing.T) {
	uc, tx := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.Ship(ctx, orderID, "F1"))

	assert.True(t, tx.stockRepo.quantity("F1", "PROD-A").Equal(decimal.NewFromInt(-1500)))
	assert.True(t, tx.stockRepo.quantity("F1", "PROD-B").Equal(decimal.NewFromInt(-700)))

	lines, err := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, err)
	for _, l := range lines {
		assert.Equal(t, entity.OrderStatusComplete, l.Status)
	}

	// Una entrada SHIPMENT por línea, todas bajo el mismo lote.
	require.Len(t, tx.logRepo.entries, 4)
	batch := tx.logRepo.entries[0].BatchID
	for _, e := range tx.logRepo.entries {
		assert.Equal(t, entity.CategoryShipment, e.Category)
		assert.Equal(t, batch, e.BatchID)
		assert.True(t, e.Quantity.IsNegative())
		assert.Equal(t, "Cliente SA", e.Customer)
	}
}

func TestShip_RechazaDobleDespacho(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.Ship(ctx, orderID, "F1"))
	err := uc.Ship(ctx, orderID, "F1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCancelShipment_ReponeStockYVuelveAPending(t *testing.T) {
	uc, tx := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.Ship(ctx, orderID, "F1"))
	require.NoError(t, uc.CancelShipment(ctx, orderID, "F1"))

	assert.True(t, tx.stockRepo.quantity("F1", "PROD-A").IsZero())
	assert.True(t, tx.stockRepo.quantity("F1", "PROD-B").IsZero())

	lines, err := tx.orderRepo.ListByOrder(orderID)
	require.NoError(t, err)
	for _, l := range lines {
		assert.Equal(t, entity.OrderStatusPending, l.Status)
	}

	cancels := 0
	for _, e := range tx.logRepo.entries {
		if e.Category == entity.CategoryShipmentCancel {
			cancels++
			assert.True(t, e.Quantity.IsPositive())
		}
	}
	assert.Equal(t, 4, cancels)
}

func TestCancelShipment_RechazaPedidoPendiente(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	err := uc.CancelShipment(ctx, orderID, "F1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// Search — trazabilidad por LOT
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_PorLot(t *testing.T) {
	uc, _ := buildUseCase()
	ctx := context.Background()
	orderID := confirmOrder(t, uc, 1000)

	require.NoError(t, uc.AssignLots(ctx, orderID, []dto.LotAssignment{
		{PalletNumber: 1, Code: "PROD-A", Lot: "LOT-2024-07"},
	}))

	out, err := uc.Search(ctx, repository.OrderSearch{Lot: "2024-07"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "LOT-2024-07", out[0].LotNumber)
	assert.Equal(t, orderID, out[0].OrderID)
}
