package inventory

import (
	"context"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/domain/entity"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// QueryUseCase lecturas de inventario: catálogo de ítems, vista de stock y
// búsqueda en el log de movimientos. Sin transacción; repositorios sobre el
// pool.
type QueryUseCase struct {
	stockRepo repository.StockRepository
	logRepo   repository.MovementLogRepository
	itemRepo  repository.ItemRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(stockRepo repository.StockRepository, logRepo repository.MovementLogRepository, itemRepo repository.ItemRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo, logRepo: logRepo, itemRepo: itemRepo}
}

// ListItems devuelve el catálogo de ítems, opcionalmente filtrado por
// categoría ("" = todas). Alimenta los selectores de los formularios de
// entrada, producción y pedido.
func (uc *QueryUseCase) ListItems(ctx context.Context, category string) ([]dto.ItemDTO, error) {
	items, err := uc.itemRepo.List(category)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ItemDTO{
			Code:     it.Code,
			Name:     it.Name,
			Spec:     it.Spec,
			SubType:  it.SubType,
			Color:    it.Color,
			Unit:     it.Unit,
			Category: it.Category,
		})
	}
	return out, nil
}

// ListStock devuelve la vista de stock filtrada por fábrica y por categoría
// de ítem ("" = todas). El filtro PRODUCT incluye también FINISHED, como en
// la vista de planta.
func (uc *QueryUseCase) ListStock(ctx context.Context, factory, category string) ([]dto.StockRecordDTO, error) {
	var categories []string
	switch category {
	case "":
	case entity.ItemCategoryProduct:
		categories = []string{entity.ItemCategoryProduct, entity.ItemCategoryFinished}
	default:
		categories = []string{category}
	}
	records, err := uc.stockRepo.List(factory, categories)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.StockRecordDTO{
			Factory:   r.Factory,
			Code:      r.Code,
			Name:      r.Name,
			Spec:      r.Spec,
			SubType:   r.SubType,
			Color:     r.Color,
			Unit:      r.Unit,
			Quantity:  r.Quantity,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

// SearchMovements busca en el log por fábrica, categoría, línea, código o
// nombre y rango de fechas.
func (uc *QueryUseCase) SearchMovements(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementDTO, error) {
	entries, err := uc.logRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToMovementDTO(e))
	}
	return out, nil
}

// ToMovementDTO mapea una entrada del log a su DTO de respuesta.
func ToMovementDTO(e *entity.MovementLogEntry) dto.MovementDTO {
	return dto.MovementDTO{
		ID:             e.ID,
		BatchID:        e.BatchID,
		OccurredAt:     e.OccurredAt,
		Factory:        e.Factory,
		Category:       e.Category,
		Code:           e.Code,
		Name:           e.Name,
		Quantity:       e.Quantity,
		Note:           e.Note,
		Customer:       e.Customer,
		ProductionLine: e.ProductionLine,
	}
}
