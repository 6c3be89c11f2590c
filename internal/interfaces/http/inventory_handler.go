package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/application/inventory"
	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// InventoryHandler maneja movimientos, producciones y conteos (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.QueryUseCase
}

func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar entrada o cancelación de despacho
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		Factory:    in.Factory,
		Code:       in.Code,
		Category:   in.Category,
		Quantity:   in.Quantity,
		Note:       in.Note,
		OccurredAt: time.Now(),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "ok"})
}

// RegisterProduction godoc
// @Summary      Registrar producción (con descuento BOM automático)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductionRequest  true  "Producción"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/production [post]
func (h *InventoryHandler) RegisterProduction(c *fiber.Ctx) error {
	var in dto.RegisterProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	occurredAt := time.Now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	batchID, err := h.register.RegisterProduction(c.Context(), inventory.ProductionInput{
		Factory:    in.Factory,
		Code:       in.Code,
		Quantity:   in.Quantity,
		Line:       in.Line,
		SubType:    in.SubType,
		Note:       in.Note,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"batch_id": batchID})
}

// DeleteProduction godoc
// @Summary      Anular una producción (revierte stock y descuentos BOM)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la entrada de producción"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/production/{id} [delete]
func (h *InventoryHandler) DeleteProduction(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.register.DeleteProduction(c.Context(), id); err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// EditProduction godoc
// @Summary      Corregir una producción (reversa completa y re-registro)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la entrada de producción"
// @Param        body  body  dto.RegisterProductionRequest  true  "Datos corregidos"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/production/{id} [put]
func (h *InventoryHandler) EditProduction(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.RegisterProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	occurredAt := time.Now()
	if in.OccurredAt != nil {
		occurredAt = *in.OccurredAt
	}
	batchID, err := h.register.EditProduction(c.Context(), id, inventory.ProductionInput{
		Factory:    in.Factory,
		Code:       in.Code,
		Quantity:   in.Quantity,
		Line:       in.Line,
		SubType:    in.SubType,
		Note:       in.Note,
		OccurredAt: occurredAt,
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(fiber.Map{"batch_id": batchID})
}

// StockCount godoc
// @Summary      Registrar conteo físico (ajusta al valor contado)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockCountRequest  true  "Conteo"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-count [post]
func (h *InventoryHandler) StockCount(c *fiber.Ctx) error {
	var in dto.StockCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	delta, err := h.register.RegisterStockCount(c.Context(), inventory.StockCountInput{
		Factory:    in.Factory,
		Code:       in.Code,
		CountedQty: in.CountedQty,
		Note:       in.Note,
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"delta": delta})
}

// ListItems godoc
// @Summary      Listar el catálogo de ítems
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Categoría de ítem (RAW, SEMI, PRODUCT, FINISHED)"
// @Success      200  {array}  dto.ItemDTO
// @Router       /api/items [get]
func (h *InventoryHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.query.ListItems(c.Context(), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Consultar stock por fábrica y categoría de ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        factory   query  string  false  "Fábrica"
// @Param        category  query  string  false  "Categoría de ítem (RAW, SEMI, PRODUCT)"
// @Success      200  {array}  dto.StockRecordDTO
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.query.ListStock(c.Context(), c.Query("factory"), c.Query("category"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SearchMovements godoc
// @Summary      Buscar en el log de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        factory   query  string  false  "Fábrica"
// @Param        category  query  string  false  "Categoría de movimiento"
// @Param        line      query  string  false  "Línea de producción"
// @Param        q         query  string  false  "Código o nombre (substring)"
// @Param        from      query  string  false  "Desde (RFC3339)"
// @Param        to        query  string  false  "Hasta (RFC3339)"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) SearchMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		Factory:  c.Query("factory"),
		Category: c.Query("category"),
		Line:     c.Query("line"),
		Code:     c.Query("q"),
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
	}
	var parseErr error
	filter.From, parseErr = parseTimeQuery(c.Query("from"))
	if parseErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	filter.To, parseErr = parseTimeQuery(c.Query("to"))
	if parseErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}
	out, err := h.query.SearchMovements(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

func parseTimeQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// admite también fecha sola
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// inventoryError mapea los errores de dominio del inventario a códigos HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
