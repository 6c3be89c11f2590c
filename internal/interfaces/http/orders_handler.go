package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chamstek/factory-ops/internal/application/dto"
	"github.com/chamstek/factory-ops/internal/application/orders"
	"github.com/chamstek/factory-ops/internal/domain"
	"github.com/chamstek/factory-ops/internal/domain/repository"
)

// OrderHandler maneja pedidos: confirmación, re-split, LOTs y despacho
// (protegido).
type OrderHandler struct {
	uc *orders.OrderUseCase
}

func NewOrderHandler(uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Confirm godoc
// @Summary      Confirmar pedido (divide el carrito en palés)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmOrderRequest  true  "Cliente y carrito"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orderID, err := h.uc.Confirm(c.Context(), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order_id": orderID})
}

// Get godoc
// @Summary      Obtener las líneas de un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {array}  dto.OrderLineDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar un pedido pendiente completo
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Resplit godoc
// @Summary      Redistribuir los palés de un pedido pendiente
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ResplitRequest  true  "Nueva capacidad de palé"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/resplit [post]
func (h *OrderHandler) Resplit(c *fiber.Ctx) error {
	var in dto.ResplitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Resplit(c.Context(), c.Params("id"), in.Capacity); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// AssignLots godoc
// @Summary      Asignar números de LOT a los palés de un pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.AssignLotsRequest  true  "Asignaciones de LOT"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/lots [put]
func (h *OrderHandler) AssignLots(c *fiber.Ctx) error {
	var in dto.AssignLotsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AssignLots(c.Context(), c.Params("id"), in.Lots); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ship godoc
// @Summary      Despachar un pedido pendiente (descuenta stock)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ShipOrderRequest  true  "Fábrica de origen"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Ship(c.Context(), c.Params("id"), in.Factory); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// CancelShipment godoc
// @Summary      Cancelar el despacho de un pedido completado (repone stock)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.ShipOrderRequest  true  "Fábrica de reposición"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel-shipment [post]
func (h *OrderHandler) CancelShipment(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.CancelShipment(c.Context(), c.Params("id"), in.Factory); err != nil {
		return orderError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Search godoc
// @Summary      Buscar líneas de pedido (trazabilidad por LOT)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        lot       query  string  false  "LOT (substring)"
// @Param        customer  query  string  false  "Cliente"
// @Param        code      query  string  false  "Código de producto"
// @Param        from      query  string  false  "Desde (RFC3339)"
// @Param        to        query  string  false  "Hasta (RFC3339)"
// @Param        completed query  bool    false  "Solo despachados"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderLineDTO
// @Router       /api/orders [get]
func (h *OrderHandler) Search(c *fiber.Ctx) error {
	filter := repository.OrderSearch{
		Lot:           c.Query("lot"),
		Customer:      c.Query("customer"),
		Code:          c.Query("code"),
		CompletedOnly: c.QueryBool("completed", false),
		Limit:         c.QueryInt("limit", 50),
		Offset:        c.QueryInt("offset", 0),
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
	out, err := h.uc.Search(c.Context(), filter)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(out)
}

func orderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidCapacity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
