package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/billing"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
)

// OrderHandler creación de órdenes y comprobante PDF.
type OrderHandler struct {
	createUC  *billing.CreateOrderUseCase
	receiptUC *billing.ReceiptUseCase
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(createUC *billing.CreateOrderUseCase, receiptUC *billing.ReceiptUseCase) *OrderHandler {
	return &OrderHandler{createUC: createUC, receiptUC: receiptUC}
}

// Init godoc
// @Summary      Crear orden de compra de una lecture
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "lectureId, amount opcional"
// @Success      200   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/init [post]
// @Security     BearerAuth
func (h *OrderHandler) Init(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateOrder(GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lectureId inválido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LECTURE_NOT_FOUND", Message: "la lecture no existe"})
		}
		if errors.Is(err, domain.ErrConfigMissing) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "TENANT_MISSING", Message: "ORDERS_TENANT_ID no configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de una orden liquidada
// @Tags         orders
// @Produce      application/pdf
// @Param        orderId  path  string  true  "identificador público de la orden"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{orderId}/receipt [get]
// @Security     BearerAuth
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receiptUC.GenerateReceipt(c.UserContext(), GetUserID(c), c.Params("orderId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "la orden no existe"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la orden pertenece a otro usuario"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la orden no está pagada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+c.Params("orderId")+`.pdf"`)
	return c.Send(pdfBytes)
}
