package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/billing"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/domain"
)

// PaymentHandler integración con la pasarela Toss: creación de checkout y
// confirmación de pagos.
type PaymentHandler struct {
	checkoutUC *billing.CheckoutUseCase
	confirmUC  *billing.ConfirmPaymentUseCase
}

// NewPaymentHandler construye el handler de pagos.
func NewPaymentHandler(checkoutUC *billing.CheckoutUseCase, confirmUC *billing.ConfirmPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{checkoutUC: checkoutUC, confirmUC: confirmUC}
}

// gatewayPassthrough los rechazos del proveedor conservan su status y cuerpo
// originales para que el cliente vea el error real de Toss.
func gatewayPassthrough(c *fiber.Ctx, err error) (bool, error) {
	var gwErr *ports.GatewayError
	if !errors.As(err, &gwErr) {
		return false, nil
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return true, c.Status(gwErr.StatusCode).Send(gwErr.Body)
}

// Create godoc
// @Summary      Crear sesión de pago Toss para una orden
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "orderId"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/toss/create [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.checkoutUC.CreateCheckout(c.UserContext(), in)
	if err != nil {
		if handled, sendErr := gatewayPassthrough(c, err); handled {
			return sendErr
		}
		return h.mapCheckoutError(c, err)
	}
	return c.JSON(out)
}

// CreateDirect godoc
// @Summary      Checkout fijo de prueba de integración
// @Tags         payments
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/payments/toss/create-direct [post]
func (h *PaymentHandler) CreateDirect(c *fiber.Ctx) error {
	out, err := h.checkoutUC.CreateDirectCheckout(c.UserContext())
	if err != nil {
		if handled, sendErr := gatewayPassthrough(c, err); handled {
			return sendErr
		}
		return h.mapCheckoutError(c, err)
	}
	return c.JSON(out)
}

func (h *PaymentHandler) mapCheckoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "orderId es requerido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "la orden no existe"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la orden no está pendiente"})
	case errors.Is(err, domain.ErrConfigMissing):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIG_MISSING", Message: "pasarela no configurada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Confirm godoc
// @Summary      Confirmar un pago aprobado
// @Description  Ruta crítica: valida la orden, confirma contra Toss, registra el pago y otorga accesos.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmRequest  true  "paymentKey, orderId, amount"
// @Success      200   {object}  dto.ConfirmResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/toss/confirm [post]
func (h *PaymentHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.confirmUC.Confirm(c.UserContext(), in)
	if err != nil {
		if handled, sendErr := gatewayPassthrough(c, err); handled {
			return sendErr
		}
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paymentKey, orderId y amount son requeridos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "la orden no existe"})
		case errors.Is(err, domain.ErrAmountMismatch):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "AMOUNT_MISMATCH", Message: "el monto no coincide con la orden"})
		case errors.Is(err, domain.ErrInvalidState):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "la orden no admite confirmación"})
		case errors.Is(err, domain.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto al liquidar la orden"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(out)
}
