package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GatewayError error devuelto por la pasarela con su status HTTP y cuerpo
// originales, para que el handler los pase al cliente sin traducir.
type GatewayError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("pasarela HTTP %d: %s", e.StatusCode, string(e.Body))
}

// CheckoutParams parámetros para crear la sesión de pago alojada.
// El monto sale SIEMPRE de la orden persistida, nunca del cliente.
type CheckoutParams struct {
	OrderID    string
	OrderName  string
	Amount     int64 // KRW, sin decimales
	SuccessURL string
	FailURL    string
}

// ConfirmParams parámetros de la confirmación de un pago aprobado.
type ConfirmParams struct {
	PaymentKey string
	OrderID    string
	Amount     int64
}

// ConfirmResult pago confirmado: timestamp de aprobación y cuerpo crudo del
// proveedor (se persiste en el log de payments para conciliación).
type ConfirmResult struct {
	ApprovedAt time.Time
	Raw        json.RawMessage
}

// PaymentGateway puerto de salida hacia la pasarela de pagos.
// Cada llamada usa una Idempotency-Key fresca; los errores del proveedor se
// devuelven como *GatewayError.
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, p CheckoutParams) (checkoutURL string, err error)
	Confirm(ctx context.Context, p ConfirmParams) (*ConfirmResult, error)
}
