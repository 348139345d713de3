package dto

import "encoding/json"

// CheckoutRequest entrada para crear la sesión de pago en la pasarela.
type CheckoutRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// CheckoutResponse URL del checkout alojado por la pasarela.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// ConfirmRequest parámetros del callback de redirección de la pasarela.
type ConfirmRequest struct {
	PaymentKey string `json:"paymentKey" validate:"required"`
	OrderID    string `json:"orderId" validate:"required"`
	Amount     int64  `json:"amount" validate:"required,gt=0"`
}

// ConfirmResponse resultado de la confirmación. AlreadyConfirmed marca la
// respuesta idempotente de una orden ya liquidada; Payment lleva el cuerpo
// crudo del proveedor en confirmaciones nuevas.
type ConfirmResponse struct {
	OK               bool            `json:"ok"`
	AlreadyConfirmed bool            `json:"alreadyConfirmed,omitempty"`
	Payment          json.RawMessage `json:"payment,omitempty"`
}
