package toss

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/pkg/logger"
)

var _ ports.PaymentGateway = (*Client)(nil)

// Client adaptador REST de Toss Payments. El secret key viaja como usuario de
// Basic auth con contraseña vacía; cada llamada lleva una Idempotency-Key
// fresca (el reintento seguro lo da el flujo, no el header).
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// NewClient construye el cliente contra baseURL (https://api.tosspayments.com
// en producción, un httptest.Server en tests).
func NewClient(baseURL, secretKey string, log *logger.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetBasicAuth(secretKey, "").
		SetHeader("Content-Type", "application/json")
	return &Client{http: http, log: log}
}

type checkoutRequest struct {
	Method     string `json:"method"`
	OrderID    string `json:"orderId"`
	OrderName  string `json:"orderName"`
	Amount     int64  `json:"amount"`
	SuccessURL string `json:"successUrl"`
	FailURL    string `json:"failUrl"`
}

type checkoutResponse struct {
	Checkout struct {
		URL string `json:"url"`
	} `json:"checkout"`
}

// CreateCheckout crea la sesión de pago alojada y devuelve la URL de checkout.
func (c *Client) CreateCheckout(ctx context.Context, p ports.CheckoutParams) (string, error) {
	var out checkoutResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.New().String()).
		SetBody(checkoutRequest{
			Method:     "CARD",
			OrderID:    p.OrderID,
			OrderName:  p.OrderName,
			Amount:     p.Amount,
			SuccessURL: p.SuccessURL,
			FailURL:    p.FailURL,
		}).
		SetResult(&out).
		Post("/v1/payments")
	if err != nil {
		return "", fmt.Errorf("toss create payment: %w", err)
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Str("order_id", p.OrderID).
			Msg("toss rechazó la creación del pago")
		return "", &ports.GatewayError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	if out.Checkout.URL == "" {
		return "", fmt.Errorf("toss create payment: respuesta sin checkout.url")
	}
	return out.Checkout.URL, nil
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

type confirmResponse struct {
	ApprovedAt string `json:"approvedAt"` // RFC3339 con offset, ej. 2024-02-13T12:17:57+09:00
}

// Confirm confirma un pago aprobado por el usuario. El cuerpo crudo del
// proveedor se devuelve tal cual para persistirlo en el log de payments.
func (c *Client) Confirm(ctx context.Context, p ports.ConfirmParams) (*ports.ConfirmResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.New().String()).
		SetBody(confirmRequest{PaymentKey: p.PaymentKey, OrderID: p.OrderID, Amount: p.Amount}).
		Post("/v1/payments/confirm")
	if err != nil {
		return nil, fmt.Errorf("toss confirm payment: %w", err)
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Str("order_id", p.OrderID).
			Msg("toss rechazó la confirmación del pago")
		return nil, &ports.GatewayError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	var out confirmResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("toss confirm payment: decodificar respuesta: %w", err)
	}
	var approvedAt time.Time
	if out.ApprovedAt != "" {
		if t, err := time.Parse(time.RFC3339, out.ApprovedAt); err == nil {
			approvedAt = t
		}
	}
	return &ports.ConfirmResult{ApprovedAt: approvedAt, Raw: resp.Body()}, nil
}
