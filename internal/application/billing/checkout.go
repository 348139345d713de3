package billing

import (
	"context"

	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

// CheckoutConfig URLs de callback fijas de la pasarela.
type CheckoutConfig struct {
	SuccessURL string
	FailURL    string
}

// CheckoutUseCase crea la sesión de pago alojada para una orden pending.
// El monto enviado a la pasarela sale SIEMPRE de la orden persistida.
type CheckoutUseCase struct {
	orderRepo repository.OrderRepository
	gateway   ports.PaymentGateway
	cfg       CheckoutConfig
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(orderRepo repository.OrderRepository, gateway ports.PaymentGateway, cfg CheckoutConfig) *CheckoutUseCase {
	return &CheckoutUseCase{orderRepo: orderRepo, gateway: gateway, cfg: cfg}
}

// CreateCheckout valida la orden y pide la URL del checkout a la pasarela.
// Los errores del proveedor se propagan como *ports.GatewayError para que el
// handler conserve status y cuerpo originales.
func (uc *CheckoutUseCase) CreateCheckout(ctx context.Context, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if in.OrderID == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cfg.SuccessURL == "" || uc.cfg.FailURL == "" {
		return nil, domain.ErrConfigMissing
	}

	order, err := uc.orderRepo.GetByOrderID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrInvalidState
	}

	checkoutURL, err := uc.gateway.CreateCheckout(ctx, ports.CheckoutParams{
		OrderID:    order.OrderID,
		OrderName:  "강의 결제",
		Amount:     order.AmountExpected.IntPart(),
		SuccessURL: uc.cfg.SuccessURL,
		FailURL:    uc.cfg.FailURL,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{CheckoutURL: checkoutURL}, nil
}

// CreateDirectCheckout sesión de pago fija para probar la integración sin
// pasar por el flujo de órdenes.
func (uc *CheckoutUseCase) CreateDirectCheckout(ctx context.Context) (*dto.CheckoutResponse, error) {
	if uc.cfg.SuccessURL == "" || uc.cfg.FailURL == "" {
		return nil, domain.ErrConfigMissing
	}
	checkoutURL, err := uc.gateway.CreateCheckout(ctx, ports.CheckoutParams{
		OrderID:    "demo-ORDER-0001",
		OrderName:  "강의 결제 (스모크 테스트)",
		Amount:     55000,
		SuccessURL: uc.cfg.SuccessURL,
		FailURL:    uc.cfg.FailURL,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{CheckoutURL: checkoutURL}, nil
}
