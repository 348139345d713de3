package billing

import (
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// CreateOrderUseCase crea la orden de compra de una lecture. El precio final
// lo decide el servidor: monto del cliente si es positivo (promoción aplicada
// en la vista), si no el precio de catálogo. Las órdenes gratuitas (monto ≤ 0)
// se liquidan en el acto sin pasar por la pasarela.
type CreateOrderUseCase struct {
	lectureRepo repository.LectureRepository
	orderRepo   repository.OrderRepository
	tenantID    string // ORDERS_TENANT_ID; vacío => ErrConfigMissing por petición
	log         *logger.Logger
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	lectureRepo repository.LectureRepository,
	orderRepo repository.OrderRepository,
	tenantID string,
	log *logger.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{lectureRepo: lectureRepo, orderRepo: orderRepo, tenantID: tenantID, log: log}
}

// CreateOrder valida la lecture, calcula el monto y persiste la orden en
// pending (o paid si es gratuita).
func (uc *CreateOrderUseCase) CreateOrder(userID string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if in.LectureID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if uc.tenantID == "" {
		return nil, domain.ErrConfigMissing
	}

	lecture, err := uc.lectureRepo.GetByID(in.LectureID)
	if err != nil {
		return nil, err
	}
	if lecture == nil {
		return nil, domain.ErrNotFound
	}

	amount := lecture.Price
	if in.Amount > 0 {
		amount = decimal.NewFromInt(in.Amount)
	}
	isFree := !amount.GreaterThan(decimal.Zero)
	if isFree {
		amount = decimal.Zero
	}

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		OrderID:        NewOrderID(in.LectureID, now),
		TenantID:       uc.tenantID,
		UserID:         userID,
		Currency:       entity.CurrencyKRW,
		AmountExpected: amount,
		Status:         entity.OrderStatusPending,
		LectureID:      in.LectureID,
		CreatedAt:      now,
	}
	if isFree {
		order.Status = entity.OrderStatusPaid
		order.PaidAt = &now
	}

	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", order.OrderID).Int("lecture_id", in.LectureID).
		Bool("free", isFree).Msg("orden creada")

	if isFree {
		return &dto.CreateOrderResponse{
			OK:       true,
			OrderID:  order.OrderID,
			Free:     true,
			Redirect: "/payment/success?orderId=" + url.QueryEscape(order.OrderID) + "&amount=0",
		}, nil
	}
	return &dto.CreateOrderResponse{
		OK:      true,
		OrderID: order.OrderID,
		Amount:  amount.IntPart(),
		Title:   lecture.Title,
	}, nil
}
