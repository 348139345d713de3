package billing

import (
	"context"

	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

// ReceiptPDFGenerator puerto de generación del comprobante en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, order *entity.Order, lecture *entity.Lecture) ([]byte, error)
}

// ReceiptUseCase comprobante de pago descargable de una orden liquidada.
type ReceiptUseCase struct {
	orderRepo   repository.OrderRepository
	lectureRepo repository.LectureRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orderRepo repository.OrderRepository, lectureRepo repository.LectureRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, lectureRepo: lectureRepo, generator: generator}
}

// GenerateReceipt genera el PDF para el dueño de una orden paid.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, userID, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if order.Status != entity.OrderStatusPaid {
		return nil, domain.ErrInvalidState
	}

	lecture, err := uc.lectureRepo.GetByID(order.LectureID)
	if err != nil {
		return nil, err
	}

	return uc.generator.GenerateReceiptPDF(ctx, order, lecture)
}
