package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/catalog"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// ConfirmPaymentUseCase la ruta crítica del sistema: valida la orden, confirma
// el pago contra la pasarela, registra el intento en el log de payments y
// otorga los accesos a curso.
//
// Una vez escrito el registro paid, los fallos posteriores (update de orden,
// otorgamiento de accesos) se loguean y NO se revierten: el sistema prefiere
// "pago registrado" sobre "acceso otorgado" y asume conciliación manual del
// estado intermedio.
type ConfirmPaymentUseCase struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	accessRepo  repository.CourseAccessRepository
	gateway     ports.PaymentGateway
	log         *logger.Logger
}

// NewConfirmPaymentUseCase construye el caso de uso.
func NewConfirmPaymentUseCase(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	accessRepo repository.CourseAccessRepository,
	gateway ports.PaymentGateway,
	log *logger.Logger,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		accessRepo:  accessRepo,
		gateway:     gateway,
		log:         log,
	}
}

// Confirm procesa el callback de la pasarela.
//
// Orden de validaciones (cada una cierra en corto):
//  1. orden inexistente            → ErrNotFound
//  2. orden ya paid                → éxito idempotente, cero efectos
//  3. estado distinto de pending   → ErrInvalidState
//  4. monto ≠ amount_expected      → ErrAmountMismatch (defensa anti-tamper)
//  5. confirm de la pasarela       → fallo: log failed + *GatewayError
//  6. log paid + orden paid + accesos
func (uc *ConfirmPaymentUseCase) Confirm(ctx context.Context, in dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	if in.PaymentKey == "" || in.OrderID == "" || in.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.orderRepo.GetByOrderID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if order.Status == entity.OrderStatusPaid {
		// Idempotencia: re-confirmar una orden liquidada devuelve OK sin
		// volver a tocar pasarela, payments ni accesos.
		return &dto.ConfirmResponse{OK: true, AlreadyConfirmed: true}, nil
	}
	if order.Status != entity.OrderStatusPending {
		return nil, domain.ErrInvalidState
	}
	if !order.AmountExpected.Equal(decimal.NewFromInt(in.Amount)) {
		return nil, domain.ErrAmountMismatch
	}

	result, err := uc.gateway.Confirm(ctx, ports.ConfirmParams{
		PaymentKey: in.PaymentKey,
		OrderID:    in.OrderID,
		Amount:     in.Amount,
	})
	if err != nil {
		uc.recordAttempt(order, in.PaymentKey, entity.PaymentStatusFailed, nil, rawBody(err))
		return nil, err
	}

	approvedAt := result.ApprovedAt
	if approvedAt.IsZero() {
		approvedAt = time.Now()
	}

	if err := uc.recordAttempt(order, in.PaymentKey, entity.PaymentStatusPaid, &approvedAt, result.Raw); err != nil {
		// Sin registro de pago no hay evidencia del cobro: este sí falla la petición.
		return nil, err
	}

	if err := uc.orderRepo.MarkPaid(order.ID, approvedAt); err != nil {
		uc.log.Error().Err(err).Str("order_id", order.OrderID).
			Msg("pago registrado pero la orden no pasó a paid; requiere conciliación")
		return nil, domain.ErrConflict
	}

	uc.grantAccesses(order)

	return &dto.ConfirmResponse{OK: true, Payment: result.Raw}, nil
}

// recordAttempt escribe una fila append-only en payments.
func (uc *ConfirmPaymentUseCase) recordAttempt(order *entity.Order, paymentKey, status string, approvedAt *time.Time, raw []byte) error {
	err := uc.paymentRepo.Create(&entity.Payment{
		ID:         uuid.New().String(),
		Provider:   "toss",
		OrderRef:   order.ID,
		PaymentKey: paymentKey,
		Status:     status,
		ApprovedAt: approvedAt,
		RawJSON:    raw,
		CreatedAt:  time.Now(),
	})
	if err != nil && status == entity.PaymentStatusFailed {
		// El log de un intento fallido es secundario frente a propagar el
		// error de la pasarela al cliente.
		uc.log.Error().Err(err).Str("order_id", order.OrderID).Msg("intento failed no registrado en payments")
		return nil
	}
	return err
}

// grantAccesses resuelve los cursos comprados (líneas de la orden o, en su
// defecto, el catálogo estático lecture→course) y otorga accesos de 6 meses.
// Fallos aquí no revierten el pago ya registrado.
func (uc *ConfirmPaymentUseCase) grantAccesses(order *entity.Order) {
	courseIDs := uc.resolveCourses(order)
	if len(courseIDs) == 0 {
		uc.log.Warn().Str("order_id", order.OrderID).Int("lecture_id", order.LectureID).
			Msg("orden pagada sin cursos asociados; no se otorgó acceso")
		return
	}

	start := time.Now()
	end := start.AddDate(0, entity.AccessMonths, 0)

	for _, courseID := range courseIDs {
		exists, err := uc.accessRepo.Exists(order.UserID, courseID, order.TenantID)
		if err == nil && exists {
			continue
		}
		err = uc.accessRepo.Grant(&entity.CourseAccess{
			ID:       uuid.New().String(),
			UserID:   order.UserID,
			CourseID: courseID,
			TenantID: order.TenantID,
			StartAt:  start,
			EndAt:    end,
		})
		if err != nil {
			uc.log.Error().Err(err).Str("order_id", order.OrderID).Str("course_id", courseID).
				Msg("acceso a curso no otorgado tras pago confirmado; requiere conciliación")
		}
	}
}

func (uc *ConfirmPaymentUseCase) resolveCourses(order *entity.Order) []string {
	items, err := uc.orderRepo.ListItems(order.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", order.OrderID).Msg("lectura de líneas de orden falló")
	}
	if len(items) > 0 {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.CourseID)
		}
		return ids
	}
	if courseID, ok := catalog.CourseForLecture(order.LectureID); ok {
		return []string{courseID}
	}
	return nil
}

// rawBody extrae el cuerpo del proveedor de un *GatewayError para el log de
// payments; otros errores (red, timeout) quedan sin cuerpo.
func rawBody(err error) []byte {
	if gwErr, ok := err.(*ports.GatewayError); ok {
		return gwErr.Body
	}
	return nil
}
