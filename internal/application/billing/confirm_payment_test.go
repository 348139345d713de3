package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academy-api/internal/application/billing"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/catalog"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/pkg/logger"
)

type confirmFixture struct {
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
	access   *fakeAccessRepo
	gateway  *fakeGateway
	uc       *billing.ConfirmPaymentUseCase
}

func newConfirmFixture() *confirmFixture {
	f := &confirmFixture{
		orders:   newFakeOrderRepo(),
		payments: &fakePaymentRepo{},
		access:   newFakeAccessRepo(),
		gateway:  &fakeGateway{},
	}
	f.uc = billing.NewConfirmPaymentUseCase(f.orders, f.payments, f.access, f.gateway, logger.Nop())
	return f
}

func confirmReq(orderID string, amount int64) dto.ConfirmRequest {
	return dto.ConfirmRequest{PaymentKey: "pk_test_abc", OrderID: orderID, Amount: amount}
}

func TestConfirm_PagoExitoso_RegistraPagoYOtorgaAcceso(t *testing.T) {
	f := newConfirmFixture()
	f.orders.orders["ord-19-x-aa"] = pendingOrder("ord-19-x-aa", 55000)
	approvedAt := time.Date(2026, 2, 13, 12, 17, 57, 0, time.UTC)
	f.gateway.confirmResult = &ports.ConfirmResult{
		ApprovedAt: approvedAt,
		Raw:        []byte(`{"paymentKey":"pk_test_abc","status":"DONE"}`),
	}

	out, err := f.uc.Confirm(context.Background(), confirmReq("ord-19-x-aa", 55000))
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.False(t, out.AlreadyConfirmed)
	assert.NotEmpty(t, out.Payment)

	// Log de payments con el cuerpo crudo del proveedor
	require.Len(t, f.payments.created, 1)
	p := f.payments.created[0]
	assert.Equal(t, "toss", p.Provider)
	assert.Equal(t, entity.PaymentStatusPaid, p.Status)
	require.NotNil(t, p.ApprovedAt)
	assert.True(t, p.ApprovedAt.Equal(approvedAt))
	assert.JSONEq(t, `{"paymentKey":"pk_test_abc","status":"DONE"}`, string(p.RawJSON))

	// Transición pending→paid
	require.Len(t, f.orders.markPaid, 1)
	assert.Equal(t, entity.OrderStatusPaid, f.orders.orders["ord-19-x-aa"].Status)

	// Acceso de 6 meses al curso mapeado por catálogo (lecture 19)
	require.Len(t, f.access.granted, 1)
	a := f.access.granted[0]
	assert.Equal(t, catalog.CourseAISaju, a.CourseID)
	assert.Equal(t, testUserID, a.UserID)
	assert.Equal(t, testTenantID, a.TenantID)
	assert.WithinDuration(t, a.StartAt.AddDate(0, 6, 0), a.EndAt, time.Second)
}

func TestConfirm_LineasDeOrdenPisanElCatalogo(t *testing.T) {
	f := newConfirmFixture()
	o := pendingOrder("ord-19-x-ab", 55000)
	f.orders.orders[o.OrderID] = o
	f.orders.items[o.ID] = []*entity.OrderItem{
		{ID: "it-1", OrderRef: o.ID, CourseID: "course-a"},
		{ID: "it-2", OrderRef: o.ID, CourseID: "course-b"},
	}
	f.gateway.confirmResult = &ports.ConfirmResult{Raw: []byte(`{}`)}

	_, err := f.uc.Confirm(context.Background(), confirmReq(o.OrderID, 55000))
	require.NoError(t, err)

	require.Len(t, f.access.granted, 2)
	assert.Equal(t, "course-a", f.access.granted[0].CourseID)
	assert.Equal(t, "course-b", f.access.granted[1].CourseID)
}

func TestConfirm_OrdenYaPagada_EsIdempotenteSinEfectos(t *testing.T) {
	f := newConfirmFixture()
	o := pendingOrder("ord-19-x-ac", 55000)
	o.Status = entity.OrderStatusPaid
	f.orders.orders[o.OrderID] = o

	out, err := f.uc.Confirm(context.Background(), confirmReq(o.OrderID, 55000))
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.True(t, out.AlreadyConfirmed)

	// Cero efectos: ni pasarela, ni payments, ni accesos
	assert.Empty(t, f.gateway.confirmCalls)
	assert.Empty(t, f.payments.created)
	assert.Empty(t, f.access.granted)
}

func TestConfirm_MontoNoCoincide_RetornaAmountMismatchSinTocarNada(t *testing.T) {
	f := newConfirmFixture()
	f.orders.orders["ord-19-x-ad"] = pendingOrder("ord-19-x-ad", 55000)

	_, err := f.uc.Confirm(context.Background(), confirmReq("ord-19-x-ad", 1000))
	assert.ErrorIs(t, err, domain.ErrAmountMismatch)

	assert.Empty(t, f.gateway.confirmCalls, "la pasarela no se consulta con monto adulterado")
	assert.Equal(t, entity.OrderStatusPending, f.orders.orders["ord-19-x-ad"].Status,
		"la orden sigue pending tras el mismatch")
}

func TestConfirm_EstadoFailed_RetornaInvalidState(t *testing.T) {
	f := newConfirmFixture()
	o := pendingOrder("ord-19-x-ae", 55000)
	o.Status = entity.OrderStatusFailed
	f.orders.orders[o.OrderID] = o

	_, err := f.uc.Confirm(context.Background(), confirmReq(o.OrderID, 55000))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestConfirm_OrdenInexistente_RetornaNotFound(t *testing.T) {
	f := newConfirmFixture()
	_, err := f.uc.Confirm(context.Background(), confirmReq("ord-no-existe", 55000))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirm_EntradaIncompleta_RetornaInvalidInput(t *testing.T) {
	f := newConfirmFixture()

	_, err := f.uc.Confirm(context.Background(), dto.ConfirmRequest{OrderID: "x", Amount: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin paymentKey")

	_, err = f.uc.Confirm(context.Background(), dto.ConfirmRequest{PaymentKey: "pk", OrderID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin amount")
}

func TestConfirm_PasarelaRechaza_RegistraIntentoFailedYPropaga(t *testing.T) {
	f := newConfirmFixture()
	f.orders.orders["ord-19-x-af"] = pendingOrder("ord-19-x-af", 55000)
	gwErr := &ports.GatewayError{StatusCode: 400, Body: []byte(`{"code":"NOT_FOUND_PAYMENT"}`)}
	f.gateway.confirmErr = gwErr

	_, err := f.uc.Confirm(context.Background(), confirmReq("ord-19-x-af", 55000))
	var got *ports.GatewayError
	require.ErrorAs(t, err, &got, "el error del proveedor se propaga con status y cuerpo")
	assert.Equal(t, 400, got.StatusCode)

	// El intento queda en el log de payments como failed con el cuerpo crudo
	require.Len(t, f.payments.created, 1)
	p := f.payments.created[0]
	assert.Equal(t, entity.PaymentStatusFailed, p.Status)
	assert.JSONEq(t, `{"code":"NOT_FOUND_PAYMENT"}`, string(p.RawJSON))

	assert.Equal(t, entity.OrderStatusPending, f.orders.orders["ord-19-x-af"].Status)
	assert.Empty(t, f.access.granted)
}

func TestConfirm_MarkPaidFalla_RetornaConflictConPagoRegistrado(t *testing.T) {
	// Carrera: otro proceso liquidó la orden entre la lectura y el update.
	f := newConfirmFixture()
	f.orders.orders["ord-19-x-ag"] = pendingOrder("ord-19-x-ag", 55000)
	f.orders.markErr = domain.ErrConflict
	f.gateway.confirmResult = &ports.ConfirmResult{Raw: []byte(`{}`)}

	_, err := f.uc.Confirm(context.Background(), confirmReq("ord-19-x-ag", 55000))
	assert.ErrorIs(t, err, domain.ErrConflict)

	// La evidencia del cobro sí quedó escrita
	require.Len(t, f.payments.created, 1)
	assert.Equal(t, entity.PaymentStatusPaid, f.payments.created[0].Status)
}

func TestConfirm_FalloAlOtorgarAcceso_NoFallaLaConfirmacion(t *testing.T) {
	f := newConfirmFixture()
	f.orders.orders["ord-19-x-ah"] = pendingOrder("ord-19-x-ah", 55000)
	f.gateway.confirmResult = &ports.ConfirmResult{Raw: []byte(`{}`)}
	f.access.grantErr = assert.AnError

	out, err := f.uc.Confirm(context.Background(), confirmReq("ord-19-x-ah", 55000))
	require.NoError(t, err, "el pago ya está registrado; el fallo de acceso se concilia aparte")
	assert.True(t, out.OK)
	assert.Equal(t, entity.OrderStatusPaid, f.orders.orders["ord-19-x-ah"].Status)
}

func TestConfirm_AccesoExistente_NoSeVuelveAOtorgar(t *testing.T) {
	f := newConfirmFixture()
	f.orders.orders["ord-19-x-ai"] = pendingOrder("ord-19-x-ai", 55000)
	f.gateway.confirmResult = &ports.ConfirmResult{Raw: []byte(`{}`)}
	f.access.existing[accessKey(testUserID, catalog.CourseAISaju, testTenantID)] = true

	_, err := f.uc.Confirm(context.Background(), confirmReq("ord-19-x-ai", 55000))
	require.NoError(t, err)
	assert.Empty(t, f.access.granted, "el acceso vigente no se extiende ni se duplica")
}
