package billing_test

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de billing
// ──────────────────────────────────────────────────────────────────────────────

type fakeLectureRepo struct {
	lectures map[int]*entity.Lecture
}

func (f *fakeLectureRepo) GetByID(id int) (*entity.Lecture, error) {
	return f.lectures[id], nil
}

type fakeOrderRepo struct {
	orders    map[string]*entity.Order // por OrderID público
	items     map[string][]*entity.OrderItem
	created   []*entity.Order
	markPaid  []string
	createErr error
	markErr   error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]*entity.Order{},
		items:  map[string][]*entity.OrderItem{},
	}
}

func (f *fakeOrderRepo) Create(order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, order)
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderRepo) GetByOrderID(orderID string) (*entity.Order, error) {
	return f.orders[orderID], nil
}

func (f *fakeOrderRepo) MarkPaid(id string, paidAt time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markPaid = append(f.markPaid, id)
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = entity.OrderStatusPaid
			o.PaidAt = &paidAt
		}
	}
	return nil
}

func (f *fakeOrderRepo) ListItems(orderRef string) ([]*entity.OrderItem, error) {
	return f.items[orderRef], nil
}

func (f *fakeOrderRepo) Count() (int, error) {
	return len(f.orders), nil
}

type fakePaymentRepo struct {
	created   []*entity.Payment
	createErr error
}

func (f *fakePaymentRepo) Create(p *entity.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

type fakeAccessRepo struct {
	existing map[string]bool // userID|courseID|tenantID
	granted  []*entity.CourseAccess
	grantErr error
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{existing: map[string]bool{}}
}

func accessKey(userID, courseID, tenantID string) string {
	return userID + "|" + courseID + "|" + tenantID
}

func (f *fakeAccessRepo) Exists(userID, courseID, tenantID string) (bool, error) {
	return f.existing[accessKey(userID, courseID, tenantID)], nil
}

func (f *fakeAccessRepo) Grant(a *entity.CourseAccess) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.granted = append(f.granted, a)
	f.existing[accessKey(a.UserID, a.CourseID, a.TenantID)] = true
	return nil
}

type fakeGateway struct {
	checkoutURL   string
	checkoutErr   error
	checkoutCalls []ports.CheckoutParams
	confirmResult *ports.ConfirmResult
	confirmErr    error
	confirmCalls  []ports.ConfirmParams
}

func (f *fakeGateway) CreateCheckout(_ context.Context, p ports.CheckoutParams) (string, error) {
	f.checkoutCalls = append(f.checkoutCalls, p)
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.checkoutURL, nil
}

func (f *fakeGateway) Confirm(_ context.Context, p ports.ConfirmParams) (*ports.ConfirmResult, error) {
	f.confirmCalls = append(f.confirmCalls, p)
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	if f.confirmResult != nil {
		return f.confirmResult, nil
	}
	return nil, errors.New("fakeGateway: sin resultado configurado")
}
