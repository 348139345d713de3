package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. La transición pending→paid ocurre exactamente una vez;
// re-confirmar una orden paid devuelve éxito sin volver a mutar.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
	OrderStatusFailed  = "failed"
)

// CurrencyKRW moneda de todas las órdenes de la tienda.
const CurrencyKRW = "KRW"

// Order intención de compra de una lecture, pendiente o liquidada.
// OrderID es el identificador público ("ord-19-..."), ID es la PK interna.
type Order struct {
	ID             string
	OrderID        string
	TenantID       string
	UserID         string
	Currency       string
	AmountExpected decimal.Decimal
	Status         string
	PaidAt         *time.Time
	LectureID      int
	CreatedAt      time.Time
}

// IsFree indica si la orden no requiere paso por la pasarela.
func (o *Order) IsFree() bool {
	return !o.AmountExpected.GreaterThan(decimal.Zero)
}

// OrderItem línea de una orden: curso comprado.
type OrderItem struct {
	ID       string
	OrderRef string // FK a Order.ID
	CourseID string
}

// Estados de un intento de confirmación en la pasarela.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusFailed = "failed"
)

// Payment registro append-only de un intento de confirmación de la pasarela.
// RawJSON conserva el cuerpo devuelto por el proveedor para conciliación.
type Payment struct {
	ID         string
	Provider   string // "toss"
	OrderRef   string // FK a Order.ID
	PaymentKey string
	Status     string // paid, failed
	ApprovedAt *time.Time
	RawJSON    []byte
	CreatedAt  time.Time
}
