package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lecture entrada del catálogo de clases en venta. Price en KRW; un precio
// cero o negativo significa acceso gratuito (la orden se liquida sin pasarela).
type Lecture struct {
	ID        int
	Title     string
	Price     decimal.Decimal
	CreatedAt time.Time
}

// AccessMonths vigencia por defecto (en meses) de un acceso otorgado tras el pago.
const AccessMonths = 6

// CourseAccess derecho de acceso de un usuario a un curso, acotado en el tiempo.
// La unicidad (user_id, course_id, tenant_id) la garantiza un índice único en DB.
type CourseAccess struct {
	ID       string
	UserID   string
	CourseID string
	TenantID string
	StartAt  time.Time
	EndAt    time.Time
}
