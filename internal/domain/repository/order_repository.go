package repository

import (
	"time"

	"github.com/jhoicas/academy-api/internal/domain/entity"
)

// LectureRepository catálogo de lectures en venta.
type LectureRepository interface {
	GetByID(id int) (*entity.Lecture, error)
}

// OrderRepository órdenes y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	// GetByOrderID busca por el identificador público ("ord-19-...").
	GetByOrderID(orderID string) (*entity.Order, error)
	// MarkPaid transiciona la orden a paid con su timestamp de aprobación.
	MarkPaid(id string, paidAt time.Time) error
	ListItems(orderRef string) ([]*entity.OrderItem, error)
	// Count total de órdenes (health check).
	Count() (int, error)
}

// PaymentRepository log append-only de intentos de confirmación.
type PaymentRepository interface {
	Create(p *entity.Payment) error
}

// CourseAccessRepository accesos a cursos otorgados.
type CourseAccessRepository interface {
	Exists(userID, courseID, tenantID string) (bool, error)
	// Grant inserta el acceso; conflicto con el índice único
	// (user_id, course_id, tenant_id) es un no-op.
	Grant(a *entity.CourseAccess) error
}
