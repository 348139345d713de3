package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes y sus líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_id, tenant_id, user_id, currency, amount_expected, status, paid_at, lecture_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.OrderID, o.TenantID, o.UserID, o.Currency, o.AmountExpected,
		o.Status, o.PaidAt, o.LectureID, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByOrderID busca por el identificador público ("ord-19-...").
func (r *OrderRepo) GetByOrderID(orderID string) (*entity.Order, error) {
	query := `
		SELECT id, order_id, tenant_id, user_id, currency, amount_expected, status, paid_at, lecture_id, created_at
		FROM orders WHERE order_id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&o.ID, &o.OrderID, &o.TenantID, &o.UserID, &o.Currency, &o.AmountExpected,
		&o.Status, &o.PaidAt, &o.LectureID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// MarkPaid transiciona la orden a paid. El WHERE sobre status garantiza la
// transición única pending→paid: cero filas afectadas es ErrConflict.
func (r *OrderRepo) MarkPaid(id string, paidAt time.Time) error {
	query := `UPDATE orders SET status = $2, paid_at = $3 WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.OrderStatusPaid, paidAt, entity.OrderStatusPending,
	)
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ListItems devuelve las líneas de la orden.
func (r *OrderRepo) ListItems(orderRef string) ([]*entity.OrderItem, error) {
	query := `SELECT id, order_ref, course_id FROM order_items WHERE order_ref = $1`
	rows, err := r.q.Query(context.Background(), query, orderRef)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderRef, &it.CourseID); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Count total de órdenes (health check).
func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}
