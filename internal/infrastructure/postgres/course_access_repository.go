package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.CourseAccessRepository = (*CourseAccessRepo)(nil)

// CourseAccessRepo accesos a curso sobre PostgreSQL (usable con pool o tx).
type CourseAccessRepo struct {
	q Querier
}

// NewCourseAccessRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCourseAccessRepository(q Querier) *CourseAccessRepo {
	return &CourseAccessRepo{q: q}
}

// Exists indica si el usuario ya tiene acceso al curso en el tenant.
func (r *CourseAccessRepo) Exists(userID, courseID, tenantID string) (bool, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM course_access
		WHERE user_id = $1 AND course_id = $2 AND tenant_id = $3)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, userID, courseID, tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("course access exists: %w", err)
	}
	return exists, nil
}

// Grant inserta el acceso. Conflicto con el índice único
// (user_id, course_id, tenant_id) es un no-op: el acceso vigente no se extiende.
func (r *CourseAccessRepo) Grant(a *entity.CourseAccess) error {
	query := `
		INSERT INTO course_access (id, user_id, course_id, tenant_id, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, course_id, tenant_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UserID, a.CourseID, a.TenantID, a.StartAt, a.EndAt,
	)
	if err != nil {
		return fmt.Errorf("grant course access: %w", err)
	}
	return nil
}
