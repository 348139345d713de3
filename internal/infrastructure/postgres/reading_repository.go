package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.ReadingRepository = (*ReadingRepo)(nil)

// ReadingRepo sesiones de lectura saju sobre PostgreSQL (usable con pool o tx).
type ReadingRepo struct {
	q Querier
}

// NewReadingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReadingRepository(q Querier) *ReadingRepo {
	return &ReadingRepo{q: q}
}

// Create persiste una sesión nueva (sin salida todavía).
func (r *ReadingRepo) Create(s *entity.ReadingSession) error {
	query := `
		INSERT INTO saju_sessions (id, tenant_id, user_id, status, input_json, output_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.UserID, s.Status, s.InputJSON, s.OutputJSON, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert saju session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión o (nil, nil).
func (r *ReadingRepo) GetByID(id string) (*entity.ReadingSession, error) {
	query := `
		SELECT id, tenant_id, user_id, status, input_json, output_json, created_at
		FROM saju_sessions WHERE id = $1`
	var s entity.ReadingSession
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.TenantID, &s.UserID, &s.Status, &s.InputJSON, &s.OutputJSON, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get saju session: %w", err)
	}
	return &s, nil
}

// SetOutput actualiza estado y salida de una sesión existente.
func (r *ReadingRepo) SetOutput(id, status string, outputJSON []byte) error {
	query := `UPDATE saju_sessions SET status = $2, output_json = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, outputJSON)
	if err != nil {
		return fmt.Errorf("update saju session: %w", err)
	}
	return nil
}

// ListByTenants pagina las sesiones de los tenants dados, más recientes
// primero, y devuelve el total sin paginar para el mismo filtro.
func (r *ReadingRepo) ListByTenants(tenantIDs []string, f repository.ReadingFilter) ([]*entity.ReadingSession, int, error) {
	where, args := readingWhere(tenantIDs, f.Status, f.From, f.To)

	var total int
	countQuery := `SELECT COUNT(*) FROM saju_sessions ` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count saju sessions: %w", err)
	}

	query := `
		SELECT id, tenant_id, user_id, status, input_json, output_json, created_at
		FROM saju_sessions ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list saju sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReadingSession
	for rows.Next() {
		var s entity.ReadingSession
		if err := rows.Scan(&s.ID, &s.TenantID, &s.UserID, &s.Status, &s.InputJSON, &s.OutputJSON, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan saju session: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// CountByTenants cuenta sesiones; status vacío = todas, from acota created_at.
func (r *ReadingRepo) CountByTenants(tenantIDs []string, status string, from *time.Time) (int, error) {
	where, args := readingWhere(tenantIDs, status, from, nil)
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM saju_sessions `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count saju sessions: %w", err)
	}
	return n, nil
}

// readingWhere arma la cláusula WHERE compartida por listado y contadores.
func readingWhere(tenantIDs []string, status string, from, to *time.Time) (string, []any) {
	conds := []string{"tenant_id = ANY($1)"}
	args := []any{tenantIDs}
	if status != "" {
		args = append(args, status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if from != nil {
		args = append(args, *from)
		conds = append(conds, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if to != nil {
		args = append(args, *to)
		conds = append(conds, "created_at <= $"+strconv.Itoa(len(args)))
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
