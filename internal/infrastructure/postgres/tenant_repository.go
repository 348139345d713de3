package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo tenants y membresías sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// CreateTenant persiste un nuevo workspace.
func (r *TenantRepo) CreateTenant(t *entity.Tenant) error {
	query := `INSERT INTO tenants (id, name, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Name, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// AddMember inserta la membresía. Conflicto con el índice único
// (tenant_id, user_id) es un no-op.
func (r *TenantRepo) AddMember(m *entity.Membership) error {
	query := `
		INSERT INTO tenant_members (id, tenant_id, user_id, email, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, user_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TenantID, m.UserID, m.Email, m.Role, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tenant member: %w", err)
	}
	return nil
}

// FirstMembership devuelve la membresía más antigua del usuario o (nil, nil).
func (r *TenantRepo) FirstMembership(userID string) (*entity.Membership, error) {
	query := `
		SELECT id, tenant_id, user_id, email, role, created_at
		FROM tenant_members WHERE user_id = $1 ORDER BY created_at ASC LIMIT 1`
	var m entity.Membership
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&m.ID, &m.TenantID, &m.UserID, &m.Email, &m.Role, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("first membership: %w", err)
	}
	return &m, nil
}

// MembershipsByUser lista todas las membresías del usuario, más antiguas primero.
func (r *TenantRepo) MembershipsByUser(userID string) ([]*entity.Membership, error) {
	query := `
		SELECT id, tenant_id, user_id, email, role, created_at
		FROM tenant_members WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.TenantID, &m.UserID, &m.Email, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// IsMember indica si el usuario pertenece al tenant.
func (r *TenantRepo) IsMember(tenantID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tenant_members WHERE tenant_id = $1 AND user_id = $2)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, tenantID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}
	return exists, nil
}
