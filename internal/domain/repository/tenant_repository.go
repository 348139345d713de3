package repository

import "github.com/jhoicas/academy-api/internal/domain/entity"

// TenantRepository tenants y membresías.
type TenantRepository interface {
	CreateTenant(tenant *entity.Tenant) error
	// AddMember inserta la membresía; conflicto con el índice único
	// (tenant_id, user_id) es un no-op.
	AddMember(m *entity.Membership) error
	// FirstMembership devuelve la primera membresía del usuario o (nil, nil).
	FirstMembership(userID string) (*entity.Membership, error)
	MembershipsByUser(userID string) ([]*entity.Membership, error)
	IsMember(tenantID, userID string) (bool, error)
}
