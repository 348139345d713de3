package entity

import "time"

// Roles válidos para Membership.
const (
	MemberRoleOwner = "OWNER"
	MemberRoleAdmin = "ADMIN"
	MemberRoleUser  = "USER"
)

// Tenant es un workspace aislado que agrupa usuarios.
// Se crea uno por usuario nuevo salvo que ya sea miembro de alguno.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Membership rol de un usuario dentro de un tenant.
// La unicidad (tenant_id, user_id) la garantiza un índice único en DB.
type Membership struct {
	ID        string
	TenantID  string
	UserID    string
	Email     string
	Role      string // OWNER, ADMIN, USER
	CreatedAt time.Time
}
