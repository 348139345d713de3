package entity

import "time"

// Roles válidos para Profile.
const (
	ProfileRoleAdmin = "ADMIN"
	ProfileRoleUser  = "USER"
)

// Profile datos visibles de un usuario (1:1 con AuthUser, mismo ID).
// Lo mutan el bootstrap de auth y la gestión de miembros del admin.
type Profile struct {
	ID          string
	Email       string
	Name        string
	PhoneNumber string
	Role        string // ADMIN, USER o vacío (perfil legacy sin rol)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin indica si el perfil tiene rol de administrador.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == ProfileRoleAdmin
}
