package dto

import "time"

// MemberResponse fila de la vista de gestión de miembros (perfil).
type MemberResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateMemberRequest edición de un perfil desde el admin (last write wins).
type UpdateMemberRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}
