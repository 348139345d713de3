package entity

import "time"

// AuthUser representa una identidad de acceso (credenciales o cuenta OAuth vinculada).
// PasswordHash queda vacío para usuarios que solo entran por OAuth.
type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	AvatarURL    string
	CreatedAt    time.Time
}

// OAuthAccount vincula una cuenta de proveedor externo (kakao) con un AuthUser.
type OAuthAccount struct {
	ID                string
	UserID            string
	Provider          string // "kakao"
	ProviderAccountID string
	CreatedAt         time.Time
}
