package repository

import "github.com/jhoicas/academy-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para AuthUser (DIP).
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(user *entity.AuthUser) error
	GetByID(id string) (*entity.AuthUser, error)
	GetByEmail(email string) (*entity.AuthUser, error)
}

// AccountRepository vínculos OAuth (auth_accounts).
type AccountRepository interface {
	GetByProviderAccount(provider, providerAccountID string) (*entity.OAuthAccount, error)
	// Link inserta el vínculo; si ya existe (conflicto único) es un no-op.
	Link(userID, provider, providerAccountID string) error
}
