package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste una nueva identidad de acceso.
func (r *UserRepo) Create(user *entity.AuthUser) error {
	query := `
		INSERT INTO auth_users (id, email, password_hash, name, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.AvatarURL, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert auth user: %w", err)
	}
	return nil
}

// GetByID obtiene una identidad por ID.
func (r *UserRepo) GetByID(id string) (*entity.AuthUser, error) {
	return r.scanOne(`
		SELECT id, email, password_hash, name, avatar_url, created_at
		FROM auth_users WHERE id = $1`, id)
}

// GetByEmail obtiene una identidad por email.
func (r *UserRepo) GetByEmail(email string) (*entity.AuthUser, error) {
	return r.scanOne(`
		SELECT id, email, password_hash, name, avatar_url, created_at
		FROM auth_users WHERE email = $1 LIMIT 1`, email)
}

func (r *UserRepo) scanOne(query string, arg any) (*entity.AuthUser, error) {
	var u entity.AuthUser
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.AvatarURL, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth user: %w", err)
	}
	return &u, nil
}

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo vínculos OAuth sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// GetByProviderAccount busca el vínculo por (provider, provider_account_id).
func (r *AccountRepo) GetByProviderAccount(provider, providerAccountID string) (*entity.OAuthAccount, error) {
	query := `
		SELECT id, user_id, provider, provider_account_id, created_at
		FROM auth_accounts WHERE provider = $1 AND provider_account_id = $2`
	var a entity.OAuthAccount
	err := r.q.QueryRow(context.Background(), query, provider, providerAccountID).Scan(
		&a.ID, &a.UserID, &a.Provider, &a.ProviderAccountID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get oauth account: %w", err)
	}
	return &a, nil
}

// Link inserta el vínculo OAuth. Conflicto con el índice único
// (provider, provider_account_id) es un no-op.
func (r *AccountRepo) Link(userID, provider, providerAccountID string) error {
	query := `
		INSERT INTO auth_accounts (id, user_id, provider, provider_account_id, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (provider, provider_account_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), userID, provider, providerAccountID)
	if err != nil {
		return fmt.Errorf("link oauth account: %w", err)
	}
	return nil
}
