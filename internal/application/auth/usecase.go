package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthTxRunner ejecuta una función con los repos de identidad atados a una
// misma transacción (registro: auth_users + profiles o todo o nada).
type AuthTxRunner interface {
	RunAuth(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación con credenciales: registro y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	txRunner    AuthTxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	txRunner AuthTxRunner,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, profileRepo: profileRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste identidad y
// perfil USER en una sola transacción. Devuelve ErrEmailAlreadyExists si el
// email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.AuthUser{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		CreatedAt:    now,
	}
	profile := &entity.Profile{
		ID:        user.ID,
		Email:     email,
		Name:      in.Name,
		Role:      entity.ProfileRoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.RunAuth(ctx, func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
	) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return profileRepo.Upsert(profile)
	})
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      profile.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifica email/password, genera JWT con el rol del perfil y retorna
// token + usuario. Credenciales malas devuelven ErrUnauthorized sin
// distinguir usuario inexistente de password incorrecto.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	role := ""
	if profile, err := uc.profileRepo.GetByID(user.ID); err == nil && profile != nil {
		role = profile.Role
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      role,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
