package tenant

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/logger"
)

// BootstrapUseCase garantiza que todo usuario tenga al menos un workspace:
// devuelve su primera membresía o crea tenant + membresía OWNER.
//
// La creación NO es transaccional: si el insert de la membresía falla puede
// quedar un tenant huérfano (riesgo asumido y documentado). La unicidad de la
// membresía sí la garantiza el índice único (tenant_id, user_id) en DB, así
// que un reintento nunca duplica el "primer tenant".
type BootstrapUseCase struct {
	tenantRepo repository.TenantRepository
	log        *logger.Logger
}

// NewBootstrapUseCase construye el caso de uso.
func NewBootstrapUseCase(tenantRepo repository.TenantRepository, log *logger.Logger) *BootstrapUseCase {
	return &BootstrapUseCase{tenantRepo: tenantRepo, log: log}
}

// EnsureMembership devuelve la primera membresía del usuario, creando el
// workspace inicial si no existe ninguna. displayName alimenta el nombre del
// workspace; si está vacío se usa la parte local del email.
func (uc *BootstrapUseCase) EnsureMembership(userID, email, displayName string) (*entity.Membership, error) {
	existing, err := uc.tenantRepo.FirstMembership(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	t := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      WorkspaceName(displayName, email),
		CreatedAt: now,
	}
	if err := uc.tenantRepo.CreateTenant(t); err != nil {
		return nil, err
	}

	m := &entity.Membership{
		ID:        uuid.New().String(),
		TenantID:  t.ID,
		UserID:    userID,
		Email:     email,
		Role:      entity.MemberRoleOwner,
		CreatedAt: now,
	}
	if err := uc.tenantRepo.AddMember(m); err != nil {
		// El tenant ya insertado queda huérfano; se loguea para conciliación manual.
		uc.log.Error().Err(err).Str("tenant_id", t.ID).Str("user_id", userID).
			Msg("membresía OWNER no insertada tras crear el tenant")
		return nil, err
	}

	uc.log.Info().Str("tenant_id", t.ID).Str("user_id", userID).Msg("tenant y membresía creados")
	return m, nil
}

// WorkspaceName arma el nombre del workspace inicial: "<base> 워크스페이스".
func WorkspaceName(displayName, email string) string {
	base := strings.TrimSpace(displayName)
	if base == "" && email != "" {
		if at := strings.Index(email, "@"); at > 0 {
			base = email[:at]
		}
	}
	if base == "" {
		base = "내"
	}
	return base + " 워크스페이스"
}
