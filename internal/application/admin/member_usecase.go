package admin

import (
	"strings"
	"time"

	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/logger"
)

// MemberExporter serializa una lista de perfiles a un libro XLSX.
type MemberExporter interface {
	Export(members []dto.MemberResponse) ([]byte, error)
}

// MemberUseCase gestión de miembros del panel admin. Toda operación verifica
// el rol ADMIN del caller contra la base, no contra el claim del token.
type MemberUseCase struct {
	profileRepo repository.ProfileRepository
	exporter    MemberExporter
	log         *logger.Logger
}

// NewMemberUseCase construye el caso de uso.
func NewMemberUseCase(profileRepo repository.ProfileRepository, exporter MemberExporter, log *logger.Logger) *MemberUseCase {
	return &MemberUseCase{profileRepo: profileRepo, exporter: exporter, log: log}
}

// requireAdmin relee el perfil del caller; el rol del JWT puede estar
// desactualizado tras una degradación.
func (uc *MemberUseCase) requireAdmin(callerID string) error {
	caller, err := uc.profileRepo.GetByID(callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

// List devuelve los perfiles filtrados por búsqueda libre (nombre, email o
// teléfono) y por rol. El filtrado corre en memoria: la tabla de perfiles es
// pequeña y el listado admin ya la trae completa.
func (uc *MemberUseCase) List(callerID, query, role string) ([]dto.MemberResponse, error) {
	if err := uc.requireAdmin(callerID); err != nil {
		return nil, err
	}

	profiles, err := uc.profileRepo.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]dto.MemberResponse, 0, len(profiles))
	for _, p := range profiles {
		if role != "" && p.Role != role {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, toMemberResponse(p))
	}
	return out, nil
}

// Update aplica la edición del admin sobre el perfil (last write wins).
// Los campos vacíos del request conservan el valor actual.
func (uc *MemberUseCase) Update(callerID, memberID string, in dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	if err := uc.requireAdmin(callerID); err != nil {
		return nil, err
	}
	if in.Role != "" && in.Role != entity.ProfileRoleAdmin && in.Role != entity.ProfileRoleUser {
		return nil, domain.ErrInvalidInput
	}

	p, err := uc.profileRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Email != "" {
		p.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.PhoneNumber != "" {
		p.PhoneNumber = in.PhoneNumber
	}
	if in.Role != "" {
		p.Role = in.Role
	}
	p.UpdatedAt = time.Now()

	if err := uc.profileRepo.Update(p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("member_id", memberID).Str("by", callerID).Msg("perfil actualizado desde admin")

	resp := toMemberResponse(p)
	return &resp, nil
}

// Delete elimina el perfil del miembro. No permite que un admin se borre a sí
// mismo para no dejar el panel sin administradores por accidente.
func (uc *MemberUseCase) Delete(callerID, memberID string) error {
	if err := uc.requireAdmin(callerID); err != nil {
		return err
	}
	if callerID == memberID {
		return domain.ErrInvalidInput
	}

	p, err := uc.profileRepo.GetByID(memberID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}

	if err := uc.profileRepo.Delete(memberID); err != nil {
		return err
	}
	uc.log.Info().Str("member_id", memberID).Str("by", callerID).Msg("perfil eliminado desde admin")
	return nil
}

// ExportXLSX genera el libro de miembros aplicando los mismos filtros del
// listado.
func (uc *MemberUseCase) ExportXLSX(callerID, query, role string) ([]byte, error) {
	members, err := uc.List(callerID, query, role)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Export(members)
}

func matchesQuery(p *entity.Profile, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Email), query) ||
		strings.Contains(p.PhoneNumber, query)
}

func toMemberResponse(p *entity.Profile) dto.MemberResponse {
	return dto.MemberResponse{
		ID:          p.ID,
		Email:       p.Email,
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Role:        p.Role,
		CreatedAt:   p.CreatedAt,
	}
}
