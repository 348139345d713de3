package admin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/academy-api/internal/application/admin"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/pkg/logger"
)

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
	order    []string // orden del listado (más recientes primero en la DB real)
	deleted  []string
	updated  []*entity.Profile
}

func newFakeProfileRepo(profiles ...*entity.Profile) *fakeProfileRepo {
	f := &fakeProfileRepo{profiles: map[string]*entity.Profile{}}
	for _, p := range profiles {
		f.profiles[p.ID] = p
		f.order = append(f.order, p.ID)
	}
	return f
}

func (f *fakeProfileRepo) Upsert(p *entity.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) List() ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(f.order))
	for _, id := range f.order {
		if p, ok := f.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Update(p *entity.Profile) error {
	f.updated = append(f.updated, p)
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.profiles, id)
	return nil
}

type fakeExporter struct {
	exported []dto.MemberResponse
}

func (f *fakeExporter) Export(members []dto.MemberResponse) ([]byte, error) {
	f.exported = members
	return []byte("xlsx-bytes"), nil
}

const (
	adminID = "00000000-0000-0000-0000-0000000000ad"
	userID  = "00000000-0000-0000-0000-000000000001"
)

func adminProfile() *entity.Profile {
	return &entity.Profile{ID: adminID, Email: "admin@example.com", Name: "Admin", Role: entity.ProfileRoleAdmin}
}

func userProfile() *entity.Profile {
	return &entity.Profile{
		ID: userID, Email: "hong@example.com", Name: "홍길동",
		PhoneNumber: "010-1234-5678", Role: entity.ProfileRoleUser,
		CreatedAt: time.Now(),
	}
}

func newUC(repo *fakeProfileRepo, exp admin.MemberExporter) *admin.MemberUseCase {
	return admin.NewMemberUseCase(repo, exp, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestList_CallerSinRolAdmin_RetornaForbidden(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	_, err := uc.List(userID, "", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestList_CallerSinPerfil_RetornaForbidden(t *testing.T) {
	// El rol se verifica contra el perfil persistido, no contra el token.
	repo := newFakeProfileRepo(userProfile())
	uc := newUC(repo, &fakeExporter{})

	_, err := uc.List("caller-fantasma", "", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_SinFiltros_DevuelveTodos(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	out, err := uc.List(adminID, "", "")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestList_FiltroPorRol(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	out, err := uc.List(adminID, "", entity.ProfileRoleUser)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, userID, out[0].ID)
}

func TestList_BusquedaLibre_NombreEmailTelefono(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	byName, err := uc.List(adminID, "홍길", "")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byEmail, err := uc.List(adminID, "HONG@", "")
	require.NoError(t, err)
	require.Len(t, byEmail, 1, "la búsqueda por email ignora mayúsculas")

	byPhone, err := uc.List(adminID, "1234-5678", "")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)

	none, err := uc.List(adminID, "no-aparece", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete / Export
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_CamposVaciosConservanElValorActual(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	out, err := uc.Update(adminID, userID, dto.UpdateMemberRequest{Name: "김철수"})
	require.NoError(t, err)

	assert.Equal(t, "김철수", out.Name)
	assert.Equal(t, "hong@example.com", out.Email, "email no enviado se conserva")
	assert.Equal(t, "010-1234-5678", out.PhoneNumber)
	assert.Equal(t, entity.ProfileRoleUser, out.Role)
}

func TestUpdate_PromocionARolAdmin(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	out, err := uc.Update(adminID, userID, dto.UpdateMemberRequest{Role: entity.ProfileRoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, entity.ProfileRoleAdmin, out.Role)
}

func TestUpdate_RolDesconocido_RetornaInvalidInput(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	_, err := uc.Update(adminID, userID, dto.UpdateMemberRequest{Role: "SUPERADMIN"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_MiembroInexistente_RetornaNotFound(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile())
	uc := newUC(repo, &fakeExporter{})

	_, err := uc.Update(adminID, "no-existe", dto.UpdateMemberRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_EliminaElPerfil(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	require.NoError(t, uc.Delete(adminID, userID))
	assert.Equal(t, []string{userID}, repo.deleted)
}

func TestDelete_AutoBorrado_Bloqueado(t *testing.T) {
	// Un admin no puede borrarse a sí mismo y dejar el panel sin administradores.
	repo := newFakeProfileRepo(adminProfile())
	uc := newUC(repo, &fakeExporter{})

	err := uc.Delete(adminID, adminID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.deleted)
}

func TestExportXLSX_AplicaFiltrosYDelegaAlExportador(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	exp := &fakeExporter{}
	uc := newUC(repo, exp)

	data, err := uc.ExportXLSX(adminID, "", entity.ProfileRoleUser)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), data)
	require.Len(t, exp.exported, 1)
	assert.Equal(t, userID, exp.exported[0].ID)
}

func TestExportXLSX_CallerNoAdmin_RetornaForbidden(t *testing.T) {
	repo := newFakeProfileRepo(adminProfile(), userProfile())
	uc := newUC(repo, &fakeExporter{})

	_, err := uc.ExportXLSX(userID, "", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
