package reading

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/application/tenant"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/logger"
)

// llmTimeout tope por llamada al modelo; las completions pueden tardar varios
// segundos pero no deben retener goroutines del servidor indefinidamente.
const llmTimeout = 30 * time.Second

// UseCase lecturas saju: creación (con bootstrap de tenant), listado con KPI
// y detalle con verificación de membresía.
type UseCase struct {
	readingRepo repository.ReadingRepository
	tenantRepo  repository.TenantRepository
	userRepo    repository.UserRepository
	bootstrap   *tenant.BootstrapUseCase
	generator   ports.ReadingGenerator
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	readingRepo repository.ReadingRepository,
	tenantRepo repository.TenantRepository,
	userRepo repository.UserRepository,
	bootstrap *tenant.BootstrapUseCase,
	generator ports.ReadingGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		readingRepo: readingRepo,
		tenantRepo:  tenantRepo,
		userRepo:    userRepo,
		bootstrap:   bootstrap,
		generator:   generator,
		log:         log,
	}
}

// Create valida la entrada, asegura la membresía del usuario, persiste la
// sesión en processing, genera la lectura y la marca done.
//
// Si el update final falla, el caller ya tiene el contenido generado: se
// loguea y la petición sigue siendo exitosa (la sesión queda en processing).
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.ReadingRequest) (*dto.ReadingResponse, error) {
	if !in.Validate() {
		return nil, domain.ErrInvalidInput
	}

	email := ""
	if user, err := uc.userRepo.GetByID(userID); err == nil && user != nil {
		email = user.Email
	}
	membership, err := uc.bootstrap.EnsureMembership(userID, email, in.Name)
	if err != nil {
		return nil, err
	}

	inputJSON, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	session := &entity.ReadingSession{
		ID:        uuid.New().String(),
		TenantID:  membership.TenantID,
		UserID:    userID,
		Status:    entity.ReadingStatusProcessing,
		InputJSON: inputJSON,
		CreatedAt: time.Now(),
	}
	if err := uc.readingRepo.Create(session); err != nil {
		return nil, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	output, err := uc.generator.GenerateReading(llmCtx, in)
	if err != nil {
		if setErr := uc.readingRepo.SetOutput(session.ID, entity.ReadingStatusError, nil); setErr != nil {
			uc.log.Error().Err(setErr).Str("session_id", session.ID).Msg("sesión no marcada como error")
		}
		return nil, err
	}

	outputJSON, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}
	if err := uc.readingRepo.SetOutput(session.ID, entity.ReadingStatusDone, outputJSON); err != nil {
		// El contenido ya está generado; no castigamos al caller por un
		// update de bookkeeping.
		uc.log.Warn().Err(err).Str("session_id", session.ID).Msg("sesión generada pero no marcada como done")
	}

	return &dto.ReadingResponse{ID: session.ID, Output: *output}, nil
}

// List pagina las sesiones de todos los tenants del usuario y calcula los KPI.
// Sin membresías devuelve una página vacía con KPI en cero.
func (uc *UseCase) List(userID string, page dto.PageRequest, status string, from, to *time.Time) (*dto.SessionListResponse, error) {
	page.DefaultPage()

	memberships, err := uc.tenantRepo.MembershipsByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return &dto.SessionListResponse{
			Data: []dto.SessionListItem{}, Page: page.Page, PageSize: page.PageSize,
		}, nil
	}

	tenantIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		tenantIDs = append(tenantIDs, m.TenantID)
	}

	rows, total, err := uc.readingRepo.ListByTenants(tenantIDs, repository.ReadingFilter{
		Status: status,
		From:   from,
		To:     to,
		Limit:  page.PageSize,
		Offset: (page.Page - 1) * page.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.SessionListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SessionListItem{
			ID:         r.ID,
			CreatedAt:  r.CreatedAt,
			Status:     r.Status,
			InputJSON:  r.InputJSON,
			OutputJSON: r.OutputJSON,
		})
	}

	return &dto.SessionListResponse{
		Data:       items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalCount: total,
		KPI:        uc.kpi(tenantIDs),
	}, nil
}

// kpi contadores del dashboard; un fallo individual deja el contador en cero
// sin tumbar el listado.
func (uc *UseCase) kpi(tenantIDs []string) dto.SessionKPI {
	todayStart := time.Now().Truncate(24 * time.Hour)

	var k dto.SessionKPI
	var err error
	if k.TodaySessions, err = uc.readingRepo.CountByTenants(tenantIDs, "", &todayStart); err != nil {
		uc.log.Warn().Err(err).Msg("KPI todaySessions falló")
	}
	if k.TotalSessions, err = uc.readingRepo.CountByTenants(tenantIDs, "", nil); err != nil {
		uc.log.Warn().Err(err).Msg("KPI totalSessions falló")
	}
	if k.Completed, err = uc.readingRepo.CountByTenants(tenantIDs, entity.ReadingStatusDone, nil); err != nil {
		uc.log.Warn().Err(err).Msg("KPI completed falló")
	}
	if k.Processing, err = uc.readingRepo.CountByTenants(tenantIDs, entity.ReadingStatusProcessing, nil); err != nil {
		uc.log.Warn().Err(err).Msg("KPI processing falló")
	}
	return k
}

// Get devuelve el detalle de una sesión verificando que el caller sea miembro
// del tenant dueño.
func (uc *UseCase) Get(userID, sessionID string) (*dto.SessionDetailResponse, error) {
	row, err := uc.readingRepo.GetByID(sessionID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}

	isMember, err := uc.tenantRepo.IsMember(row.TenantID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, domain.ErrForbidden
	}

	return &dto.SessionDetailResponse{
		ID:         row.ID,
		TenantID:   row.TenantID,
		CreatedAt:  row.CreatedAt,
		Status:     row.Status,
		InputJSON:  row.InputJSON,
		OutputJSON: row.OutputJSON,
	}, nil
}
