package repository

import (
	"time"

	"github.com/jhoicas/academy-api/internal/domain/entity"
)

// ReadingFilter filtros del listado de sesiones.
type ReadingFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// ReadingRepository sesiones de lectura saju.
type ReadingRepository interface {
	Create(s *entity.ReadingSession) error
	GetByID(id string) (*entity.ReadingSession, error)
	// SetOutput actualiza estado y salida de una sesión existente.
	SetOutput(id, status string, outputJSON []byte) error
	// ListByTenants pagina las sesiones de los tenants dados, más recientes primero.
	ListByTenants(tenantIDs []string, f ReadingFilter) ([]*entity.ReadingSession, int, error)
	// CountByTenants cuenta sesiones; status vacío = todas, from acota created_at.
	CountByTenants(tenantIDs []string, status string, from *time.Time) (int, error)
}
