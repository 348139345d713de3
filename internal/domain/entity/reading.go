package entity

import "time"

// Estados de una sesión de lectura.
const (
	ReadingStatusCreated    = "created"
	ReadingStatusProcessing = "processing"
	ReadingStatusDone       = "done"
	ReadingStatusError      = "error"
)

// ReadingSession una petición de lectura saju y su resultado generado.
// InputJSON y OutputJSON se persisten tal cual para la vista de historial.
type ReadingSession struct {
	ID         string
	TenantID   string
	UserID     string
	Status     string // created, processing, done, error
	InputJSON  []byte
	OutputJSON []byte
	CreatedAt  time.Time
}
