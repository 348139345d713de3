package dto

import (
	"encoding/json"
	"time"
)

// ReadingRequest entrada validada de una lectura saju.
type ReadingRequest struct {
	Name      string `json:"name" validate:"required,min=1"`
	Birthdate string `json:"birthdate" validate:"required,min=8"` // YYYY-MM-DD o MM/DD/YYYY
	Gender    string `json:"gender" validate:"required,oneof=M F"`
	Question  string `json:"question" validate:"required,min=3"`
}

// Validate aplica las reglas mínimas del esquema (sin librería de validación,
// los campos son pocos y las reglas triviales).
func (r ReadingRequest) Validate() bool {
	if r.Name == "" || len(r.Birthdate) < 8 || len(r.Question) < 3 {
		return false
	}
	return r.Gender == "M" || r.Gender == "F"
}

// ReadingOutput salida estructurada generada por el modelo. Los pilares son
// opcionales (heurística MVP).
type ReadingOutput struct {
	Summary      string `json:"summary"`
	Personality  string `json:"personality"`
	Fortune      string `json:"fortune"`
	Relationship string `json:"relationship"`
	Advice       string `json:"advice"`
	YearPillar   string `json:"year_pillar,omitempty"`
	MonthPillar  string `json:"month_pillar,omitempty"`
	DayPillar    string `json:"day_pillar,omitempty"`
	HourPillar   string `json:"hour_pillar,omitempty"`
}

// ReadingResponse id de la sesión persistida y la salida generada.
type ReadingResponse struct {
	ID     string        `json:"id"`
	Output ReadingOutput `json:"output"`
}

// SessionListItem fila del listado de sesiones.
type SessionListItem struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     string          `json:"status"`
	InputJSON  json.RawMessage `json:"input_json,omitempty"`
	OutputJSON json.RawMessage `json:"output_json,omitempty"`
}

// SessionKPI contadores agregados del dashboard de sesiones.
type SessionKPI struct {
	TodaySessions int `json:"todaySessions"`
	TotalSessions int `json:"totalSessions"`
	Completed     int `json:"completed"`
	Processing    int `json:"processing"`
}

// SessionListResponse página de sesiones + KPI de todos los tenants del usuario.
type SessionListResponse struct {
	Data       []SessionListItem `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int               `json:"totalCount"`
	KPI        SessionKPI        `json:"kpi"`
}

// SessionDetailResponse detalle de una sesión.
type SessionDetailResponse struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenant_id"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     string          `json:"status"`
	InputJSON  json.RawMessage `json:"input_json,omitempty"`
	OutputJSON json.RawMessage `json:"output_json,omitempty"`
}
