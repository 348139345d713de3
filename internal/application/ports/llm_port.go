package ports

import (
	"context"

	"github.com/jhoicas/academy-api/internal/application/dto"
)

// ReadingGenerator define el puerto de salida hacia el modelo generativo.
// Cualquier adaptador (OpenAI, Anthropic, mock) debe implementar esta interfaz.
// El contrato garantiza salida bien formada: si el modelo devuelve algo que no
// parsea como JSON, el adaptador sustituye el payload de fallback fijo en vez
// de propagar el error de parseo.
type ReadingGenerator interface {
	// GenerateReading produce la lectura saju para la entrada validada.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateReading(ctx context.Context, in dto.ReadingRequest) (*dto.ReadingOutput, error)
}
