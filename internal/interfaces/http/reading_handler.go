package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/reading"
	"github.com/jhoicas/academy-api/internal/domain"
)

// ReadingHandler generación de lecturas saju y consulta de sesiones.
type ReadingHandler struct {
	uc *reading.UseCase
}

// NewReadingHandler construye el handler de lecturas.
func NewReadingHandler(uc *reading.UseCase) *ReadingHandler {
	return &ReadingHandler{uc: uc}
}

// Create godoc
// @Summary      Generar una lectura saju
// @Tags         reading
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReadingRequest  true  "name, birthdate, gender, question"
// @Success      200   {object}  dto.ReadingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reading [post]
// @Security     BearerAuth
func (h *ReadingHandler) Create(c *fiber.Ctx) error {
	var in dto.ReadingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, birthdate, gender y question son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sesiones de lectura del usuario
// @Tags         reading
// @Produce      json
// @Param        page      query  int     false  "página (desde 1)"
// @Param        pageSize  query  int     false  "tamaño de página"
// @Param        status    query  string  false  "filtro por estado"
// @Param        from      query  string  false  "created_at desde (RFC3339)"
// @Param        to        query  string  false  "created_at hasta (RFC3339)"
// @Success      200  {object}  dto.SessionListResponse
// @Router       /api/sessions [get]
// @Security     BearerAuth
func (h *ReadingHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	from, err := parseTimeQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}

	out, err := h.uc.List(GetUserID(c), page, c.Query("status"), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una sesión de lectura
// @Tags         reading
// @Produce      json
// @Param        id  path  string  true  "id de la sesión"
// @Success      200  {object}  dto.SessionDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sessions/{id} [get]
// @Security     BearerAuth
func (h *ReadingHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "la sesión no existe"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la sesión pertenece a otro workspace"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseTimeQuery parsea un query param de tiempo opcional (RFC3339 o fecha
// simple YYYY-MM-DD).
func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
