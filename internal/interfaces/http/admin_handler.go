package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/admin"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
)

// AdminHandler gestión de miembros del panel admin.
type AdminHandler struct {
	uc *admin.MemberUseCase
}

// NewAdminHandler construye el handler admin.
func NewAdminHandler(uc *admin.MemberUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol ADMIN"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "MEMBER_NOT_FOUND", Message: "el miembro no existe"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// ListMembers godoc
// @Summary      Listar miembros (admin)
// @Tags         admin
// @Produce      json
// @Param        q     query  string  false  "búsqueda por nombre, email o teléfono"
// @Param        role  query  string  false  "filtro por rol (ADMIN|USER)"
// @Success      200  {array}  dto.MemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/members [get]
// @Security     BearerAuth
func (h *AdminHandler) ListMembers(c *fiber.Ctx) error {
	members, err := h.uc.List(GetUserID(c), c.Query("q"), c.Query("role"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(members)
}

// UpdateMember godoc
// @Summary      Editar un miembro (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "id del miembro"
// @Param        body  body  dto.UpdateMemberRequest  true  "campos a actualizar"
// @Success      200  {object}  dto.MemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/members/{id} [put]
// @Security     BearerAuth
func (h *AdminHandler) UpdateMember(c *fiber.Ctx) error {
	var in dto.UpdateMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// DeleteMember godoc
// @Summary      Eliminar un miembro (admin)
// @Tags         admin
// @Param        id  path  string  true  "id del miembro"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/members/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteMember(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportMembers godoc
// @Summary      Exportar miembros a XLSX (admin)
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        q     query  string  false  "búsqueda por nombre, email o teléfono"
// @Param        role  query  string  false  "filtro por rol (ADMIN|USER)"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/members/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportMembers(c *fiber.Ctx) error {
	data, err := h.uc.ExportXLSX(GetUserID(c), c.Query("q"), c.Query("role"))
	if err != nil {
		return h.mapError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="members.xlsx"`)
	return c.Send(data)
}
