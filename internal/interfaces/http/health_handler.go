package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/config"
)

// HealthHandler endpoints de diagnóstico. El endpoint de env reporta SOLO
// booleanos de presencia por grupo de configuración, nunca los valores.
type HealthHandler struct {
	cfg       *config.Config
	orderRepo repository.OrderRepository
}

// NewHealthHandler construye el handler de health checks.
func NewHealthHandler(cfg *config.Config, orderRepo repository.OrderRepository) *HealthHandler {
	return &HealthHandler{cfg: cfg, orderRepo: orderRepo}
}

// Liveness godoc
// @Summary      Liveness básico
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.cfg.App.Name,
	})
}

// Env godoc
// @Summary      Presencia de configuración por grupo
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/health/env [get]
func (h *HealthHandler) Env(c *fiber.Ctx) error {
	cfg := h.cfg
	return c.JSON(fiber.Map{
		"db":           cfg.DB.ConnectionString() != "" && (cfg.DB.DatabaseURL != "" || cfg.DB.Password != ""),
		"jwt":          cfg.JWT.Secret != "",
		"toss":         cfg.Toss.SecretKey != "",
		"kakao":        cfg.Kakao.ClientID != "" && cfg.Kakao.RedirectURL != "",
		"openai":       cfg.OpenAI.APIKey != "",
		"redis":        cfg.Redis.Addr != "",
		"ordersTenant": cfg.Orders.TenantID != "",
		"webhook":      cfg.Webhook.FunnelURL != "",
	})
}

// Orders godoc
// @Summary      Conectividad con la base de órdenes
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/health/orders [get]
func (h *HealthHandler) Orders(c *fiber.Ctx) error {
	count, err := h.orderRepo.Count()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "DB_UNAVAILABLE", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
		"orders": count,
	})
}
