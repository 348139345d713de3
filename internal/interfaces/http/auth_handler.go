package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/academy-api/internal/application/auth"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/domain"
)

// AuthHandler maneja registro, login con credenciales y login social Kakao.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	oauthUC *auth.OAuthUseCase
	baseURL string // APP_BASE_URL para las redirecciones del callback
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, oauthUC *auth.OAuthUseCase, baseURL string) *AuthHandler {
	return &AuthHandler{uc: uc, oauthUC: oauthUC, baseURL: baseURL}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	user, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "el email ya está registrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email o password inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// KakaoLogin godoc
// @Summary      Iniciar login con Kakao
// @Tags         auth
// @Produce      json
// @Param        next    query  string  false  "ruta de redirección post-login"
// @Param        funnel  query  bool    false  "disparar webhook de funnel tras el alta"
// @Success      200  {object}  dto.KakaoLoginResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/auth/kakao/login [get]
func (h *AuthHandler) KakaoLogin(c *fiber.Ctx) error {
	next := c.Query("next")
	funnel := c.Query("funnel") == "true"
	out, err := h.oauthUC.BeginLogin(c.UserContext(), next, funnel)
	if err != nil {
		if errors.Is(err, domain.ErrConfigMissing) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIG_MISSING", Message: "kakao no configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Callback godoc
// @Summary      Callback OAuth de Kakao
// @Description  Canjea el code, asegura usuario/perfil/tenant y redirige a next con el token de sesión.
// @Tags         auth
// @Param        code   query  string  true   "authorization code"
// @Param        state  query  string  true   "state emitido en el login"
// @Success      302
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/callback [get]
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y state son requeridos"})
	}

	result, err := h.oauthUC.HandleCallback(c.UserContext(), code, state)
	if err != nil {
		if errors.Is(err, auth.ErrKakaoInfoIncomplete) {
			msg := "카카오 계정에서 필수 정보(이름, 전화번호)를 가져올 수 없습니다. 카카오 계정 설정을 확인해주세요."
			return c.Redirect(h.baseURL+"/error?message="+url.QueryEscape(msg), fiber.StatusFound)
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "state inválido o ya usado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	next := result.Next
	if next == "" {
		next = "/"
	}
	return c.Redirect(h.baseURL+next+"?token="+url.QueryEscape(result.Token), fiber.StatusFound)
}
