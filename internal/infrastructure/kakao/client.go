package kakao

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/pkg/config"
	"github.com/jhoicas/academy-api/pkg/logger"
)

var _ ports.OAuthProvider = (*Client)(nil)

// Client adaptador OAuth de Kakao: autorización, canje de code y perfil.
// kauth.kakao.com sirve el flujo OAuth y kapi.kakao.com la API de usuario.
type Client struct {
	auth *resty.Client
	api  *resty.Client
	cfg  config.KakaoConfig
	log  *logger.Logger
}

// NewClient construye el cliente con la configuración de la app Kakao.
func NewClient(cfg config.KakaoConfig, log *logger.Logger) *Client {
	auth := resty.New().
		SetBaseURL(cfg.AuthBaseURL).
		SetTimeout(10 * time.Second)
	api := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(10 * time.Second)
	return &Client{auth: auth, api: api, cfg: cfg, log: log}
}

// AuthorizeURL construye la URL de autorización.
func (c *Client) AuthorizeURL(state string) (string, error) {
	if c.cfg.ClientID == "" || c.cfg.RedirectURL == "" {
		return "", domain.ErrConfigMissing
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURL)
	q.Set("state", state)
	return c.cfg.AuthBaseURL + "/oauth/authorize?" + q.Encode(), nil
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ExchangeCode canjea el authorization code por un access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*ports.KakaoToken, error) {
	if c.cfg.ClientID == "" {
		return nil, domain.ErrConfigMissing
	}
	form := map[string]string{
		"grant_type":   "authorization_code",
		"client_id":    c.cfg.ClientID,
		"redirect_uri": c.cfg.RedirectURL,
		"code":         code,
	}
	if c.cfg.ClientSecret != "" {
		form["client_secret"] = c.cfg.ClientSecret
	}

	var out tokenResponse
	resp, err := c.auth.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post("/oauth/token")
	if err != nil {
		return nil, fmt.Errorf("kakao token: %w", err)
	}
	if resp.IsError() || out.AccessToken == "" {
		c.log.Warn().Int("status", resp.StatusCode()).Str("error", out.Error).
			Str("description", out.ErrorDescription).Msg("canje de code kakao falló")
		return nil, domain.ErrUnauthorized
	}
	return &ports.KakaoToken{AccessToken: out.AccessToken}, nil
}

type userResponse struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		PhoneNumber string `json:"phone_number"`
		Profile     struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// FetchUser obtiene el perfil del usuario autenticado.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (*ports.KakaoUser, error) {
	var out userResponse
	resp, err := c.api.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&out).
		Get("/v2/user/me")
	if err != nil {
		return nil, fmt.Errorf("kakao user: %w", err)
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Msg("consulta de perfil kakao falló")
		return nil, domain.ErrUnauthorized
	}
	if out.ID == 0 {
		return nil, fmt.Errorf("kakao user: respuesta sin id")
	}
	return &ports.KakaoUser{
		ProviderAccountID: fmt.Sprintf("%d", out.ID),
		Email:             out.KakaoAccount.Email,
		Name:              out.KakaoAccount.Name,
		Nickname:          out.KakaoAccount.Profile.Nickname,
		AvatarURL:         out.KakaoAccount.Profile.ProfileImageURL,
		PhoneNumber:       out.KakaoAccount.PhoneNumber,
	}, nil
}
