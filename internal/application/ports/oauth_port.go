package ports

import "context"

// KakaoUser datos de perfil obtenidos del proveedor OAuth.
type KakaoUser struct {
	ProviderAccountID string
	Email             string
	Name              string
	Nickname          string
	AvatarURL         string
	PhoneNumber       string // crudo del proveedor ("+82 10-...")
}

// KakaoToken resultado del intercambio code → token.
type KakaoToken struct {
	AccessToken string
}

// OAuthProvider puerto hacia el proveedor OAuth (Kakao).
type OAuthProvider interface {
	// AuthorizeURL construye la URL de autorización con el state dado.
	// El proveedor devuelve el state sin modificar en el callback, así que el
	// caller puede empaquetar datos de redirección dentro de él.
	AuthorizeURL(state string) (string, error)
	// ExchangeCode canjea el authorization code por un access token.
	ExchangeCode(ctx context.Context, code string) (*KakaoToken, error)
	// FetchUser obtiene el perfil del usuario autenticado (incluye teléfono
	// si el scope lo permite).
	FetchUser(ctx context.Context, accessToken string) (*KakaoUser, error)
}

// StateStore tokens de state OAuth de un solo uso con TTL.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	// Consume valida y consume el state; false si no existe o ya fue usado.
	Consume(ctx context.Context, state string) (bool, error)
}

// FunnelNotifier webhook de notificación post-registro (best effort: el
// caller ignora el error más allá de loguearlo).
type FunnelNotifier interface {
	NotifySignup(ctx context.Context, name, email, phone string) error
}
