package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/academy-api/internal/application/dto"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/internal/application/tenant"
	"github.com/jhoicas/academy-api/internal/domain"
	"github.com/jhoicas/academy-api/internal/domain/entity"
	"github.com/jhoicas/academy-api/internal/domain/repository"
	"github.com/jhoicas/academy-api/pkg/jwt"
	"github.com/jhoicas/academy-api/pkg/logger"
	"github.com/jhoicas/academy-api/pkg/phone"
)

// ErrKakaoInfoIncomplete la cuenta Kakao no expone nombre o teléfono; el
// handler redirige a la página de error con el mensaje para el usuario.
var ErrKakaoInfoIncomplete = errors.New("kakao: faltan nombre o teléfono en la cuenta")

// OAuthUseCase login social con Kakao: intercambio de code, vinculación de
// cuenta, enriquecimiento de perfil (teléfono) y bootstrap de tenant.
//
// Solo el flujo principal (identidad + token de sesión) puede fallar la
// petición; el enriquecimiento de teléfono y el webhook de funnel son efectos
// secundarios best-effort que se loguean y se tragan.
type OAuthUseCase struct {
	provider    ports.OAuthProvider
	states      ports.StateStore
	notifier    ports.FunnelNotifier
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
	bootstrap   *tenant.BootstrapUseCase
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewOAuthUseCase construye el caso de uso.
func NewOAuthUseCase(
	provider ports.OAuthProvider,
	states ports.StateStore,
	notifier ports.FunnelNotifier,
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	bootstrap *tenant.BootstrapUseCase,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *OAuthUseCase {
	return &OAuthUseCase{
		provider:    provider,
		states:      states,
		notifier:    notifier,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		bootstrap:   bootstrap,
		jwtCfg:      jwtCfg,
		log:         log,
	}
}

// BeginLogin emite un state de un solo uso y construye la URL de autorización.
// next y funnel viajan empaquetados dentro del state ("token|next|funnel"):
// Kakao devuelve el state intacto y el callback los recupera de ahí.
func (uc *OAuthUseCase) BeginLogin(ctx context.Context, next string, funnel bool) (*dto.KakaoLoginResponse, error) {
	state, err := uc.states.Issue(ctx)
	if err != nil {
		return nil, err
	}
	packed := state
	if next != "" || funnel {
		packed += "|" + next
	}
	if funnel {
		packed += "|funnel"
	}
	authorizeURL, err := uc.provider.AuthorizeURL(packed)
	if err != nil {
		return nil, err
	}
	return &dto.KakaoLoginResponse{AuthorizeURL: authorizeURL, State: packed}, nil
}

// CallbackResult salida del callback OAuth.
type CallbackResult struct {
	Token  string
	UserID string
	Next   string // ruta de redirección post-login recuperada del state
}

// HandleCallback procesa el redirect del proveedor: valida el state, canjea
// el code, asegura usuario + cuenta vinculada + perfil + tenant y emite el
// token de sesión. El flag funnel empaquetado en el state dispara el webhook
// de notificación.
func (uc *OAuthUseCase) HandleCallback(ctx context.Context, code, packedState string) (*CallbackResult, error) {
	parts := strings.SplitN(packedState, "|", 3)
	state := parts[0]
	next := ""
	if len(parts) > 1 {
		next = parts[1]
	}
	funnel := len(parts) > 2 && parts[2] == "funnel"

	ok, err := uc.states.Consume(ctx, state)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	token, err := uc.provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	kuser, err := uc.provider.FetchUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	userID, err := uc.ensureUser(kuser)
	if err != nil {
		return nil, err
	}

	name := kuser.Name
	if name == "" {
		name = kuser.Nickname
	}
	phoneNumber := ""
	if kuser.PhoneNumber != "" {
		phoneNumber = phone.FormatKorean(kuser.PhoneNumber)
	}
	if kuser.Name == "" || phoneNumber == "" {
		// El usuario ya existe y podrá reintentar; sin nombre y teléfono no
		// hay perfil completo ni funnel.
		uc.log.Error().Str("user_id", userID).Msg("cuenta kakao sin nombre o teléfono")
		return nil, ErrKakaoInfoIncomplete
	}

	uc.upsertProfile(userID, kuser.Email, name, phoneNumber)

	if _, err := uc.bootstrap.EnsureMembership(userID, kuser.Email, name); err != nil {
		// La sesión sigue siendo válida sin workspace; la próxima operación
		// que lo necesite vuelve a intentar el bootstrap.
		uc.log.Error().Err(err).Str("user_id", userID).Msg("bootstrap de tenant falló en callback OAuth")
	}

	if funnel && name != "" && kuser.Email != "" && phoneNumber != "" {
		if err := uc.notifier.NotifySignup(ctx, name, kuser.Email, phoneNumber); err != nil {
			uc.log.Warn().Err(err).Msg("webhook de funnel falló")
		}
	}

	role := ""
	if profile, err := uc.profileRepo.GetByID(userID); err == nil && profile != nil {
		role = profile.Role
	}
	sessionToken, err := jwt.Generate(uc.jwtCfg.Secret, userID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &CallbackResult{Token: sessionToken, UserID: userID, Next: next}, nil
}

// ensureUser resuelve el AuthUser de una cuenta de proveedor: vínculo
// existente → por email → alta nueva. Siempre deja el vínculo en auth_accounts.
func (uc *OAuthUseCase) ensureUser(kuser *ports.KakaoUser) (string, error) {
	acc, err := uc.accountRepo.GetByProviderAccount("kakao", kuser.ProviderAccountID)
	if err != nil {
		return "", err
	}
	if acc != nil {
		return acc.UserID, nil
	}

	var userID string
	if kuser.Email != "" {
		existing, err := uc.userRepo.GetByEmail(NormalizeEmail(kuser.Email))
		if err != nil {
			return "", err
		}
		if existing != nil {
			userID = existing.ID
		}
	}
	if userID == "" {
		user := &entity.AuthUser{
			ID:        uuid.New().String(),
			Email:     NormalizeEmail(kuser.Email),
			Name:      kuser.Name,
			AvatarURL: kuser.AvatarURL,
			CreatedAt: time.Now(),
		}
		if err := uc.userRepo.Create(user); err != nil {
			return "", err
		}
		userID = user.ID
	}

	if err := uc.accountRepo.Link(userID, "kakao", kuser.ProviderAccountID); err != nil {
		// El vínculo duplicado es no-op en el repo; cualquier otro fallo no
		// invalida la sesión ya resuelta.
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("vínculo de cuenta OAuth no insertado")
	}
	return userID, nil
}

// upsertProfile actualiza los datos visibles; el fallo solo se loguea.
func (uc *OAuthUseCase) upsertProfile(userID, email, name, phoneNumber string) {
	now := time.Now()
	profile := &entity.Profile{
		ID:          userID,
		Email:       email,
		Name:        name,
		PhoneNumber: phoneNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if profile.Name == "" {
		profile.Name = "User"
	}
	if err := uc.profileRepo.Upsert(profile); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Msg("upsert de perfil falló en callback OAuth")
	}
}
