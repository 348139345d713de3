package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/academy-api/internal/application/ports"
	"github.com/jhoicas/academy-api/pkg/logger"
)

var _ ports.FunnelNotifier = (*FunnelNotifier)(nil)

// FunnelNotifier envía la notificación de registro al webhook de funnel.
// Es best effort: el caller loguea el error y sigue.
type FunnelNotifier struct {
	http *resty.Client
	url  string
	log  *logger.Logger
}

// NewFunnelNotifier construye el notificador. Con url vacía todas las
// notificaciones son no-op.
func NewFunnelNotifier(url string, log *logger.Logger) *FunnelNotifier {
	http := resty.New().SetTimeout(5 * time.Second)
	return &FunnelNotifier{http: http, url: url, log: log}
}

type signupPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NotifySignup publica el alta en el funnel.
func (n *FunnelNotifier) NotifySignup(ctx context.Context, name, email, phone string) error {
	if n.url == "" {
		return nil
	}
	resp, err := n.http.R().
		SetContext(ctx).
		SetBody(signupPayload{Name: name, Email: email, Phone: phone}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("funnel webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("funnel webhook: HTTP %d", resp.StatusCode())
	}
	n.log.Debug().Str("email", email).Msg("funnel notificado")
	return nil
}
