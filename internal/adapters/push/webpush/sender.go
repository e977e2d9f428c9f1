// Package webpush entrega notificaciones a endpoints web-push.
//
// Implementación deliberadamente simple: POST del payload JSON al endpoint
// con TTL. El cifrado aes128gcm (RFC 8291) queda del lado del proxy de
// entrega; este adapter cubre el transporte y la poda de endpoints muertos.
package webpush

import (
	"context"
	"errors"
	"net/http"
	"time"

	pushport "github.com/Crypto-Mikael/pet-track/internal/ports/push"

	"github.com/Crypto-Mikael/pet-track/internal/platform/httpclient"
)

const defaultTTL = "86400"

type Sender struct {
	client *httpclient.Client
}

func New(timeout time.Duration) *Sender {
	return &Sender{client: httpclient.New(timeout)}
}

func NewWithClient(c *httpclient.Client) *Sender {
	return &Sender{client: c}
}

func (s *Sender) Send(ctx context.Context, ep pushport.Endpoint, n pushport.Notification) error {
	headers := map[string]string{
		"TTL":     defaultTTL,
		"Urgency": "normal",
	}
	return s.client.PostJSON(ctx, ep.URL, headers, n)
}

// Gone: 404/410 del push service significa suscripción expirada o revocada.
func (s *Sender) Gone(err error) bool {
	var se *httpclient.StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusGone
}
