// Package clerk verifica tokens de sesión y webhooks de Clerk.
//
// El modo soportado es HS256 con secret compartido (template JWT de Clerk
// configurado con signing key propio). Suficiente para esta API; si algún
// día se migra a las JWKS de Clerk, solo cambia este adapter.
package clerk

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Crypto-Mikael/pet-track/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

type Verifier struct {
	jwtSecret     []byte
	webhookSecret []byte
}

func New(jwtSecret, webhookSecret string) *Verifier {
	return &Verifier{
		jwtSecret:     []byte(jwtSecret),
		webhookSecret: []byte(webhookSecret),
	}
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Verify valida firma y expiración; el sub del token es el ID externo.
func (v *Verifier) Verify(_ context.Context, tokenStr string) (auth.Claims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return auth.Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// VerifyWebhook valida la firma svix del webhook de Clerk:
// HMAC-SHA256 de "{svix-id}.{svix-timestamp}.{body}" con el secret.
// Con secret vacío no se valida (modo dev).
func (v *Verifier) VerifyWebhook(body []byte, header http.Header) error {
	if len(v.webhookSecret) == 0 {
		return nil
	}

	id := header.Get("svix-id")
	ts := header.Get("svix-timestamp")
	sigHeader := header.Get("svix-signature")
	if id == "" || ts == "" || sigHeader == "" {
		return ErrInvalidSignature
	}

	secret := v.webhookSecret
	// Los secrets de svix vienen como "whsec_<base64>".
	if s, ok := strings.CutPrefix(string(secret), "whsec_"); ok {
		if decoded, err := base64.StdEncoding.DecodeString(s); err == nil {
			secret = decoded
		}
	}

	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s.%s.%s", id, ts, body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// El header puede traer varias firmas "v1,<sig>" separadas por espacio.
	for _, part := range strings.Fields(sigHeader) {
		sig, ok := strings.CutPrefix(part, "v1,")
		if !ok {
			continue
		}
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}
