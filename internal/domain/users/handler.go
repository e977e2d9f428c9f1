package users

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// WebhookVerifier valida la firma del webhook del identity provider.
// nil => modo dev, se acepta sin firmar.
type WebhookVerifier interface {
	VerifyWebhook(body []byte, header http.Header) error
}

func RegisterRoutes(r chi.Router, svc *Service, wv WebhookVerifier) {
	r.Get("/me", meHandler(svc))
	r.Post("/webhooks/clerk", clerkWebhookHandler(svc, wv))
}

type userResponse struct {
	ID        string    `json:"id"`
	ClerkID   string    `json:"clerk_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// meHandler resuelve la identidad del token y crea el usuario si es la
// primera vez que lo vemos (alta lazy, mismo efecto que el webhook).
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		u, err := svc.Ensure(r.Context(), EnsureInput{
			ClerkID: claims.UserID,
			Name:    claims.Name,
			Email:   claims.Email,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// Payload relevante del evento user.created de Clerk.
type clerkWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func clerkWebhookHandler(svc *Service, wv WebhookVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		if wv != nil {
			if err := wv.VerifyWebhook(body, r.Header); err != nil {
				http.Error(w, "invalid signature", http.StatusBadRequest)
				return
			}
		}

		var event clerkWebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Solo nos interesa el alta; otros eventos se aceptan y se ignoran.
		if event.Type != "user.created" {
			writeJSON(w, http.StatusOK, map[string]bool{"success": true})
			return
		}

		if strings.TrimSpace(event.Data.ID) == "" {
			http.Error(w, "invalid event data", http.StatusBadRequest)
			return
		}

		email := ""
		if len(event.Data.EmailAddresses) > 0 {
			email = event.Data.EmailAddresses[0].EmailAddress
		}
		name := strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName)

		if _, err := svc.Ensure(r.Context(), EnsureInput{
			ClerkID: event.Data.ID,
			Name:    name,
			Email:   email,
		}); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		ClerkID:   u.ClerkID,
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
