package access

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, shareLimit func(http.Handler) http.Handler) {
	r.Route("/animals/{animalID}/share", func(sr chi.Router) {
		// El grant del share-link va rate-limited: el link es solo
		// animal + rol, sin token de invitación.
		if shareLimit != nil {
			sr.With(shareLimit).Post("/", grantShareHandler(svc))
		} else {
			sr.Post("/", grantShareHandler(svc))
		}

		sr.Get("/", listSharesHandler(svc))
		sr.Delete("/{userID}", revokeShareHandler(svc))
	})
}

type shareResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// grantShareHandler godoc
// @Summary Aceptar un share-link
// @Description Otorga al usuario autenticado el rol indicado sobre el animal. Duplicados devuelven 409.
// @Tags share
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param role query string true "Rol a otorgar" Enums(caretaker, vet)
// @Success 201 {object} shareResponse
// @Failure 400 {string} string "missing or invalid role"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "animal not found / user not found"
// @Failure 409 {string} string "already shared"
// @Router /animals/{animalID}/share [post]
func grantShareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		role := Role(strings.TrimSpace(r.URL.Query().Get("role")))
		if role == "" {
			http.Error(w, "missing required fields: role", http.StatusBadRequest)
			return
		}
		if !ValidRole(role) {
			http.Error(w, "invalid role", http.StatusBadRequest)
			return
		}

		au, err := svc.Grant(r.Context(), GrantInput{
			AnimalID:   chi.URLParam(r, "animalID"),
			ExternalID: claims.UserID,
			Role:       role,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "invalid input", http.StatusBadRequest)
			case ErrUserNotFound:
				http.Error(w, "user not found", http.StatusNotFound)
			case ErrAnimalNotFound:
				http.Error(w, "animal not found", http.StatusNotFound)
			case ErrAlreadyShared:
				http.Error(w, "already shared", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toShareResponse(au))
	}
}

func listSharesHandler(svc *Service) http.HandlerFunc {
	// Solo el owner ve a quién compartió.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")

		actor, err := svc.Authorize(r.Context(), claims.UserID, animalID)
		if err != nil {
			writeGateError(w, err)
			return
		}
		if actor.Role != RoleOwner {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]shareResponse, 0, len(items))
		for _, au := range items {
			out = append(out, toShareResponse(au))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func revokeShareHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		userID := chi.URLParam(r, "userID")

		actor, err := svc.Authorize(r.Context(), claims.UserID, animalID)
		if err != nil {
			writeGateError(w, err)
			return
		}
		if actor.Role != RoleOwner {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Revoke(r.Context(), animalID, userID); err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "association not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// writeGateError mapea los errores del gate a status HTTP.
// Lo reusan los handlers de otros módulos vía GateHTTPStatus.
func writeGateError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), GateHTTPStatus(err))
}

// GateHTTPStatus traduce errores de Authorize a status codes.
func GateHTTPStatus(err error) int {
	switch err {
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrUserNotFound, ErrAnimalNotFound:
		return http.StatusNotFound
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func toShareResponse(au AnimalUser) shareResponse {
	return shareResponse{
		ID:        au.ID,
		AnimalID:  au.AnimalID,
		UserID:    au.UserID,
		Role:      au.Role,
		CreatedAt: au.CreatedAt,
		UpdatedAt: au.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
