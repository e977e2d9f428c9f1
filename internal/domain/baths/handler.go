package baths

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/access"
	"github.com/Crypto-Mikael/pet-track/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Service) {
	r.Route("/animals/{animalID}/baths", func(br chi.Router) {
		br.Post("/", createBathHandler(svc, gate))
		br.Get("/", listBathsHandler(svc, gate))
	})

	r.Delete("/baths/{bathID}", deleteBathHandler(svc, gate))
}

type createBathRequest struct {
	Date  string `json:"date"` // RFC3339
	Notes string `json:"notes"`
}

type bathResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createBathHandler godoc
// @Summary Registrar un baño
// @Description Registra un baño para el animal. Requiere permiso sobre el animal (owner o fila en la asociación).
// @Tags baths
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body createBathRequest true "date en RFC3339"
// @Success 201 {object} bathResponse
// @Failure 400 {string} string "invalid json / date inválida"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/baths [post]
func createBathHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		if _, err := gate.Authorize(r.Context(), claims.UserID, animalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		var req createBathRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Date) == "" {
			http.Error(w, "missing required fields: date", http.StatusBadRequest)
			return
		}

		date, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			http.Error(w, "date must be RFC3339", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), animalID, CreateInput{
			Date:  date,
			Notes: req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toBathResponse(b))
	}
}

func listBathsHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		if _, err := gate.Authorize(r.Context(), claims.UserID, animalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		items, err := svc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]bathResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBathResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteBathHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		bathID := chi.URLParam(r, "bathID")
		b, err := svc.GetByID(r.Context(), bathID)
		if err != nil {
			http.Error(w, "bath not found", http.StatusNotFound)
			return
		}

		// Gate contra el animal dueño del registro.
		if _, err := gate.Authorize(r.Context(), claims.UserID, b.AnimalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		if err := svc.Delete(r.Context(), bathID); err != nil {
			http.Error(w, "bath not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toBathResponse(b Bath) bathResponse {
	return bathResponse{
		ID:        b.ID,
		AnimalID:  b.AnimalID,
		Date:      b.Date,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
