package vaccinations

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
	r.Route("/animals/{animalID}/vaccinations", func(vr chi.Router) {
		vr.Post("/", createVaccinationHandler(svc, gate))
		vr.Get("/", listVaccinationsHandler(svc, gate))
	})

	r.Route("/vaccinations/{vaccinationID}", func(vr chi.Router) {
		vr.Patch("/", updateVaccinationHandler(svc, gate))
		vr.Delete("/", deleteVaccinationHandler(svc, gate))
	})
}

type createVaccinationRequest struct {
	VaccineName     string `json:"vaccine_name"`
	ApplicationDate string `json:"application_date"` // RFC3339
	ExpirationDate  string `json:"expiration_date"`  // RFC3339
}

type updateVaccinationRequest struct {
	VaccineName     *string `json:"vaccine_name"`
	ApplicationDate *string `json:"application_date"`
	ExpirationDate  *string `json:"expiration_date"`
}

type vaccinationResponse struct {
	ID              string    `json:"id"`
	AnimalID        string    `json:"animal_id"`
	VaccineName     string    `json:"vaccine_name"`
	ApplicationDate time.Time `json:"application_date"`
	ExpirationDate  time.Time `json:"expiration_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func createVaccinationHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		var req createVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		missing := make([]string, 0, 3)
		if strings.TrimSpace(req.VaccineName) == "" {
			missing = append(missing, "vaccine_name")
		}
		if strings.TrimSpace(req.ApplicationDate) == "" {
			missing = append(missing, "application_date")
		}
		if strings.TrimSpace(req.ExpirationDate) == "" {
			missing = append(missing, "expiration_date")
		}
		if len(missing) > 0 {
			http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		applied, err := time.Parse(time.RFC3339, req.ApplicationDate)
		if err != nil {
			http.Error(w, "application_date must be RFC3339", http.StatusBadRequest)
			return
		}
		expires, err := time.Parse(time.RFC3339, req.ExpirationDate)
		if err != nil {
			http.Error(w, "expiration_date must be RFC3339", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), animalID, CreateInput{
			VaccineName:     req.VaccineName,
			ApplicationDate: applied,
			ExpirationDate:  expires,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

func listVaccinationsHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateVaccinationHandler cubre la renovación: PATCH con las dos fechas.
func updateVaccinationHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		vaccinationID := chi.URLParam(r, "vaccinationID")
		current, err := svc.GetByID(r.Context(), vaccinationID)
		if err != nil {
			http.Error(w, "vaccination not found", http.StatusNotFound)
			return
		}

		if _, err := gate.Authorize(r.Context(), claims.UserID, current.AnimalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		var req updateVaccinationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{VaccineName: req.VaccineName}
		if req.ApplicationDate != nil {
			t, err := time.Parse(time.RFC3339, *req.ApplicationDate)
			if err != nil {
				http.Error(w, "application_date must be RFC3339", http.StatusBadRequest)
				return
			}
			in.ApplicationDate = &t
		}
		if req.ExpirationDate != nil {
			t, err := time.Parse(time.RFC3339, *req.ExpirationDate)
			if err != nil {
				http.Error(w, "expiration_date must be RFC3339", http.StatusBadRequest)
				return
			}
			in.ExpirationDate = &t
		}

		updated, err := svc.Update(r.Context(), vaccinationID, in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "vaccination not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toVaccinationResponse(updated))
	}
}

func deleteVaccinationHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		vaccinationID := chi.URLParam(r, "vaccinationID")
		v, err := svc.GetByID(r.Context(), vaccinationID)
		if err != nil {
			http.Error(w, "vaccination not found", http.StatusNotFound)
			return
		}

		if _, err := gate.Authorize(r.Context(), claims.UserID, v.AnimalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		if err := svc.Delete(r.Context(), vaccinationID); err != nil {
			http.Error(w, "vaccination not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:              v.ID,
		AnimalID:        v.AnimalID,
		VaccineName:     v.VaccineName,
		ApplicationDate: v.ApplicationDate,
		ExpirationDate:  v.ExpirationDate,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
