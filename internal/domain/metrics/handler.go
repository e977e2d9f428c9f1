package metrics

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/access"
	"github.com/Crypto-Mikael/pet-track/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Service) {
	r.Get("/animals/{animalID}/metrics", snapshotHandler(svc, gate))
}

type snapshotResponse struct {
	BathPercentage int `json:"bath_percentage"`
	BathQtd        int `json:"bath_qtd"`

	DailyCalories          decimal.Decimal `json:"daily_calories"`
	DailyCaloriePercentage int             `json:"daily_calorie_percentage"`

	VaccinePercentage int `json:"vaccine_percentage"`
	VaccineTotal      int `json:"vaccine_total"`
	VaccineValid      int `json:"vaccine_valid"`
}

// snapshotHandler godoc
// @Summary      Métricas del animal
// @Description  Calcula higiene, calorías del día y cobertura de vacunas on-read
// @Tags         metrics
// @Produce      json
// @Param        animalID  path   string  true   "ID del animal"
// @Param        tz        query  string  false  "Zona horaria IANA del caller"
// @Success      200  {object}  snapshotResponse
// @Failure      401  {string}  string  "unauthorized"
// @Failure      403  {string}  string  "forbidden"
// @Failure      404  {string}  string  "animal not found"
// @Router       /animals/{animalID}/metrics [get]
func snapshotHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		loc := time.Local
		if v := strings.TrimSpace(r.URL.Query().Get("tz")); v != "" {
			l, err := time.LoadLocation(v)
			if err != nil {
				http.Error(w, "invalid tz", http.StatusBadRequest)
				return
			}
			loc = l
		}

		snap, err := svc.Snapshot(r.Context(), animalID, loc)
		if err != nil {
			switch err {
			case ErrAnimalNotFound:
				http.Error(w, err.Error(), http.StatusNotFound)
			case ErrInvalidGoal:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
	}
}

func toSnapshotResponse(s Snapshot) snapshotResponse {
	resp := snapshotResponse{
		BathPercentage:         s.BathPercentage,
		BathQtd:                s.BathQtd,
		DailyCalories:          s.DailyCalories,
		DailyCaloriePercentage: s.DailyCaloriePercentage,
		VaccineTotal:           s.VaccineTotal,
		VaccineValid:           s.VaccineValid,
	}
	// Sin vacunas el porcentaje interno es nil; en el borde se serializa 0.
	if s.VaccinePercentage != nil {
		resp.VaccinePercentage = *s.VaccinePercentage
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
