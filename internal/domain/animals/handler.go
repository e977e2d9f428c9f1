package animals

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/access"
	"github.com/Crypto-Mikael/pet-track/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service, gate *access.Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc, gate))
		ar.Get("/", listAnimalsHandler(svc, gate))

		ar.Route("/{animalID}", func(ir chi.Router) {
			ir.Get("/", getAnimalHandler(svc, gate))
			ir.Patch("/", updateAnimalHandler(svc, gate))
			ir.Delete("/", deleteAnimalHandler(svc, gate))

			// Operaciones dedicadas de tuning (ciclo de baño / meta calórica)
			ir.Put("/bath-cycle", setBathCycleHandler(svc, gate))
			ir.Put("/calorie-goal", setCalorieGoalHandler(svc, gate))
		})
	})
}

type createAnimalRequest struct {
	Name             string           `json:"name"`
	Details          string           `json:"details"`
	Breed            string           `json:"breed"`
	Gender           string           `json:"gender"`
	Age              string           `json:"age"` // YYYY-MM-DD
	ImageURL         string           `json:"image_url"`
	WeightKg         *decimal.Decimal `json:"weight_kg"`
	BathsCycleDays   int              `json:"baths_cycle_days"`
	DailyCalorieGoal *decimal.Decimal `json:"daily_calorie_goal"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string          `json:"name"`
	Details  *string          `json:"details"`
	Breed    *string          `json:"breed"`
	Gender   *string          `json:"gender"`
	Age      *string          `json:"age"` // YYYY-MM-DD
	ImageURL *string          `json:"image_url"`
	WeightKg *decimal.Decimal `json:"weight_kg"`
}

type animalResponse struct {
	ID               string          `json:"id"`
	OwnerID          string          `json:"owner_id"`
	Name             string          `json:"name"`
	Details          string          `json:"details"`
	Breed            string          `json:"breed"`
	Gender           Gender          `json:"gender"`
	Age              time.Time       `json:"age"`
	ImageURL         string          `json:"image_url,omitempty"`
	WeightKg         decimal.Decimal `json:"weight_kg"`
	BathsCycleDays   int             `json:"baths_cycle_days"`
	DailyCalorieGoal decimal.Decimal `json:"daily_calorie_goal"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// listedAnimalResponse agrega el rol del caller sobre cada animal.
type listedAnimalResponse struct {
	Animal animalResponse `json:"animal"`
	Role   access.Role    `json:"role"`
}

func createAnimalHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ownerID, err := gate.ResolveUserID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		missing := missingFields(map[string]bool{
			"name":  strings.TrimSpace(req.Name) == "",
			"breed": strings.TrimSpace(req.Breed) == "",
			"age":   strings.TrimSpace(req.Age) == "",
		})
		if missing != "" {
			http.Error(w, "missing required fields: "+missing, http.StatusBadRequest)
			return
		}

		age, err := time.Parse("2006-01-02", req.Age)
		if err != nil {
			http.Error(w, "age must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Name:           req.Name,
			Details:        req.Details,
			Breed:          req.Breed,
			Gender:         req.Gender,
			Age:            age,
			ImageURL:       req.ImageURL,
			BathsCycleDays: req.BathsCycleDays,
		}
		if req.WeightKg != nil {
			in.WeightKg = *req.WeightKg
		}
		if req.DailyCalorieGoal != nil {
			in.DailyCalorieGoal = *req.DailyCalorieGoal
		}

		a, err := svc.Create(r.Context(), ownerID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler devuelve los animales del caller: los propios más los
// compartidos. El query ya viene scopeado por usuario, no hay gate por fila.
func listAnimalsHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		userID, err := gate.ResolveUserID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		owned, err := svc.ListByOwner(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		assocs, err := gate.ListByUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		roleByAnimal := make(map[string]access.Role, len(assocs))
		ids := make([]string, 0, len(assocs))
		for _, au := range assocs {
			roleByAnimal[au.AnimalID] = au.Role
			ids = append(ids, au.AnimalID)
		}

		shared, err := svc.ListByIDs(r.Context(), ids)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]listedAnimalResponse, 0, len(owned)+len(shared))
		for _, a := range owned {
			out = append(out, listedAnimalResponse{Animal: toAnimalResponse(a), Role: access.RoleOwner})
		}
		for _, a := range shared {
			// tolera asociaciones huérfanas (animal borrado)
			role, ok := roleByAnimal[a.ID]
			if !ok {
				continue
			}
			out = append(out, listedAnimalResponse{Animal: toAnimalResponse(a), Role: role})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		a, err := svc.GetByID(r.Context(), animalID)
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		var req updateAnimalRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:     req.Name,
			Details:  req.Details,
			Breed:    req.Breed,
			Gender:   req.Gender,
			ImageURL: req.ImageURL,
			WeightKg: req.WeightKg,
		}
		if req.Age != nil {
			t, err := time.Parse("2006-01-02", *req.Age)
			if err != nil {
				http.Error(w, "age must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Age = &t
		}

		updated, err := svc.UpdateProfile(r.Context(), animalID, in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

func deleteAnimalHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	// Borrar el animal es owner-only (caretaker/vet no alcanzan).
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		actor, err := gate.Authorize(r.Context(), claims.UserID, animalID)
		if err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}
		if actor.Role != access.RoleOwner {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.Delete(r.Context(), animalID); err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// setBathCycleHandler godoc
// @Summary Ajustar el ciclo de baño
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body object true "{\"days\": 28}"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "days must be > 0"
// @Failure 403 {string} string "forbidden"
// @Router /animals/{animalID}/bath-cycle [put]
func setBathCycleHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		var req struct {
			Days int `json:"days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.SetBathCycle(r.Context(), animalID, req.Days)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "days must be > 0", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

func setCalorieGoalHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		var req struct {
			Goal decimal.Decimal `json:"goal"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.SetCalorieGoal(r.Context(), animalID, req.Goal)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "goal must be > 0", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:               a.ID,
		OwnerID:          a.OwnerID,
		Name:             a.Name,
		Details:          a.Details,
		Breed:            a.Breed,
		Gender:           a.Gender,
		Age:              a.Age,
		ImageURL:         a.ImageURL,
		WeightKg:         a.WeightKg,
		BathsCycleDays:   a.BathsCycleDays,
		DailyCalorieGoal: a.DailyCalorieGoal,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// missingFields arma el detalle "qué campo faltó" para los 400 de validación.
func missingFields(checks map[string]bool) string {
	out := make([]string, 0, len(checks))
	for field, missing := range checks {
		if missing {
			out = append(out, field)
		}
	}
	if len(out) == 0 {
		return ""
	}
	// orden estable para mensajes determinísticos
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
// Si más adelante se repite en más módulos, recién conviene extraerlo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
