package foods

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
	r.Route("/animals/{animalID}/foods", func(fr chi.Router) {
		fr.Post("/", createFoodHandler(svc, gate))
		fr.Get("/", listFoodsHandler(svc, gate))
	})

	r.Route("/foods/{foodID}", func(fr chi.Router) {
		fr.Get("/", getFoodHandler(svc, gate))
		fr.Patch("/", updateFoodHandler(svc, gate))
		fr.Delete("/", deleteFoodHandler(svc, gate))
	})
}

type createFoodRequest struct {
	Name    string           `json:"name"`
	Amount  *decimal.Decimal `json:"amount"`
	Kcal    *decimal.Decimal `json:"kcal"`
	Protein *decimal.Decimal `json:"protein"`
	Fat     *decimal.Decimal `json:"fat"`
	Carbs   *decimal.Decimal `json:"carbs"`
	Notes   string           `json:"notes"`
}

type updateFoodRequest struct {
	Name    *string          `json:"name"`
	Amount  *decimal.Decimal `json:"amount"`
	Kcal    *decimal.Decimal `json:"kcal"`
	Protein *decimal.Decimal `json:"protein"`
	Fat     *decimal.Decimal `json:"fat"`
	Carbs   *decimal.Decimal `json:"carbs"`
	Notes   *string          `json:"notes"`
}

type foodResponse struct {
	ID        string           `json:"id"`
	AnimalID  string           `json:"animal_id"`
	Name      string           `json:"name"`
	Amount    decimal.Decimal  `json:"amount"`
	Kcal      decimal.Decimal  `json:"kcal"`
	Protein   *decimal.Decimal `json:"protein,omitempty"`
	Fat       *decimal.Decimal `json:"fat,omitempty"`
	Carbs     *decimal.Decimal `json:"carbs,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func createFoodHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		var req createFoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// name + kcal son obligatorios; amount default 0
		missing := make([]string, 0, 2)
		if strings.TrimSpace(req.Name) == "" {
			missing = append(missing, "name")
		}
		if req.Kcal == nil {
			missing = append(missing, "kcal")
		}
		if len(missing) > 0 {
			http.Error(w, "missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
			return
		}

		in := CreateInput{
			Name:    req.Name,
			Kcal:    *req.Kcal,
			Protein: req.Protein,
			Fat:     req.Fat,
			Carbs:   req.Carbs,
			Notes:   req.Notes,
		}
		if req.Amount != nil {
			in.Amount = *req.Amount
		}

		f, err := svc.Create(r.Context(), animalID, in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toFoodResponse(f))
	}
}

// listFoodsHandler lista las comidas de un día calendario.
// Query params: date=YYYY-MM-DD (default hoy), tz=IANA (default zona local
// del server), para que "hoy" sea el del caller.
func listFoodsHandler(svc *Service, gate *access.Service) http.HandlerFunc {
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

		day := time.Now().In(loc)
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			t, err := time.ParseInLocation("2006-01-02", v, loc)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			day = t
		}

		items, err := svc.ListForDay(r.Context(), animalID, day, loc)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]foodResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFoodResponse(f))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getFoodHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "foodID"))
		if err != nil {
			http.Error(w, "food not found", http.StatusNotFound)
			return
		}

		if _, err := gate.Authorize(r.Context(), claims.UserID, f.AnimalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		writeJSON(w, http.StatusOK, toFoodResponse(f))
	}
}

func updateFoodHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		foodID := chi.URLParam(r, "foodID")
		current, err := svc.GetByID(r.Context(), foodID)
		if err != nil {
			http.Error(w, "food not found", http.StatusNotFound)
			return
		}

		if _, err := gate.Authorize(r.Context(), claims.UserID, current.AnimalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		var req updateFoodRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), foodID, UpdateInput{
			Name:    req.Name,
			Amount:  req.Amount,
			Kcal:    req.Kcal,
			Protein: req.Protein,
			Fat:     req.Fat,
			Carbs:   req.Carbs,
			Notes:   req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "food not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toFoodResponse(updated))
	}
}

func deleteFoodHandler(svc *Service, gate *access.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		foodID := chi.URLParam(r, "foodID")
		f, err := svc.GetByID(r.Context(), foodID)
		if err != nil {
			http.Error(w, "food not found", http.StatusNotFound)
			return
		}

		if _, err := gate.Authorize(r.Context(), claims.UserID, f.AnimalID); err != nil {
			http.Error(w, err.Error(), access.GateHTTPStatus(err))
			return
		}

		if err := svc.Delete(r.Context(), foodID); err != nil {
			http.Error(w, "food not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func toFoodResponse(f Food) foodResponse {
	return foodResponse{
		ID:        f.ID,
		AnimalID:  f.AnimalID,
		Name:      f.Name,
		Amount:    f.Amount,
		Kcal:      f.Kcal,
		Protein:   f.Protein,
		Fat:       f.Fat,
		Carbs:     f.Carbs,
		Notes:     f.Notes,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
