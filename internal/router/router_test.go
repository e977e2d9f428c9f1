package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/router"
)

func TestHTTP_EndToEnd_ShareAndRecords(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "clerk-owner"
	friendID := "clerk-friend"

	// 1) Ambos usuarios existen (alta lazy vía /me)
	ensureUser(t, ts.URL, ownerID)
	friendInternalID := ensureUser(t, ts.URL, friendID)

	// 2) Owner registra un animal
	animalID := createAnimal(t, ts.URL, ownerID, map[string]any{
		"name":  "Milo",
		"breed": "mixed",
		"age":   "2022-05-01",
	})

	// 3) El amigo NO puede ver el animal aún
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID, friendID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 before share, got %d", st)
		}
	}

	// 4) El amigo abre el share-link como caretaker
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/share?role=caretaker", friendID, nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 accepting share, got %d body=%s", st, string(body))
		}
	}

	// 5) Ahora puede ver el animal y registrar eventos
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID, friendID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get animal by caretaker, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/baths", friendID, map[string]any{
			"date": time.Now().UTC().AddDate(0, 0, -14).Format(time.RFC3339),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create bath by caretaker, got %d body=%s", st, string(body))
		}
	}

	// 6) El share duplicado es conflicto, no upsert
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/share?role=vet", friendID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for duplicate share, got %d", st)
		}
	}

	// 7) El owner abriendo su propio link tampoco crea fila
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/share?role=caretaker", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for owner self-share, got %d", st)
		}
	}

	// 8) El listado de shares es owner-only
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/share", friendID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 listing shares as caretaker, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/share", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing shares as owner, got %d body=%s", st, string(body))
		}
		var shares []struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		if err := json.Unmarshal(body, &shares); err != nil {
			t.Fatalf("unmarshal shares: %v", err)
		}
		if len(shares) != 1 || shares[0].Role != "caretaker" {
			t.Fatalf("expected 1 caretaker share, got %#v", shares)
		}
	}

	// 9) El animal compartido aparece en el listado del amigo con su rol
	{
		st, body := doReq(t, ts.URL, "GET", "/animals", friendID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing animals, got %d", st)
		}
		var listed []struct {
			Animal struct {
				ID string `json:"id"`
			} `json:"animal"`
			Role string `json:"role"`
		}
		if err := json.Unmarshal(body, &listed); err != nil {
			t.Fatalf("unmarshal list: %v", err)
		}
		if len(listed) != 1 || listed[0].Animal.ID != animalID || listed[0].Role != "caretaker" {
			t.Fatalf("expected shared animal with caretaker role, got %#v", listed)
		}
	}

	// 10) Comida de hoy + métricas
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/foods", ownerID, map[string]any{
			"name": "kibble",
			"kcal": "650",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create food, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/metrics", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d body=%s", st, string(body))
		}
		var m struct {
			BathPercentage         int `json:"bath_percentage"`
			BathQtd                int `json:"bath_qtd"`
			DailyCaloriePercentage int `json:"daily_calorie_percentage"`
			VaccinePercentage      int `json:"vaccine_percentage"`
			VaccineTotal           int `json:"vaccine_total"`
		}
		if err := json.Unmarshal(body, &m); err != nil {
			t.Fatalf("unmarshal metrics: %v", err)
		}
		// baño de hace 14 días con ciclo default de 28 => 50
		if m.BathPercentage != 50 || m.BathQtd != 1 {
			t.Fatalf("expected bath 50%%/qtd 1, got %d%%/qtd %d", m.BathPercentage, m.BathQtd)
		}
		// 650 kcal sobre meta default 500 => 130, sin clamp
		if m.DailyCaloriePercentage != 130 {
			t.Fatalf("expected calorie pct 130, got %d", m.DailyCaloriePercentage)
		}
		// sin vacunas: el borde serializa 0
		if m.VaccinePercentage != 0 || m.VaccineTotal != 0 {
			t.Fatalf("expected vaccine 0/0, got %d/%d", m.VaccinePercentage, m.VaccineTotal)
		}
	}

	// 11) Vacuna vigente => 100%
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/vaccinations", ownerID, map[string]any{
			"vaccine_name":     "rabies",
			"application_date": time.Now().UTC().AddDate(0, -1, 0).Format(time.RFC3339),
			"expiration_date":  time.Now().UTC().AddDate(1, 0, 0).Format(time.RFC3339),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create vaccination, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/metrics", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d", st)
		}
		var m struct {
			VaccinePercentage int `json:"vaccine_percentage"`
			VaccineValid      int `json:"vaccine_valid"`
		}
		_ = json.Unmarshal(body, &m)
		if m.VaccinePercentage != 100 || m.VaccineValid != 1 {
			t.Fatalf("expected vaccine 100%%/1 valid, got %d%%/%d", m.VaccinePercentage, m.VaccineValid)
		}
	}

	// 12) Borrar un baño recalcula las métricas contra el registro restante
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/baths", ownerID, map[string]any{
			"date": time.Now().UTC().Format(time.RFC3339),
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create second bath, got %d body=%s", st, string(body))
		}
		var created struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &created)
		if created.ID == "" {
			t.Fatalf("create bath: missing id body=%s", string(body))
		}

		// con el baño de hoy gana el más reciente => 100
		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/metrics", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d", st)
		}
		var m struct {
			BathPercentage int `json:"bath_percentage"`
			BathQtd        int `json:"bath_qtd"`
		}
		_ = json.Unmarshal(body, &m)
		if m.BathPercentage != 100 || m.BathQtd != 2 {
			t.Fatalf("expected bath 100%%/qtd 2, got %d%%/qtd %d", m.BathPercentage, m.BathQtd)
		}

		st, body = doReq(t, ts.URL, "DELETE", "/baths/"+created.ID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete bath, got %d body=%s", st, string(body))
		}

		// vuelve a mandar el baño de hace 14 días => 50
		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/metrics", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics after delete, got %d", st)
		}
		_ = json.Unmarshal(body, &m)
		if m.BathPercentage != 50 || m.BathQtd != 1 {
			t.Fatalf("expected bath 50%%/qtd 1 after delete, got %d%%/qtd %d", m.BathPercentage, m.BathQtd)
		}
	}

	// 13) Owner revoca; el amigo pierde acceso inmediatamente
	{
		st, body := doReq(t, ts.URL, "DELETE", "/animals/"+animalID+"/share/"+friendInternalID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 revoke, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID, friendID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 after revoke, got %d", st)
		}
	}
}

func TestHTTP_Unauthenticated(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/animals", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func TestHTTP_DeleteAnimal_OwnerOnly(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "clerk-owner"
	friendID := "clerk-friend"
	ensureUser(t, ts.URL, ownerID)
	ensureUser(t, ts.URL, friendID)

	animalID := createAnimal(t, ts.URL, ownerID, map[string]any{
		"name":  "Luna",
		"breed": "siamese",
		"age":   "2023-01-10",
	})

	// caretaker puede registrar, pero no borrar el animal
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/share?role=caretaker", friendID, nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 share, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+animalID, friendID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete by caretaker, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "DELETE", "/animals/"+animalID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete by owner, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+animalID, ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func ensureUser(t *testing.T, baseURL, debugUserID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/me", debugUserID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 /me, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("/me: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAnimal(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
