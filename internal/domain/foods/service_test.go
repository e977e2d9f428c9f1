package foods

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Food
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Food{}}
}

func (r *testRepo) Create(ctx context.Context, f Food) error {
	r.byID[f.ID] = f
	return nil
}

func (r *testRepo) Update(ctx context.Context, f Food) error {
	if _, ok := r.byID[f.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[f.ID] = f
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Food, error) {
	f, ok := r.byID[id]
	if !ok {
		return Food{}, errRepoNotFound
	}
	return f, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string, from, to time.Time) ([]Food, error) {
	out := make([]Food, 0)
	for _, f := range r.byID {
		if f.AnimalID != animalID {
			continue
		}
		if f.CreatedAt.Before(from) || !f.CreatedAt.Before(to) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	// las 23:30 en São Paulo siguen siendo "hoy" allá aunque en UTC ya sea mañana
	at := time.Date(2026, 3, 15, 23, 30, 0, 0, loc)
	from, to := DayWindow(at, loc)

	if from.Hour() != 0 || from.Day() != 15 {
		t.Fatalf("expected window start at midnight of the 15th, got %s", from)
	}
	if !to.Equal(from.AddDate(0, 0, 1)) {
		t.Fatalf("expected window end next midnight, got %s", to)
	}
	if !at.Equal(from) && (at.Before(from) || !at.Before(to)) {
		t.Fatalf("expected %s inside [%s, %s)", at, from, to)
	}
}

func TestService_ListForDay_BucketsByCreatedAt(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day.Add(9 * time.Hour) }

	// hoy
	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Name: "breakfast",
		Kcal: decimal.NewFromInt(300),
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// ayer
	svc.now = func() time.Time { return day.Add(-3 * time.Hour) }
	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Name: "yesterday dinner",
		Kcal: decimal.NewFromInt(200),
	}); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	items, err := svc.ListForDay(context.Background(), "animal-1", day, time.UTC)
	if err != nil {
		t.Fatalf("ListForDay error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 food for the day, got %d", len(items))
	}
	if items[0].Name != "breakfast" {
		t.Fatalf("expected breakfast, got %s", items[0].Name)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Kcal: decimal.NewFromInt(100),
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}

	if _, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Name: "snack",
		Kcal: decimal.NewFromInt(-5),
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for negative kcal, got %v", err)
	}
}

func TestService_Update_PatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	f, err := svc.Create(context.Background(), "animal-1", CreateInput{
		Name:   "kibble",
		Amount: decimal.NewFromInt(80),
		Kcal:   decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	newKcal := decimal.NewFromInt(350)
	updated, err := svc.Update(context.Background(), f.ID, UpdateInput{Kcal: &newKcal})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !updated.Kcal.Equal(newKcal) {
		t.Fatalf("expected kcal updated, got %s", updated.Kcal)
	}
	// los campos no tocados quedan igual
	if updated.Name != "kibble" || !updated.Amount.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unexpected side effects: %#v", updated)
	}
}
