package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID    map[string]User
	byClerk map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}, byClerk: map[string]string{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byClerk[u.ClerkID]; ok {
		return errors.New("repo: clerk id taken")
	}
	r.byID[u.ID] = u
	r.byClerk[u.ClerkID] = u.ID
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testRepo) GetByClerkID(ctx context.Context, clerkID string) (User, error) {
	id, ok := r.byClerk[clerkID]
	if !ok {
		return User{}, errRepoNotFound
	}
	return r.byID[id], nil
}

func TestService_Ensure_CreatesOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u1, err := svc.Ensure(context.Background(), EnsureInput{
		ClerkID: "clerk-1",
		Name:    "Ana",
		Email:   "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Ensure #1 error: %v", err)
	}
	if u1.ID == "" || u1.ClerkID != "clerk-1" {
		t.Fatalf("unexpected user: %#v", u1)
	}
	if u1.CreatedAt != now {
		t.Fatalf("expected CreatedAt = now")
	}

	// segunda llamada (webhook + primer request): misma fila, sin duplicar
	u2, err := svc.Ensure(context.Background(), EnsureInput{
		ClerkID: "clerk-1",
		Name:    "Ana Maria",
	})
	if err != nil {
		t.Fatalf("Ensure #2 error: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("expected same user ID, got %s vs %s", u1.ID, u2.ID)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 user, got %d", len(repo.byID))
	}
}

func TestService_Ensure_EmptyClerkID(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Ensure(context.Background(), EnsureInput{ClerkID: "  "}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Resolve_And_InternalID(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Ensure(context.Background(), EnsureInput{ClerkID: "clerk-1"})
	if err != nil {
		t.Fatalf("Ensure error: %v", err)
	}

	id, err := svc.InternalID(context.Background(), "clerk-1")
	if err != nil {
		t.Fatalf("InternalID error: %v", err)
	}
	if id != u.ID {
		t.Fatalf("expected %s, got %s", u.ID, id)
	}

	// identidad autenticada pero sin fila interna
	if _, err := svc.Resolve(context.Background(), "clerk-ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
