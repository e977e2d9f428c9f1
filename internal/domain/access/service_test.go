package access

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]AnimalUser
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]AnimalUser{}}
}

func (r *testRepo) Create(ctx context.Context, au AnimalUser) error {
	for _, existing := range r.byID {
		if existing.AnimalID == au.AnimalID && existing.UserID == au.UserID {
			return ErrDuplicate
		}
	}
	r.byID[au.ID] = au
	return nil
}

func (r *testRepo) Get(ctx context.Context, animalID, userID string) (AnimalUser, error) {
	for _, au := range r.byID {
		if au.AnimalID == animalID && au.UserID == userID {
			return au, nil
		}
	}
	return AnimalUser{}, errRepoNotFound
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string) ([]AnimalUser, error) {
	out := make([]AnimalUser, 0)
	for _, au := range r.byID {
		if au.AnimalID == animalID {
			out = append(out, au)
		}
	}
	return out, nil
}

func (r *testRepo) ListByUser(ctx context.Context, userID string) ([]AnimalUser, error) {
	out := make([]AnimalUser, 0)
	for _, au := range r.byID {
		if au.UserID == userID {
			out = append(out, au)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, animalID, userID string) error {
	for id, au := range r.byID {
		if au.AnimalID == animalID && au.UserID == userID {
			delete(r.byID, id)
			return nil
		}
	}
	return errRepoNotFound
}

// testUsers mapea identidad externa -> ID interno.
type testUsers map[string]string

func (u testUsers) InternalID(ctx context.Context, externalID string) (string, error) {
	id, ok := u[externalID]
	if !ok {
		return "", errRepoNotFound
	}
	return id, nil
}

// testAnimals mapea animal -> owner interno.
type testAnimals map[string]string

func (a testAnimals) OwnerOf(ctx context.Context, animalID string) (string, error) {
	owner, ok := a[animalID]
	if !ok {
		return "", errRepoNotFound
	}
	return owner, nil
}

func newTestService(repo *testRepo) *Service {
	users := testUsers{"clerk-owner": "user-owner", "clerk-friend": "user-friend"}
	animals := testAnimals{"animal-1": "user-owner"}
	svc := NewService(repo, users, animals)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Authorize_OwnerBypass(t *testing.T) {
	svc := newTestService(newTestRepo())

	actor, err := svc.Authorize(context.Background(), "clerk-owner", "animal-1")
	if err != nil {
		t.Fatalf("Authorize error: %v", err)
	}
	if actor.Role != RoleOwner {
		t.Fatalf("expected owner role, got %s", actor.Role)
	}
	if actor.UserID != "user-owner" {
		t.Fatalf("expected internal user id, got %s", actor.UserID)
	}
}

func TestService_Authorize_ForbiddenWithoutGrant(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, err := svc.Authorize(context.Background(), "clerk-friend", "animal-1"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Authorize_UnknownUserAndAnimal(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, err := svc.Authorize(context.Background(), "clerk-nobody", "animal-1"); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Authorize(context.Background(), "clerk-owner", "animal-nope"); err != ErrAnimalNotFound {
		t.Fatalf("expected ErrAnimalNotFound, got %v", err)
	}
}

func TestService_Grant_ThenAuthorizePasses(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	au, err := svc.Grant(context.Background(), GrantInput{
		AnimalID:   "animal-1",
		ExternalID: "clerk-friend",
		Role:       RoleCaretaker,
	})
	if err != nil {
		t.Fatalf("Grant error: %v", err)
	}
	if au.Role != RoleCaretaker {
		t.Fatalf("expected caretaker, got %s", au.Role)
	}

	actor, err := svc.Authorize(context.Background(), "clerk-friend", "animal-1")
	if err != nil {
		t.Fatalf("Authorize after grant error: %v", err)
	}
	if actor.Role != RoleCaretaker {
		t.Fatalf("expected caretaker role after grant, got %s", actor.Role)
	}

	// y aparece en el listado del animal
	items, err := svc.ListByAnimal(context.Background(), "animal-1")
	if err != nil {
		t.Fatalf("ListByAnimal error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 association, got %d", len(items))
	}
}

func TestService_Grant_DuplicateIsRejected(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	if _, err := svc.Grant(context.Background(), GrantInput{
		AnimalID:   "animal-1",
		ExternalID: "clerk-friend",
		Role:       RoleCaretaker,
	}); err != nil {
		t.Fatalf("Grant #1 error: %v", err)
	}

	// segundo grant idéntico (incluso con otro rol) => conflicto, fila única
	if _, err := svc.Grant(context.Background(), GrantInput{
		AnimalID:   "animal-1",
		ExternalID: "clerk-friend",
		Role:       RoleVet,
	}); err != ErrAlreadyShared {
		t.Fatalf("expected ErrAlreadyShared, got %v", err)
	}

	if len(repo.byID) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(repo.byID))
	}
}

func TestService_Grant_OwnerSelfGrant(t *testing.T) {
	svc := newTestService(newTestRepo())

	// el owner abriendo su propio share-link no crea fila
	if _, err := svc.Grant(context.Background(), GrantInput{
		AnimalID:   "animal-1",
		ExternalID: "clerk-owner",
		Role:       RoleCaretaker,
	}); err != ErrAlreadyShared {
		t.Fatalf("expected ErrAlreadyShared for owner self-grant, got %v", err)
	}
}

func TestService_Grant_InvalidRole(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, err := svc.Grant(context.Background(), GrantInput{
		AnimalID:   "animal-1",
		ExternalID: "clerk-friend",
		Role:       Role("superuser"),
	}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Revoke_RemovesAccess(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(repo)

	if _, err := svc.Grant(context.Background(), GrantInput{
		AnimalID:   "animal-1",
		ExternalID: "clerk-friend",
		Role:       RoleVet,
	}); err != nil {
		t.Fatalf("Grant error: %v", err)
	}

	if err := svc.Revoke(context.Background(), "animal-1", "user-friend"); err != nil {
		t.Fatalf("Revoke error: %v", err)
	}

	if _, err := svc.Authorize(context.Background(), "clerk-friend", "animal-1"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden after revoke, got %v", err)
	}

	// revocar de nuevo => not found
	if err := svc.Revoke(context.Background(), "animal-1", "user-friend"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second revoke, got %v", err)
	}
}
