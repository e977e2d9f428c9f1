package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type EnsureInput struct {
	ClerkID string
	Name    string
	Email   string
}

// Ensure crea el usuario si no existe (idempotente, keyed por clerk_id).
// Lo consumen el webhook de Clerk y el primer request autenticado.
func (s *Service) Ensure(ctx context.Context, in EnsureInput) (User, error) {
	clerkID := strings.TrimSpace(in.ClerkID)
	if clerkID == "" {
		return User{}, ErrInvalidInput
	}

	if existing, err := s.repo.GetByClerkID(ctx, clerkID); err == nil {
		return existing, nil
	}

	now := s.now()
	u := User{
		ID:        uuid.NewString(),
		ClerkID:   clerkID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// carrera webhook vs primer request: si otro lo creó, devolvemos ese
		if existing, gerr := s.repo.GetByClerkID(ctx, clerkID); gerr == nil {
			return existing, nil
		}
		return User{}, err
	}
	return u, nil
}

// Resolve mapea identidad externa -> usuario interno.
// Distinto de "no autenticado": acá hay identidad pero no fila interna.
func (s *Service) Resolve(ctx context.Context, clerkID string) (User, error) {
	clerkID = strings.TrimSpace(clerkID)
	if clerkID == "" {
		return User{}, ErrInvalidInput
	}
	u, err := s.repo.GetByClerkID(ctx, clerkID)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// InternalID expone solo el ID interno para otros módulos (evita ciclos).
func (s *Service) InternalID(ctx context.Context, clerkID string) (string, error) {
	u, err := s.Resolve(ctx, clerkID)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}
