package baths

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("bath not found")
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

type CreateInput struct {
	Date  time.Time
	Notes string
}

func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (Bath, error) {
	if strings.TrimSpace(animalID) == "" {
		return Bath{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Bath{}, ErrInvalidInput
	}

	now := s.now()
	b := Bath{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Date:      in.Date,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Bath{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Bath, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Bath{}, ErrInvalidInput
	}
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Bath{}, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Bath, error) {
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}
