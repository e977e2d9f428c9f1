package vaccinations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vaccination not found")
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
	VaccineName     string
	ApplicationDate time.Time
	ExpirationDate  time.Time
}

func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (Vaccination, error) {
	if strings.TrimSpace(animalID) == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.VaccineName) == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if in.ApplicationDate.IsZero() || in.ExpirationDate.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}

	now := s.now()
	v := Vaccination{
		ID:              uuid.NewString(),
		AnimalID:        animalID,
		VaccineName:     strings.TrimSpace(in.VaccineName),
		ApplicationDate: in.ApplicationDate,
		ExpirationDate:  in.ExpirationDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	// Renovar = mandar las dos fechas nuevas.
	VaccineName     *string
	ApplicationDate *time.Time
	ExpirationDate  *time.Time
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Vaccination, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, ErrNotFound
	}

	if in.VaccineName != nil {
		name := strings.TrimSpace(*in.VaccineName)
		if name == "" {
			return Vaccination{}, ErrInvalidInput
		}
		v.VaccineName = name
	}
	if in.ApplicationDate != nil {
		if in.ApplicationDate.IsZero() {
			return Vaccination{}, ErrInvalidInput
		}
		v.ApplicationDate = *in.ApplicationDate
	}
	if in.ExpirationDate != nil {
		if in.ExpirationDate.IsZero() {
			return Vaccination{}, ErrInvalidInput
		}
		v.ExpirationDate = *in.ExpirationDate
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccination{}, ErrInvalidInput
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccination{}, ErrNotFound
	}
	return v, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Vaccination, error) {
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
