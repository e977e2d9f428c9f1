package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/animals"
	"github.com/Crypto-Mikael/pet-track/internal/domain/baths"
	"github.com/Crypto-Mikael/pet-track/internal/domain/foods"
	"github.com/Crypto-Mikael/pet-track/internal/domain/vaccinations"
)

var ErrAnimalNotFound = errors.New("animal not found")

// Interfaces locales: el servicio de métricas lee de los otros dominios
// sin acoplarse a sus tipos de servicio concretos.
type AnimalSource interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type BathSource interface {
	ListByAnimal(ctx context.Context, animalID string) ([]baths.Bath, error)
}

type FoodSource interface {
	ListForDay(ctx context.Context, animalID string, day time.Time, loc *time.Location) ([]foods.Food, error)
}

type VaccinationSource interface {
	ListByAnimal(ctx context.Context, animalID string) ([]vaccinations.Vaccination, error)
}

type Service struct {
	animals AnimalSource
	baths   BathSource
	foods   FoodSource
	vaccs   VaccinationSource
	now     func() time.Time
}

func NewService(a AnimalSource, b BathSource, f FoodSource, v VaccinationSource) *Service {
	return &Service{
		animals: a,
		baths:   b,
		foods:   f,
		vaccs:   v,
		now:     time.Now,
	}
}

// Snapshot recalcula las métricas del animal on-read. No se persiste nada:
// borrar un baño o una comida cambia el próximo snapshot sin pasos extra.
func (s *Service) Snapshot(ctx context.Context, animalID string, loc *time.Location) (Snapshot, error) {
	animal, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return Snapshot{}, ErrAnimalNotFound
	}

	if loc == nil {
		loc = time.Local
	}
	now := s.now().In(loc)

	allBaths, err := s.baths.ListByAnimal(ctx, animalID)
	if err != nil {
		return Snapshot{}, err
	}
	todays, err := s.foods.ListForDay(ctx, animalID, now, loc)
	if err != nil {
		return Snapshot{}, err
	}
	vaccs, err := s.vaccs.ListByAnimal(ctx, animalID)
	if err != nil {
		return Snapshot{}, err
	}

	return Compute(now, animal, todays, allBaths, vaccs)
}
