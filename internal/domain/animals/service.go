package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
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
	Name     string
	Details  string
	Breed    string
	Gender   string
	Age      time.Time
	ImageURL string
	WeightKg decimal.Decimal

	// 0 => default del esquema (28 días / 500 kcal).
	BathsCycleDays   int
	DailyCalorieGoal decimal.Decimal
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Breed) == "" || in.Age.IsZero() {
		return Animal{}, ErrInvalidInput
	}
	if in.BathsCycleDays < 0 || in.WeightKg.IsNegative() || in.DailyCalorieGoal.IsNegative() {
		return Animal{}, ErrInvalidInput
	}

	gender := Gender(strings.TrimSpace(in.Gender))
	if gender == "" {
		gender = GenderUnknown
	}
	switch gender {
	case GenderMale, GenderFemale, GenderUnknown:
	default:
		return Animal{}, ErrInvalidInput
	}

	cycle := in.BathsCycleDays
	if cycle == 0 {
		cycle = DefaultBathsCycleDays
	}
	goal := in.DailyCalorieGoal
	if goal.IsZero() {
		goal = DefaultDailyCalorieGoal
	}

	now := s.now()
	a := Animal{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Name:             strings.TrimSpace(in.Name),
		Details:          strings.TrimSpace(in.Details),
		Breed:            strings.TrimSpace(in.Breed),
		Gender:           gender,
		Age:              in.Age,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		WeightKg:         in.WeightKg,
		BathsCycleDays:   cycle,
		DailyCalorieGoal: goal,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Details  *string
	Breed    *string
	Gender   *string
	Age      *time.Time
	ImageURL *string
	WeightKg *decimal.Decimal
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Name = name
	}
	if in.Details != nil {
		a.Details = strings.TrimSpace(*in.Details)
	}
	if in.Breed != nil {
		breed := strings.TrimSpace(*in.Breed)
		if breed == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Breed = breed
	}
	if in.Gender != nil {
		g := Gender(strings.TrimSpace(*in.Gender))
		switch g {
		case GenderMale, GenderFemale, GenderUnknown:
			a.Gender = g
		default:
			return Animal{}, ErrInvalidInput
		}
	}
	if in.Age != nil {
		if in.Age.IsZero() {
			return Animal{}, ErrInvalidInput
		}
		a.Age = *in.Age
	}
	if in.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.WeightKg != nil {
		if in.WeightKg.IsNegative() {
			return Animal{}, ErrInvalidInput
		}
		a.WeightKg = *in.WeightKg
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// SetBathCycle ajusta el largo del ciclo de baño (operación dedicada).
func (s *Service) SetBathCycle(ctx context.Context, id string, days int) (Animal, error) {
	if days <= 0 {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	a.BathsCycleDays = days
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// SetCalorieGoal ajusta la meta diaria. Cero explícito es error de input:
// el motor de métricas divide por este valor.
func (s *Service) SetCalorieGoal(ctx context.Context, id string, goal decimal.Decimal) (Animal, error) {
	if !goal.IsPositive() {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	a.DailyCalorieGoal = goal
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) ListByIDs(ctx context.Context, ids []string) ([]Animal, error) {
	if len(ids) == 0 {
		return []Animal{}, nil
	}
	return s.repo.ListByIDs(ctx, ids)
}
