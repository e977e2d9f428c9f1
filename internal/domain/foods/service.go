package foods

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
	ErrNotFound     = errors.New("food not found")
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
	Name   string
	Amount decimal.Decimal
	Kcal   decimal.Decimal

	Protein *decimal.Decimal
	Fat     *decimal.Decimal
	Carbs   *decimal.Decimal

	Notes string
}

func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (Food, error) {
	if strings.TrimSpace(animalID) == "" {
		return Food{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Food{}, ErrInvalidInput
	}
	if in.Kcal.IsNegative() || in.Amount.IsNegative() {
		return Food{}, ErrInvalidInput
	}

	now := s.now()
	f := Food{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		Name:      strings.TrimSpace(in.Name),
		Amount:    in.Amount,
		Kcal:      in.Kcal,
		Protein:   in.Protein,
		Fat:       in.Fat,
		Carbs:     in.Carbs,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return Food{}, err
	}
	return f, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	// Para macros opcionales, un decimal negativo no es válido y cero limpia
	// no aplica: la limpieza explícita no está en los flujos observados.
	Name   *string
	Amount *decimal.Decimal
	Kcal   *decimal.Decimal

	Protein *decimal.Decimal
	Fat     *decimal.Decimal
	Carbs   *decimal.Decimal

	Notes *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Food, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Food{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Food{}, ErrInvalidInput
		}
		f.Name = name
	}
	if in.Amount != nil {
		if in.Amount.IsNegative() {
			return Food{}, ErrInvalidInput
		}
		f.Amount = *in.Amount
	}
	if in.Kcal != nil {
		if in.Kcal.IsNegative() {
			return Food{}, ErrInvalidInput
		}
		f.Kcal = *in.Kcal
	}
	if in.Protein != nil {
		f.Protein = in.Protein
	}
	if in.Fat != nil {
		f.Fat = in.Fat
	}
	if in.Carbs != nil {
		f.Carbs = in.Carbs
	}
	if in.Notes != nil {
		f.Notes = strings.TrimSpace(*in.Notes)
	}

	f.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, f); err != nil {
		return Food{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Food, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Food{}, ErrInvalidInput
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Food{}, ErrNotFound
	}
	return f, nil
}

// ListForDay devuelve las comidas cuyo CreatedAt cae en el día calendario
// de `day` según la zona del caller: [inicio del día, fin del día).
func (s *Service) ListForDay(ctx context.Context, animalID string, day time.Time, loc *time.Location) ([]Food, error) {
	if strings.TrimSpace(animalID) == "" {
		return nil, ErrInvalidInput
	}
	from, to := DayWindow(day, loc)
	return s.repo.ListByAnimal(ctx, animalID, from, to)
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

// DayWindow calcula [00:00, 24:00) del día de t en la zona loc.
// Medianoche "siguiente" vía AddDate para sobrevivir cambios de DST.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
