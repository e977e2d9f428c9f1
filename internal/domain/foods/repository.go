package foods

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, f Food) error
	Update(ctx context.Context, f Food) error
	GetByID(ctx context.Context, id string) (Food, error)
	// ListByAnimal filtra por CreatedAt en [from, to) y ordena descendente.
	ListByAnimal(ctx context.Context, animalID string, from, to time.Time) ([]Food, error)
	Delete(ctx context.Context, id string) error
}
