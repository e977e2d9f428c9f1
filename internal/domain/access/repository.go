package access

import (
	"context"
	"errors"
)

// ErrDuplicate lo devuelve Create cuando ya existe fila para (animal, user).
// En Postgres sale del unique constraint, así dos grants concurrentes
// idénticos no pueden insertarse ambos.
var ErrDuplicate = errors.New("association already exists")

type Repository interface {
	Create(ctx context.Context, au AnimalUser) error
	Get(ctx context.Context, animalID, userID string) (AnimalUser, error)
	ListByAnimal(ctx context.Context, animalID string) ([]AnimalUser, error)
	ListByUser(ctx context.Context, userID string) ([]AnimalUser, error)
	Delete(ctx context.Context, animalID, userID string) error
}
