package baths

import "context"

type Repository interface {
	Create(ctx context.Context, b Bath) error
	GetByID(ctx context.Context, id string) (Bath, error)
	// ListByAnimal devuelve todos los baños ordenados por fecha ascendente.
	ListByAnimal(ctx context.Context, animalID string) ([]Bath, error)
	Delete(ctx context.Context, id string) error
}
