package vaccinations

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	Update(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)
	// ListByAnimal ordena por fecha de aplicación descendente.
	ListByAnimal(ctx context.Context, animalID string) ([]Vaccination, error)
	Delete(ctx context.Context, id string) error
}
