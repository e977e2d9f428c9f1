package push

import "context"

type Repository interface {
	// Create reemplaza la suscripción si el endpoint ya existe (el browser
	// puede re-suscribir con claves nuevas).
	Create(ctx context.Context, s Subscription) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	ListByUser(ctx context.Context, userID string) ([]Subscription, error)
	Delete(ctx context.Context, id string) error
}
