package users

import "context"

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByClerkID(ctx context.Context, clerkID string) (User, error)
}
