package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Crypto-Mikael/pet-track/internal/domain/users"
)

var (
	ErrNotFound = errors.New("not found")
)

type usersRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byClerk map[string]string // clerk_id -> id
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID:    make(map[string]users.User),
		byClerk: make(map[string]string),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	if _, exists := r.byClerk[u.ClerkID]; exists {
		return errors.New("clerk id already registered")
	}
	r.byID[u.ID] = u
	r.byClerk[u.ClerkID] = u.ID
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByClerkID(ctx context.Context, clerkID string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byClerk[clerkID]
	if !ok {
		return users.User{}, ErrNotFound
	}
	return r.byID[id], nil
}
