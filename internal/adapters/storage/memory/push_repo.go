package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Crypto-Mikael/pet-track/internal/domain/push"
)

type pushRepo struct {
	mu         sync.RWMutex
	byID       map[string]push.Subscription
	byEndpoint map[string]string // endpoint -> id
}

func NewPushRepo() push.Repository {
	return &pushRepo{
		byID:       make(map[string]push.Subscription),
		byEndpoint: make(map[string]string),
	}
}

func (r *pushRepo) Create(ctx context.Context, s push.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("subscription id required")
	}
	// re-suscripción del mismo endpoint reemplaza la anterior
	if oldID, exists := r.byEndpoint[s.Endpoint]; exists {
		delete(r.byID, oldID)
	}
	r.byID[s.ID] = s
	r.byEndpoint[s.Endpoint] = s.ID
	return nil
}

func (r *pushRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEndpoint[endpoint]
	if !ok {
		return nil
	}
	delete(r.byID, id)
	delete(r.byEndpoint, endpoint)
	return nil
}

func (r *pushRepo) ListByUser(ctx context.Context, userID string) ([]push.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]push.Subscription, 0)
	for _, s := range r.byID {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *pushRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byEndpoint, s.Endpoint)
	return nil
}
