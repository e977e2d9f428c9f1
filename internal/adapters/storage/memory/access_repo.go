package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Crypto-Mikael/pet-track/internal/domain/access"
)

type accessRepo struct {
	mu     sync.RWMutex
	byID   map[string]access.AnimalUser
	byPair map[string]string // animal_id+"/"+user_id -> id
}

func NewAccessRepo() access.Repository {
	return &accessRepo{
		byID:   make(map[string]access.AnimalUser),
		byPair: make(map[string]string),
	}
}

func pairKey(animalID, userID string) string {
	return animalID + "/" + userID
}

func (r *accessRepo) Create(ctx context.Context, au access.AnimalUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(au.ID) == "" {
		return errors.New("association id required")
	}
	// chequeo de par bajo el mismo lock: equivalente al unique de postgres
	key := pairKey(au.AnimalID, au.UserID)
	if _, exists := r.byPair[key]; exists {
		return access.ErrDuplicate
	}
	r.byID[au.ID] = au
	r.byPair[key] = au.ID
	return nil
}

func (r *accessRepo) Get(ctx context.Context, animalID, userID string) (access.AnimalUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[pairKey(animalID, userID)]
	if !ok {
		return access.AnimalUser{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *accessRepo) ListByAnimal(ctx context.Context, animalID string) ([]access.AnimalUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]access.AnimalUser, 0)
	for _, au := range r.byID {
		if au.AnimalID == animalID {
			out = append(out, au)
		}
	}
	sortAnimalUsers(out)
	return out, nil
}

func (r *accessRepo) ListByUser(ctx context.Context, userID string) ([]access.AnimalUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]access.AnimalUser, 0)
	for _, au := range r.byID {
		if au.UserID == userID {
			out = append(out, au)
		}
	}
	sortAnimalUsers(out)
	return out, nil
}

func (r *accessRepo) Delete(ctx context.Context, animalID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(animalID, userID)
	id, ok := r.byPair[key]
	if !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byPair, key)
	return nil
}

func sortAnimalUsers(out []access.AnimalUser) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}
