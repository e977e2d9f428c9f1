package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Crypto-Mikael/pet-track/internal/domain/baths"
)

type bathsRepo struct {
	mu   sync.RWMutex
	byID map[string]baths.Bath
}

func NewBathsRepo() baths.Repository {
	return &bathsRepo{
		byID: make(map[string]baths.Bath),
	}
}

func (r *bathsRepo) Create(ctx context.Context, b baths.Bath) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("bath id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("bath already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *bathsRepo) GetByID(ctx context.Context, id string) (baths.Bath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return baths.Bath{}, ErrNotFound
	}
	return b, nil
}

func (r *bathsRepo) ListByAnimal(ctx context.Context, animalID string) ([]baths.Bath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]baths.Bath, 0)
	for _, b := range r.byID {
		if b.AnimalID == animalID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *bathsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
