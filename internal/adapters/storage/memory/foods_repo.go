package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/foods"
)

type foodsRepo struct {
	mu   sync.RWMutex
	byID map[string]foods.Food
}

func NewFoodsRepo() foods.Repository {
	return &foodsRepo{
		byID: make(map[string]foods.Food),
	}
}

func (r *foodsRepo) Create(ctx context.Context, f foods.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("food id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("food already exists")
	}
	r.byID[f.ID] = f
	return nil
}

func (r *foodsRepo) Update(ctx context.Context, f foods.Food) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[f.ID]; !exists {
		return ErrNotFound
	}
	r.byID[f.ID] = f
	return nil
}

func (r *foodsRepo) GetByID(ctx context.Context, id string) (foods.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return foods.Food{}, ErrNotFound
	}
	return f, nil
}

func (r *foodsRepo) ListByAnimal(ctx context.Context, animalID string, from, to time.Time) ([]foods.Food, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]foods.Food, 0)
	for _, f := range r.byID {
		if f.AnimalID != animalID {
			continue
		}
		// [from, to)
		if f.CreatedAt.Before(from) || !f.CreatedAt.Before(to) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *foodsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
