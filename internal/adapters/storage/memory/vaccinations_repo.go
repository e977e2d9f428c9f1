package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Crypto-Mikael/pet-track/internal/domain/vaccinations"
)

type vaccinationsRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccinations.Vaccination
}

func NewVaccinationsRepo() vaccinations.Repository {
	return &vaccinationsRepo{
		byID: make(map[string]vaccinations.Vaccination),
	}
}

func (r *vaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccination id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("vaccination already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccinations.Vaccination{}, ErrNotFound
	}
	return v, nil
}

func (r *vaccinationsRepo) ListByAnimal(ctx context.Context, animalID string) ([]vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.byID {
		if v.AnimalID == animalID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ApplicationDate.After(out[j].ApplicationDate)
	})
	return out, nil
}

func (r *vaccinationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
