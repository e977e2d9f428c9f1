package access

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUserNotFound   = errors.New("user not found")
	ErrAnimalNotFound = errors.New("animal not found")
	ErrForbidden      = errors.New("forbidden")
	ErrAlreadyShared  = errors.New("already shared")
	ErrNotFound       = errors.New("association not found")
)

// UserLookup resuelve identidad externa -> ID interno (módulo users).
type UserLookup interface {
	InternalID(ctx context.Context, externalID string) (string, error)
}

// AnimalLookup expone el owner de un animal (módulo animals).
// Evita el ciclo access <-> animals.
type AnimalLookup interface {
	OwnerOf(ctx context.Context, animalID string) (string, error)
}

type Service struct {
	repo    Repository
	users   UserLookup
	animals AnimalLookup
	now     func() time.Time
}

func NewService(repo Repository, users UserLookup, animals AnimalLookup) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		animals: animals,
		now:     time.Now,
	}
}

// Authorize es el gate previo a cualquier lectura/escritura sobre los
// registros de un animal. Dos reads, cero writes:
//  1. identidad externa -> usuario interno (ErrUserNotFound si no hay fila)
//  2. owner directo, o fila (animal, user) en la asociación (ErrForbidden si
//     no hay ninguna de las dos)
//
// Devuelve el actor resuelto (usuario + rol efectivo) para que el caller
// siga con la operación ya scopeada.
func (s *Service) Authorize(ctx context.Context, externalID, animalID string) (Actor, error) {
	externalID = strings.TrimSpace(externalID)
	animalID = strings.TrimSpace(animalID)
	if externalID == "" || animalID == "" {
		return Actor{}, ErrInvalidInput
	}

	userID, err := s.users.InternalID(ctx, externalID)
	if err != nil {
		return Actor{}, ErrUserNotFound
	}

	ownerID, err := s.animals.OwnerOf(ctx, animalID)
	if err != nil {
		return Actor{}, ErrAnimalNotFound
	}
	if ownerID == userID {
		return Actor{UserID: userID, Role: RoleOwner}, nil
	}

	au, err := s.repo.Get(ctx, animalID, userID)
	if err != nil {
		return Actor{}, ErrForbidden
	}
	return Actor{UserID: userID, Role: au.Role}, nil
}

// ResolveUserID mapea identidad externa -> ID interno para los handlers que
// operan antes de que exista un animal (create / listados).
func (s *Service) ResolveUserID(ctx context.Context, externalID string) (string, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return "", ErrInvalidInput
	}
	id, err := s.users.InternalID(ctx, externalID)
	if err != nil {
		return "", ErrUserNotFound
	}
	return id, nil
}

type GrantInput struct {
	AnimalID   string
	ExternalID string
	Role       Role
}

// Grant materializa el share-link: cualquier usuario autenticado que abra el
// link (animal + rol) recibe ese rol. Duplicados fallan con ErrAlreadyShared;
// el pre-check es racy por sí solo, así que el constraint único del store es
// el que decide (ErrDuplicate -> ErrAlreadyShared).
func (s *Service) Grant(ctx context.Context, in GrantInput) (AnimalUser, error) {
	animalID := strings.TrimSpace(in.AnimalID)
	externalID := strings.TrimSpace(in.ExternalID)
	if animalID == "" || externalID == "" || !ValidRole(in.Role) {
		return AnimalUser{}, ErrInvalidInput
	}

	userID, err := s.users.InternalID(ctx, externalID)
	if err != nil {
		return AnimalUser{}, ErrUserNotFound
	}

	ownerID, err := s.animals.OwnerOf(ctx, animalID)
	if err != nil {
		return AnimalUser{}, ErrAnimalNotFound
	}

	// El owner ya tiene acceso por Animal.OwnerID; una segunda vía de acceso
	// rompería el invariante de fila única en espíritu.
	if ownerID == userID {
		return AnimalUser{}, ErrAlreadyShared
	}

	if _, err := s.repo.Get(ctx, animalID, userID); err == nil {
		return AnimalUser{}, ErrAlreadyShared
	}

	now := s.now()
	au := AnimalUser{
		ID:        uuid.NewString(),
		AnimalID:  animalID,
		UserID:    userID,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, au); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return AnimalUser{}, ErrAlreadyShared
		}
		return AnimalUser{}, err
	}
	return au, nil
}

// Revoke borra la fila (animal, user). Hard delete, sin tombstone.
func (s *Service) Revoke(ctx context.Context, animalID, userID string) error {
	animalID = strings.TrimSpace(animalID)
	userID = strings.TrimSpace(userID)
	if animalID == "" || userID == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, animalID, userID); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]AnimalUser, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

// ListByUser devuelve las asociaciones del usuario (para el listado
// "mis animales": el query ya viene scopeado, no hace falta gate por fila).
func (s *Service) ListByUser(ctx context.Context, userID string) ([]AnimalUser, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}
