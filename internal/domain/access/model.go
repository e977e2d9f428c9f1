package access

import "time"

// Role define qué es el usuario respecto al animal.
// @Enum owner, caretaker, vet
type Role string

const (
	RoleOwner     Role = "owner"
	RoleCaretaker Role = "caretaker"
	RoleVet       Role = "vet"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleCaretaker, RoleVet:
		return true
	default:
		return false
	}
}

// AnimalUser es la fila de asociación (animal, user, role).
// Invariante: a lo sumo una fila por par (animal, user); el duplicado se
// rechaza, no se upsertea. El owner vive en Animal.OwnerID y esta tabla
// otorga caretakers/vets adicionales.
type AnimalUser struct {
	ID string

	AnimalID string
	UserID   string
	Role     Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor es el resultado del gate: usuario interno resuelto + su rol
// efectivo sobre el animal.
type Actor struct {
	UserID string
	Role   Role
}
