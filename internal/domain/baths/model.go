package baths

import "time"

// Bath es un baño registrado. Append-only desde el punto de vista del
// usuario; se puede borrar individualmente (hard delete).
type Bath struct {
	ID       string
	AnimalID string

	Date  time.Time
	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
