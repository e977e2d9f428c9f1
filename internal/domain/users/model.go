package users

import "time"

// User es el registro interno de una identidad externa (Clerk).
// Se crea lazy la primera vez que vemos el clerk_id (webhook o primer request
// autenticado) y no se borra nunca en los flujos actuales.
type User struct {
	ID      string
	ClerkID string

	Name  string
	Email string
	CPF   string
	Phone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
