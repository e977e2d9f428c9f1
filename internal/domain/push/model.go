package push

import "time"

// Subscription es una suscripción Web Push de un usuario. Un usuario puede
// tener varias (un endpoint por navegador/dispositivo).
type Subscription struct {
	ID     string
	UserID string

	Endpoint string
	P256dh   string
	Auth     string

	CreatedAt time.Time
}
