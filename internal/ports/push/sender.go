package push

import "context"

// Endpoint describe una suscripción web-push mínima (endpoint + keys).
type Endpoint struct {
	URL    string
	P256dh string
	Auth   string
}

// Notification es el payload ya armado que se intenta entregar.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon,omitempty"`
	Badge string `json:"badge,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// Sender entrega una notificación a un endpoint. Best-effort:
// el caller decide qué hacer con el error (normalmente loguear y seguir).
type Sender interface {
	Send(ctx context.Context, ep Endpoint, n Notification) error
	// Gone indica si el error significa que el endpoint ya no existe
	// (404/410) y conviene borrar la suscripción.
	Gone(err error) bool
}
