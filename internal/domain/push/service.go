package push

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pushport "github.com/Crypto-Mikael/pet-track/internal/ports/push"

	"github.com/Crypto-Mikael/pet-track/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = errors.New("user not found")
)

// UserLookup resuelve el ID externo (Clerk) al ID interno.
type UserLookup interface {
	InternalID(ctx context.Context, clerkID string) (string, error)
}

type Service struct {
	repo   Repository
	users  UserLookup
	sender pushport.Sender
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, users UserLookup, sender pushport.Sender, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		sender: sender,
		log:    log,
		now:    time.Now,
	}
}

type SubscribeInput struct {
	Endpoint string
	P256dh   string
	Auth     string
}

func (s *Service) Subscribe(ctx context.Context, externalID string, in SubscribeInput) (Subscription, error) {
	userID, err := s.users.InternalID(ctx, externalID)
	if err != nil {
		return Subscription{}, ErrUserNotFound
	}

	if strings.TrimSpace(in.Endpoint) == "" || strings.TrimSpace(in.P256dh) == "" || strings.TrimSpace(in.Auth) == "" {
		return Subscription{}, ErrInvalidInput
	}

	sub := Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Endpoint:  strings.TrimSpace(in.Endpoint),
		P256dh:    strings.TrimSpace(in.P256dh),
		Auth:      strings.TrimSpace(in.Auth),
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

func (s *Service) Unsubscribe(ctx context.Context, externalID, endpoint string) error {
	if _, err := s.users.InternalID(ctx, externalID); err != nil {
		return ErrUserNotFound
	}
	if strings.TrimSpace(endpoint) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByEndpoint(ctx, strings.TrimSpace(endpoint))
}

type SendInput struct {
	Type    string // feed | medicine | vet | bath | general
	PetName string
	Message string
}

// Send entrega la notificación a todos los endpoints del usuario. Es
// best-effort y síncrono: los fallos se loguean y no cortan la respuesta;
// los endpoints muertos (404/410) se podan al vuelo.
func (s *Service) Send(ctx context.Context, externalID string, in SendInput) (int, error) {
	userID, err := s.users.InternalID(ctx, externalID)
	if err != nil {
		return 0, ErrUserNotFound
	}

	subs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.sender == nil {
		// sin sender configurado (dev): la ruta existe pero no entrega nada
		s.log.Debug("push sender not configured", map[string]any{"user_id": userID})
		return 0, nil
	}

	n := buildNotification(in)

	sent := 0
	for _, sub := range subs {
		ep := pushport.Endpoint{URL: sub.Endpoint, P256dh: sub.P256dh, Auth: sub.Auth}
		if err := s.sender.Send(ctx, ep, n); err != nil {
			if s.sender.Gone(err) {
				if derr := s.repo.Delete(ctx, sub.ID); derr != nil {
					s.log.Warn("push prune failed", map[string]any{"subscription_id": sub.ID, "error": derr.Error()})
				}
				continue
			}
			s.log.Warn("push send failed", map[string]any{"subscription_id": sub.ID, "error": err.Error()})
			continue
		}
		sent++
	}
	return sent, nil
}

// buildNotification arma título y cuerpo por tipo de recordatorio.
func buildNotification(in SendInput) pushport.Notification {
	pet := strings.TrimSpace(in.PetName)
	if pet == "" {
		pet = "your pet"
	}

	n := pushport.Notification{
		Icon:  "/icon-192x192.png",
		Badge: "/icon-192x192.png",
		Data:  map[string]string{"type": in.Type},
	}

	switch in.Type {
	case "feed":
		n.Title = fmt.Sprintf("Time to feed %s!", pet)
		n.Body = fmt.Sprintf("%s is due for feeding. Don't forget! 🍖", pet)
	case "medicine":
		n.Title = fmt.Sprintf("Medicine time for %s", pet)
		n.Body = fmt.Sprintf("%s needs their medicine. 💊", pet)
	case "vet":
		n.Title = fmt.Sprintf("Vet appointment for %s", pet)
		n.Body = fmt.Sprintf("Don't forget %s's vet appointment! 🏥", pet)
	case "bath":
		n.Title = fmt.Sprintf("Bath time for %s!", pet)
		n.Body = fmt.Sprintf("%s is due for a bath. 🛁", pet)
	default:
		n.Title = "Pet Track"
		n.Body = in.Message
		if strings.TrimSpace(n.Body) == "" {
			n.Body = fmt.Sprintf("You have a reminder about %s.", pet)
		}
	}
	return n
}
