package postgres

import (
	"context"
	"database/sql"

	"github.com/Crypto-Mikael/pet-track/internal/domain/push"
)

type PushRepo struct {
	db *sql.DB
}

func NewPushRepo(db *sql.DB) *PushRepo {
	return &PushRepo{db: db}
}

func (r *PushRepo) Create(ctx context.Context, s push.Subscription) error {
	// Upsert por endpoint: el browser puede re-suscribir con keys nuevas.
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO push_subscriptions (
			id, user_id, endpoint, p256dh, auth, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (endpoint) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    p256dh = EXCLUDED.p256dh,
		    auth = EXCLUDED.auth
	`,
		s.ID,
		s.UserID,
		s.Endpoint,
		s.P256dh,
		s.Auth,
		s.CreatedAt,
	)
	return err
}

func (r *PushRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM push_subscriptions WHERE endpoint = $1
	`, endpoint)
	return err
}

func (r *PushRepo) ListByUser(ctx context.Context, userID string) ([]push.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]push.Subscription, 0)
	for rows.Next() {
		var s push.Subscription
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Endpoint,
			&s.P256dh,
			&s.Auth,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PushRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
