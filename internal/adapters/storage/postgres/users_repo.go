package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Crypto-Mikael/pet-track/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, clerk_id,
			name, email, cpf, phone,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		u.ID,
		u.ClerkID,
		u.Name,
		u.Email,
		u.CPF,
		u.Phone,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, clerk_id, name, email, cpf, phone, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UsersRepo) GetByClerkID(ctx context.Context, clerkID string) (users.User, error) {
	clerkID = strings.TrimSpace(clerkID)
	if clerkID == "" {
		return users.User{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, clerk_id, name, email, cpf, phone, created_at, updated_at
		FROM users
		WHERE clerk_id = $1
	`, clerkID))
}

func (r *UsersRepo) scanOne(row *sql.Row) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.ClerkID,
		&u.Name,
		&u.Email,
		&u.CPF,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
