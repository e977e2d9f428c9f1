package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Crypto-Mikael/pet-track/internal/domain/access"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type AccessRepo struct {
	db *sql.DB
}

func NewAccessRepo(db *sql.DB) *AccessRepo {
	return &AccessRepo{db: db}
}

func (r *AccessRepo) Create(ctx context.Context, au access.AnimalUser) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_users (
			id, animal_id, user_id, role,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		au.ID,
		au.AnimalID,
		au.UserID,
		au.Role,
		au.CreatedAt,
		au.UpdatedAt,
	)
	if err != nil {
		// UNIQUE (animal_id, user_id): dos grants concurrentes no pueden
		// insertarse ambos, el perdedor sale por acá.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return access.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *AccessRepo) Get(ctx context.Context, animalID, userID string) (access.AnimalUser, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, user_id, role, created_at, updated_at
		FROM animal_users
		WHERE animal_id = $1 AND user_id = $2
	`, animalID, userID)

	var au access.AnimalUser
	if err := row.Scan(
		&au.ID,
		&au.AnimalID,
		&au.UserID,
		&au.Role,
		&au.CreatedAt,
		&au.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return access.AnimalUser{}, ErrNotFound
		}
		return access.AnimalUser{}, err
	}
	return au, nil
}

func (r *AccessRepo) ListByAnimal(ctx context.Context, animalID string) ([]access.AnimalUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, user_id, role, created_at, updated_at
		FROM animal_users
		WHERE animal_id = $1
		ORDER BY created_at ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAnimalUsers(rows)
}

func (r *AccessRepo) ListByUser(ctx context.Context, userID string) ([]access.AnimalUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, user_id, role, created_at, updated_at
		FROM animal_users
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAnimalUsers(rows)
}

func (r *AccessRepo) Delete(ctx context.Context, animalID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM animal_users
		WHERE animal_id = $1 AND user_id = $2
	`, animalID, userID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectAnimalUsers(rows *sql.Rows) ([]access.AnimalUser, error) {
	out := make([]access.AnimalUser, 0)
	for rows.Next() {
		var au access.AnimalUser
		if err := rows.Scan(
			&au.ID,
			&au.AnimalID,
			&au.UserID,
			&au.Role,
			&au.CreatedAt,
			&au.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, au)
	}
	return out, rows.Err()
}
