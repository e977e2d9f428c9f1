package postgres

import (
	"context"
	"database/sql"

	"github.com/Crypto-Mikael/pet-track/internal/domain/baths"
)

type BathsRepo struct {
	db *sql.DB
}

func NewBathsRepo(db *sql.DB) *BathsRepo {
	return &BathsRepo{db: db}
}

func (r *BathsRepo) Create(ctx context.Context, b baths.Bath) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO baths (
			id, animal_id, date, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		b.ID,
		b.AnimalID,
		b.Date,
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BathsRepo) GetByID(ctx context.Context, id string) (baths.Bath, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, date, notes, created_at, updated_at
		FROM baths
		WHERE id = $1
	`, id)

	var b baths.Bath
	if err := row.Scan(
		&b.ID,
		&b.AnimalID,
		&b.Date,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return baths.Bath{}, ErrNotFound
		}
		return baths.Bath{}, err
	}
	return b, nil
}

func (r *BathsRepo) ListByAnimal(ctx context.Context, animalID string) ([]baths.Bath, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, date, notes, created_at, updated_at
		FROM baths
		WHERE animal_id = $1
		ORDER BY date ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]baths.Bath, 0)
	for rows.Next() {
		var b baths.Bath
		if err := rows.Scan(
			&b.ID,
			&b.AnimalID,
			&b.Date,
			&b.Notes,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BathsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM baths WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
