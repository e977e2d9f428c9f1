package postgres

import (
	"context"
	"database/sql"

	"github.com/Crypto-Mikael/pet-track/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (
			id, animal_id, vaccine_name,
			application_date, expiration_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		v.ID,
		v.AnimalID,
		v.VaccineName,
		v.ApplicationDate,
		v.ExpirationDate,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccinations
		SET
			vaccine_name = $2,
			application_date = $3,
			expiration_date = $4,
			updated_at = $5
		WHERE id = $1
	`,
		v.ID,
		v.VaccineName,
		v.ApplicationDate,
		v.ExpirationDate,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, vaccine_name, application_date, expiration_date, created_at, updated_at
		FROM vaccinations
		WHERE id = $1
	`, id)

	var v vaccinations.Vaccination
	if err := row.Scan(
		&v.ID,
		&v.AnimalID,
		&v.VaccineName,
		&v.ApplicationDate,
		&v.ExpirationDate,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return vaccinations.Vaccination{}, ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}
	return v, nil
}

func (r *VaccinationsRepo) ListByAnimal(ctx context.Context, animalID string) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, vaccine_name, application_date, expiration_date, created_at, updated_at
		FROM vaccinations
		WHERE animal_id = $1
		ORDER BY application_date DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		var v vaccinations.Vaccination
		if err := rows.Scan(
			&v.ID,
			&v.AnimalID,
			&v.VaccineName,
			&v.ApplicationDate,
			&v.ExpirationDate,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccinations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
