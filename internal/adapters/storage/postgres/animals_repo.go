package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Crypto-Mikael/pet-track/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, owner_id,
	name, details, breed, gender,
	age, image_url, weight_kg,
	baths_cycle_days, daily_calorie_goal,
	created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.OwnerID,
		a.Name,
		a.Details,
		a.Breed,
		a.Gender,
		a.Age,
		a.ImageURL,
		a.WeightKg,
		a.BathsCycleDays,
		a.DailyCalorieGoal,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			details = $3,
			breed = $4,
			gender = $5,
			age = $6,
			image_url = $7,
			weight_kg = $8,
			baths_cycle_days = $9,
			daily_calorie_goal = $10,
			updated_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Details,
		a.Breed,
		a.Gender,
		a.Age,
		a.ImageURL,
		a.WeightKg,
		a.BathsCycleDays,
		a.DailyCalorieGoal,
		a.UpdatedAt,
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

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	// Las tablas hijas (baths, foods, vaccinations, animal_users) tienen
	// ON DELETE CASCADE; acá alcanza con borrar la fila principal.
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, ownerID string) ([]animals.Animal, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAnimals(rows)
}

func (r *AnimalsRepo) ListByIDs(ctx context.Context, ids []string) ([]animals.Animal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = ANY($1)
		ORDER BY created_at ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAnimals(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Name,
		&a.Details,
		&a.Breed,
		&a.Gender,
		&a.Age,
		&a.ImageURL,
		&a.WeightKg,
		&a.BathsCycleDays,
		&a.DailyCalorieGoal,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

func collectAnimals(rows *sql.Rows) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
