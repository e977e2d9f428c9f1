package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/foods"

	"github.com/shopspring/decimal"
)

type FoodsRepo struct {
	db *sql.DB
}

func NewFoodsRepo(db *sql.DB) *FoodsRepo {
	return &FoodsRepo{db: db}
}

func (r *FoodsRepo) Create(ctx context.Context, f foods.Food) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO foods (
			id, animal_id,
			name, amount, kcal,
			protein, fat, carbs,
			notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		f.ID,
		f.AnimalID,
		f.Name,
		f.Amount,
		f.Kcal,
		toNullDecimal(f.Protein),
		toNullDecimal(f.Fat),
		toNullDecimal(f.Carbs),
		f.Notes,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *FoodsRepo) Update(ctx context.Context, f foods.Food) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE foods
		SET
			name = $2,
			amount = $3,
			kcal = $4,
			protein = $5,
			fat = $6,
			carbs = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		f.ID,
		f.Name,
		f.Amount,
		f.Kcal,
		toNullDecimal(f.Protein),
		toNullDecimal(f.Fat),
		toNullDecimal(f.Carbs),
		f.Notes,
		f.UpdatedAt,
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

func (r *FoodsRepo) GetByID(ctx context.Context, id string) (foods.Food, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, name, amount, kcal, protein, fat, carbs, notes, created_at, updated_at
		FROM foods
		WHERE id = $1
	`, id)

	f, err := scanFood(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return foods.Food{}, ErrNotFound
		}
		return foods.Food{}, err
	}
	return f, nil
}

func (r *FoodsRepo) ListByAnimal(ctx context.Context, animalID string, from, to time.Time) ([]foods.Food, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, name, amount, kcal, protein, fat, carbs, notes, created_at, updated_at
		FROM foods
		WHERE animal_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC
	`, animalID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]foods.Food, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FoodsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanFood(row rowScanner) (foods.Food, error) {
	var f foods.Food
	var protein, fat, carbs decimal.NullDecimal
	err := row.Scan(
		&f.ID,
		&f.AnimalID,
		&f.Name,
		&f.Amount,
		&f.Kcal,
		&protein,
		&fat,
		&carbs,
		&f.Notes,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return foods.Food{}, err
	}

	f.Protein = fromNullDecimal(protein)
	f.Fat = fromNullDecimal(fat)
	f.Carbs = fromNullDecimal(carbs)
	return f, nil
}

// Macros opcionales: NULL en DB <-> puntero nil en el modelo.
func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}
