package metrics

import (
	"testing"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/animals"
	"github.com/Crypto-Mikael/pet-track/internal/domain/baths"
	"github.com/Crypto-Mikael/pet-track/internal/domain/foods"
	"github.com/Crypto-Mikael/pet-track/internal/domain/vaccinations"

	"github.com/shopspring/decimal"
)

func testAnimal(cycleDays int, goal int64) animals.Animal {
	return animals.Animal{
		ID:               "animal-1",
		OwnerID:          "user-1",
		Name:             "Milo",
		BathsCycleDays:   cycleDays,
		DailyCalorieGoal: decimal.NewFromInt(goal),
	}
}

func bathAt(t time.Time) baths.Bath {
	return baths.Bath{ID: "b", AnimalID: "animal-1", Date: t}
}

func foodKcal(kcal int64) foods.Food {
	return foods.Food{ID: "f", AnimalID: "animal-1", Kcal: decimal.NewFromInt(kcal)}
}

func vaccExpiring(exp time.Time) vaccinations.Vaccination {
	return vaccinations.Vaccination{
		ID:             "v",
		AnimalID:       "animal-1",
		VaccineName:    "rabies",
		ExpirationDate: exp,
	}
}

func TestCompute_BathPercentage(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		cycleDays int
		baths     []baths.Bath
		want      int
	}{
		{
			name:      "mitad del ciclo",
			cycleDays: 28,
			baths:     []baths.Bath{bathAt(now.AddDate(0, 0, -14))},
			want:      50,
		},
		{
			name:      "recien bañado",
			cycleDays: 28,
			baths:     []baths.Bath{bathAt(now)},
			want:      100,
		},
		{
			name:      "ciclo vencido clampa a cero",
			cycleDays: 28,
			baths:     []baths.Bath{bathAt(now.AddDate(0, 0, -60))},
			want:      0,
		},
		{
			name:      "sin baños",
			cycleDays: 28,
			baths:     nil,
			want:      0,
		},
		{
			name:      "usa el baño mas reciente",
			cycleDays: 28,
			baths: []baths.Bath{
				bathAt(now.AddDate(0, 0, -50)),
				bathAt(now.AddDate(0, 0, -7)),
				bathAt(now.AddDate(0, 0, -30)),
			},
			want: 75,
		},
		{
			name:      "ciclo invalido cae al default",
			cycleDays: 0,
			baths:     []baths.Bath{bathAt(now.AddDate(0, 0, -14))},
			want:      50,
		},
		{
			// 1/8 del ciclo: round(100 - 12.5) = 88, no 100 - round(12.5) = 87
			name:      "redondeo sobre la expresion completa",
			cycleDays: 8,
			baths:     []baths.Bath{bathAt(now.AddDate(0, 0, -1))},
			want:      88,
		},
		{
			// 3/8 del ciclo: round(100 - 37.5) = 63
			name:      "redondeo en frontera de medio punto",
			cycleDays: 8,
			baths:     []baths.Bath{bathAt(now.AddDate(0, 0, -3))},
			want:      63,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Compute(now, testAnimal(tt.cycleDays, 500), nil, tt.baths, nil)
			if err != nil {
				t.Fatalf("Compute error: %v", err)
			}
			if snap.BathPercentage != tt.want {
				t.Fatalf("expected bath pct %d, got %d", tt.want, snap.BathPercentage)
			}
			if snap.BathQtd != len(tt.baths) {
				t.Fatalf("expected bath qtd %d, got %d", len(tt.baths), snap.BathQtd)
			}
		})
	}
}

func TestCompute_Calories(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// 650 / 500 => 130, sin clamp
	snap, err := Compute(now, testAnimal(28, 500), []foods.Food{foodKcal(400), foodKcal(250)}, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if snap.DailyCaloriePercentage != 130 {
		t.Fatalf("expected 130, got %d", snap.DailyCaloriePercentage)
	}
	if !snap.DailyCalories.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("expected 650 kcal, got %s", snap.DailyCalories)
	}

	// sin comidas: 0 / goal => 0
	snap, err = Compute(now, testAnimal(28, 500), nil, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if snap.DailyCaloriePercentage != 0 {
		t.Fatalf("expected 0, got %d", snap.DailyCaloriePercentage)
	}
}

func TestCompute_InvalidGoal(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	if _, err := Compute(now, testAnimal(28, 0), nil, nil, nil); err != ErrInvalidGoal {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestCompute_Vaccines(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// 4 vacunas, 1 vencida => 75%
	vaccs := []vaccinations.Vaccination{
		vaccExpiring(now.AddDate(1, 0, 0)),
		vaccExpiring(now.AddDate(0, 6, 0)),
		vaccExpiring(now.AddDate(0, 0, 1)),
		vaccExpiring(now.AddDate(0, 0, -1)),
	}
	snap, err := Compute(now, testAnimal(28, 500), nil, nil, vaccs)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if snap.VaccinePercentage == nil || *snap.VaccinePercentage != 75 {
		t.Fatalf("expected 75, got %v", snap.VaccinePercentage)
	}
	if snap.VaccineTotal != 4 || snap.VaccineValid != 3 {
		t.Fatalf("expected total=4 valid=3, got total=%d valid=%d", snap.VaccineTotal, snap.VaccineValid)
	}

	// vencer exactamente ahora todavía cuenta como válida
	snap, err = Compute(now, testAnimal(28, 500), nil, nil, []vaccinations.Vaccination{vaccExpiring(now)})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if snap.VaccineValid != 1 {
		t.Fatalf("expected vaccine expiring now to count as valid")
	}

	// sin vacunas: porcentaje nil, no cero
	snap, err = Compute(now, testAnimal(28, 500), nil, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if snap.VaccinePercentage != nil {
		t.Fatalf("expected nil vaccine pct without records, got %d", *snap.VaccinePercentage)
	}

	// todas vencidas: 0%, distinto de nil
	snap, err = Compute(now, testAnimal(28, 500), nil, nil, []vaccinations.Vaccination{vaccExpiring(now.AddDate(0, 0, -10))})
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if snap.VaccinePercentage == nil || *snap.VaccinePercentage != 0 {
		t.Fatalf("expected explicit 0 pct with all expired, got %v", snap.VaccinePercentage)
	}
}
