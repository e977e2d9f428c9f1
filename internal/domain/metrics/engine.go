package metrics

import (
	"errors"
	"math"
	"time"

	"github.com/Crypto-Mikael/pet-track/internal/domain/animals"
	"github.com/Crypto-Mikael/pet-track/internal/domain/baths"
	"github.com/Crypto-Mikael/pet-track/internal/domain/foods"
	"github.com/Crypto-Mikael/pet-track/internal/domain/vaccinations"

	"github.com/shopspring/decimal"
)

// ErrInvalidGoal: la meta de calorías del animal no es positiva. El motor
// divide por la meta, así que un cero haría explotar el cálculo.
var ErrInvalidGoal = errors.New("daily calorie goal must be positive")

var hundred = decimal.NewFromInt(100)

// Snapshot es el resultado del motor para un animal en un instante dado.
// VaccinePercentage es puntero: nil significa "sin vacunas registradas",
// que no es lo mismo que 0% (todas vencidas).
type Snapshot struct {
	BathPercentage int
	BathQtd        int

	DailyCalories          decimal.Decimal
	DailyCaloriePercentage int

	VaccinePercentage *int
	VaccineTotal      int
	VaccineValid      int
}

// Compute es una función pura: mismas entradas, mismo snapshot. No toca
// repos ni relojes; el caller decide qué es "now" y qué comidas son de hoy.
func Compute(now time.Time, animal animals.Animal, todaysFoods []foods.Food, allBaths []baths.Bath, vaccs []vaccinations.Vaccination) (Snapshot, error) {
	goal := animal.DailyCalorieGoal
	if goal.Sign() <= 0 {
		return Snapshot{}, ErrInvalidGoal
	}

	snap := Snapshot{
		BathQtd:      len(allBaths),
		VaccineTotal: len(vaccs),
	}

	snap.BathPercentage = bathPercentage(now, animal.BathsCycleDays, allBaths)

	total := decimal.Zero
	for _, f := range todaysFoods {
		total = total.Add(f.Kcal)
	}
	snap.DailyCalories = total
	// Sin clamp: 650/500 da 130 y el caller decide cómo mostrarlo.
	pct := total.Div(goal).Mul(hundred).Round(0)
	snap.DailyCaloriePercentage = int(pct.IntPart())

	valid := 0
	for _, v := range vaccs {
		if !v.ExpirationDate.Before(now) {
			valid++
		}
	}
	snap.VaccineValid = valid
	if len(vaccs) > 0 {
		p := int(math.Round(float64(valid) / float64(len(vaccs)) * 100))
		snap.VaccinePercentage = &p
	}

	return snap, nil
}

// bathPercentage: 100 recién bañado, decae linealmente hasta 0 al cumplir
// el ciclo. Sin baños registrados devuelve 0 (no hay de dónde contar).
func bathPercentage(now time.Time, cycleDays int, allBaths []baths.Bath) int {
	if len(allBaths) == 0 {
		return 0
	}
	if cycleDays <= 0 {
		cycleDays = animals.DefaultBathsCycleDays
	}

	last := allBaths[0].Date
	for _, b := range allBaths[1:] {
		if b.Date.After(last) {
			last = b.Date
		}
	}

	daysWithout := int(now.Sub(last).Hours() / 24)
	// un solo redondeo sobre la expresión completa, no sobre el término interno
	pct := int(math.Round(100 - float64(daysWithout)/float64(cycleDays)*100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
