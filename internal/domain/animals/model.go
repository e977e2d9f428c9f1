package animals

import (
	"time"

	"github.com/shopspring/decimal"
)

// Gender define el sexo del animal.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Defaults del esquema: ciclo de baño en días y meta diaria de calorías.
const DefaultBathsCycleDays = 28

var DefaultDailyCalorieGoal = decimal.NewFromInt(500)

// Animal es la mascota registrada: unidad de ownership y de compartir.
// WeightKg y DailyCalorieGoal son numeric (decimal), no float, para que la
// suma de calorías no arrastre redondeos binarios.
type Animal struct {
	ID      string
	OwnerID string

	Name    string
	Details string
	Breed   string
	Gender  Gender

	// Age es la fecha de nacimiento (el nombre viene del esquema original).
	Age time.Time

	ImageURL string
	WeightKg decimal.Decimal

	BathsCycleDays   int
	DailyCalorieGoal decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}
