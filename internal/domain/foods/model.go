package foods

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food es un evento de alimentación. CreatedAt ES el momento del evento
// (no solo auditoría): se usa para bucketear las comidas de "hoy".
// Los campos numéricos son decimal para que la suma de kcal sea exacta.
type Food struct {
	ID       string
	AnimalID string

	Name   string
	Amount decimal.Decimal
	Kcal   decimal.Decimal

	Protein *decimal.Decimal
	Fat     *decimal.Decimal
	Carbs   *decimal.Decimal

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
