package vaccinations

import "time"

// Vaccination es una vacuna aplicada. La renovación es un update de las
// dos fechas, no un registro nuevo.
type Vaccination struct {
	ID       string
	AnimalID string

	VaccineName     string
	ApplicationDate time.Time
	ExpirationDate  time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
