package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents one truckload collection run, identified by a human-assigned
// form number. A trip is the top-level aggregate; animal line items belong to
// a trip and are wholesale-replaced whenever the trip is edited.
type Trip struct {
	ID uuid.UUID `json:"id"`

	// Date is the calendar date of the collection run. Only the date part is
	// meaningful; it is always stored as midnight UTC.
	Date               time.Time `json:"date"`
	Region             string    `json:"region"`
	TruckNo            string    `json:"truck_no"`
	FormNo             string    `json:"form_no"`
	DriverName         string    `json:"driver_name"`
	EscortName         string    `json:"escort_name"`
	PreparedByName     string    `json:"prepared_by_name,omitempty"`
	PreparedByPosition string    `json:"prepared_by_position,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// TripAnimal is one line item within a trip: the animals collected from one
// supplier on that run. TotalAnimals is a derived value — it is recomputed
// from GoatsCount + SheepCount on every write and never trusted from callers.
type TripAnimal struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"trip_id"`
	SupplierID uuid.UUID `json:"supplier_id"`

	// Mark is the brand/ear-mark code identifying the animals' origin on the
	// trip manifest. Defaults to the supplier's DefaultMark when left empty.
	Mark         string    `json:"mark"`
	GoatsCount   int       `json:"goats_count"`
	SheepCount   int       `json:"sheep_count"`
	TotalAnimals int       `json:"total_animals"`
	CreatedAt    time.Time `json:"created_at"`
}

// TripAnimalDetail is a TripAnimal joined with its supplier's display name.
// SupplierName is "Unknown" when the referenced supplier no longer exists —
// a dangling reference degrades gracefully instead of failing the read.
type TripAnimalDetail struct {
	TripAnimal
	SupplierName string `json:"supplier_name"`
}

// TripDetail is a trip with its full set of animal line items, in the order
// they were recorded.
type TripDetail struct {
	Trip
	Animals []TripAnimalDetail `json:"animals"`
}

// Totals sums the animal counts across all line items of the trip.
func (t TripDetail) Totals() (goats, sheep, total int) {
	for _, a := range t.Animals {
		goats += a.GoatsCount
		sheep += a.SheepCount
		total += a.TotalAnimals
	}
	return goats, sheep, total
}
