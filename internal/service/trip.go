package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
// It holds the supplier repo as well because line items default their mark
// from the supplier's DefaultMark when none is supplied.
type TripService struct {
	trips     repo.TripRepo
	suppliers repo.SupplierRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, suppliers repo.SupplierRepo) *TripService {
	return &TripService{trips: trips, suppliers: suppliers}
}

// Create validates and persists a new trip with its line items.
// Returns domain.ErrValidation if the trip has no line items, a line item has
// no supplier selected, or a count is negative.
func (s *TripService) Create(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	if err := validateTrip(trip, animals); err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	trip.Date = dateOnly(trip.Date)
	animals = s.applyDefaultMarks(ctx, animals)

	result, err := s.trips.Create(ctx, trip, animals)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip with its line items.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of trips ordered by date descending, plus the total
// trip count. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates the trip and replaces its full line-item set.
func (s *TripService) Update(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	if err := validateTrip(trip, animals); err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	trip.Date = dateOnly(trip.Date)
	animals = s.applyDefaultMarks(ctx, animals)

	result, err := s.trips.Update(ctx, trip, animals)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and its line items by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces the business rules for trip writes.
func validateTrip(trip domain.Trip, animals []domain.TripAnimal) error {
	switch {
	case trip.Date.IsZero():
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	case strings.TrimSpace(trip.Region) == "":
		return fmt.Errorf("%w: region is required", domain.ErrValidation)
	case strings.TrimSpace(trip.TruckNo) == "":
		return fmt.Errorf("%w: truck_no is required", domain.ErrValidation)
	case strings.TrimSpace(trip.FormNo) == "":
		return fmt.Errorf("%w: form_no is required", domain.ErrValidation)
	case strings.TrimSpace(trip.DriverName) == "":
		return fmt.Errorf("%w: driver_name is required", domain.ErrValidation)
	case strings.TrimSpace(trip.EscortName) == "":
		return fmt.Errorf("%w: escort_name is required", domain.ErrValidation)
	case len(animals) == 0:
		return fmt.Errorf("%w: a trip needs at least one animal row", domain.ErrValidation)
	}

	for i, a := range animals {
		switch {
		case a.SupplierID == uuid.Nil:
			return fmt.Errorf("%w: animal row %d has no supplier selected", domain.ErrValidation, i+1)
		case a.GoatsCount < 0:
			return fmt.Errorf("%w: animal row %d has a negative goats count", domain.ErrValidation, i+1)
		case a.SheepCount < 0:
			return fmt.Errorf("%w: animal row %d has a negative sheep count", domain.ErrValidation, i+1)
		}
	}
	return nil
}

// applyDefaultMarks fills each line item's empty mark with the supplier's
// DefaultMark. A supplier lookup failure leaves the mark empty rather than
// failing the write.
func (s *TripService) applyDefaultMarks(ctx context.Context, animals []domain.TripAnimal) []domain.TripAnimal {
	out := make([]domain.TripAnimal, len(animals))
	copy(out, animals)

	// One lookup per distinct supplier; trips rarely have more than a
	// handful of line items.
	marks := map[uuid.UUID]string{}
	for i, a := range out {
		if strings.TrimSpace(a.Mark) != "" {
			continue
		}
		mark, ok := marks[a.SupplierID]
		if !ok {
			if sup, err := s.suppliers.GetByID(ctx, a.SupplierID); err == nil {
				mark = sup.DefaultMark
			}
			marks[a.SupplierID] = mark
		}
		out[i].Mark = mark
	}
	return out
}

// dateOnly truncates t to midnight UTC; trips carry calendar dates only.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
