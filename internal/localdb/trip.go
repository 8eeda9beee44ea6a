package localdb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// tripStore implements repo.TripRepo against the snapshot.
type tripStore struct {
	st *Store
}

// compile-time check: tripStore must satisfy repo.TripRepo.
var _ repo.TripRepo = tripStore{}

func (s tripStore) Create(_ context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	now := time.Now().UTC()
	trip.ID = uuid.New()
	trip.CreatedAt = now
	s.st.snap.Trips = append(s.st.snap.Trips, trip)
	s.st.snap.TripAnimals = append(s.st.snap.TripAnimals, newAnimalRows(trip.ID, animals, now)...)

	if err := s.st.persistLocked(); err != nil {
		return domain.TripDetail{}, fmt.Errorf("localdb.TripRepo.Create: %w", err)
	}
	return s.detailLocked(trip), nil
}

func (s tripStore) GetByID(_ context.Context, id uuid.UUID) (domain.TripDetail, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	for _, trip := range s.st.snap.Trips {
		if trip.ID == id {
			return s.detailLocked(trip), nil
		}
	}
	return domain.TripDetail{}, fmt.Errorf("localdb.TripRepo.GetByID: %w", domain.ErrNotFound)
}

func (s tripStore) List(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	all := make([]domain.Trip, len(s.st.snap.Trips))
	copy(all, s.st.snap.Trips)
	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	start := p.Offset()
	if start >= len(all) {
		return []domain.Trip{}, total, nil
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// Update overwrites the trip's fields and wholesale-replaces its line items:
// every existing row for the trip is dropped and the new set inserted, all
// within the same snapshot write.
func (s tripStore) Update(_ context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	idx := -1
	for i, existing := range s.st.snap.Trips {
		if existing.ID == trip.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.TripDetail{}, fmt.Errorf("localdb.TripRepo.Update: %w", domain.ErrNotFound)
	}

	updated := s.st.snap.Trips[idx]
	updated.Date = trip.Date
	updated.Region = trip.Region
	updated.TruckNo = trip.TruckNo
	updated.FormNo = trip.FormNo
	updated.DriverName = trip.DriverName
	updated.EscortName = trip.EscortName
	updated.PreparedByName = trip.PreparedByName
	updated.PreparedByPosition = trip.PreparedByPosition
	s.st.snap.Trips[idx] = updated

	kept := s.st.snap.TripAnimals[:0:0]
	for _, a := range s.st.snap.TripAnimals {
		if a.TripID != trip.ID {
			kept = append(kept, a)
		}
	}
	s.st.snap.TripAnimals = append(kept, newAnimalRows(trip.ID, animals, time.Now().UTC())...)

	if err := s.st.persistLocked(); err != nil {
		return domain.TripDetail{}, fmt.Errorf("localdb.TripRepo.Update: %w", err)
	}
	return s.detailLocked(updated), nil
}

// Delete removes the trip and every line item it owns.
func (s tripStore) Delete(_ context.Context, id uuid.UUID) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	trips := s.st.snap.Trips[:0:0]
	found := false
	for _, trip := range s.st.snap.Trips {
		if trip.ID == id {
			found = true
			continue
		}
		trips = append(trips, trip)
	}
	if !found {
		return fmt.Errorf("localdb.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	s.st.snap.Trips = trips

	animals := s.st.snap.TripAnimals[:0:0]
	for _, a := range s.st.snap.TripAnimals {
		if a.TripID != id {
			animals = append(animals, a)
		}
	}
	s.st.snap.TripAnimals = animals

	if err := s.st.persistLocked(); err != nil {
		return fmt.Errorf("localdb.TripRepo.Delete: %w", err)
	}
	return nil
}

// newAnimalRows materializes caller-supplied line items as stored rows for
// tripID. TotalAnimals is always recomputed from the counts.
func newAnimalRows(tripID uuid.UUID, animals []domain.TripAnimal, now time.Time) []domain.TripAnimal {
	rows := make([]domain.TripAnimal, 0, len(animals))
	for _, a := range animals {
		a.ID = uuid.New()
		a.TripID = tripID
		a.TotalAnimals = a.GoatsCount + a.SheepCount
		a.CreatedAt = now
		rows = append(rows, a)
	}
	return rows
}

// detailLocked joins the trip's line items with their supplier names.
// Callers must hold st.mu. A dangling supplier reference renders as
// "Unknown" rather than failing the read.
func (s tripStore) detailLocked(trip domain.Trip) domain.TripDetail {
	detail := domain.TripDetail{Trip: trip, Animals: []domain.TripAnimalDetail{}}
	for _, a := range s.st.snap.TripAnimals {
		if a.TripID != trip.ID {
			continue
		}
		name := "Unknown"
		for _, sup := range s.st.snap.Suppliers {
			if sup.ID == a.SupplierID {
				name = sup.Name
				break
			}
		}
		a.TotalAnimals = a.GoatsCount + a.SheepCount
		detail.Animals = append(detail.Animals, domain.TripAnimalDetail{TripAnimal: a, SupplierName: name})
	}
	return detail
}
