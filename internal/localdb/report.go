package localdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// reportStore implements repo.ReportRepo against the snapshot.
type reportStore struct {
	st *Store
}

// compile-time check: reportStore must satisfy repo.ReportRepo.
var _ repo.ReportRepo = reportStore{}

// CrossSupplierRows walks every line item, resolves its trip and supplier,
// and keeps the ones whose trip passes the filter. A line item whose trip
// cannot be resolved is silently dropped; a missing supplier degrades to the
// name "Unknown". TotalAnimals is recomputed from the counts on the way out.
func (s reportStore) CrossSupplierRows(_ context.Context, f domain.ReportFilter) ([]domain.CrossSupplierRow, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	var out []domain.CrossSupplierRow
	for _, a := range s.st.snap.TripAnimals {
		trip, ok := s.tripByIDLocked(a.TripID)
		if !ok {
			continue
		}
		if !f.Matches(trip.Date, trip.Region) {
			continue
		}
		out = append(out, domain.CrossSupplierRow{
			SupplierID:   a.SupplierID,
			SupplierName: s.supplierNameLocked(a.SupplierID),
			GoatsCount:   a.GoatsCount,
			SheepCount:   a.SheepCount,
			TotalAnimals: a.GoatsCount + a.SheepCount,
			TripDate:     trip.Date,
			TripRegion:   trip.Region,
			TruckNo:      trip.TruckNo,
			FormNo:       trip.FormNo,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TripDate.After(out[j].TripDate) })
	return out, nil
}

// SupplierDetailRows is the same filtering restricted to one supplier,
// sorted by trip date descending.
func (s reportStore) SupplierDetailRows(_ context.Context, supplierID uuid.UUID, f domain.ReportFilter) ([]domain.SupplierDetailRow, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	var out []domain.SupplierDetailRow
	for _, a := range s.st.snap.TripAnimals {
		if a.SupplierID != supplierID {
			continue
		}
		trip, ok := s.tripByIDLocked(a.TripID)
		if !ok {
			continue
		}
		if !f.Matches(trip.Date, trip.Region) {
			continue
		}
		out = append(out, domain.SupplierDetailRow{
			TripDate:     trip.Date,
			TripRegion:   trip.Region,
			TruckNo:      trip.TruckNo,
			FormNo:       trip.FormNo,
			GoatsCount:   a.GoatsCount,
			SheepCount:   a.SheepCount,
			TotalAnimals: a.GoatsCount + a.SheepCount,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TripDate.After(out[j].TripDate) })
	return out, nil
}

func (s reportStore) tripByIDLocked(id uuid.UUID) (domain.Trip, bool) {
	for _, t := range s.st.snap.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Trip{}, false
}

func (s reportStore) supplierNameLocked(id uuid.UUID) string {
	for _, sup := range s.st.snap.Suppliers {
		if sup.ID == id {
			return sup.Name
		}
	}
	return "Unknown"
}
