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

// supplierStore implements repo.SupplierRepo against the snapshot.
type supplierStore struct {
	st *Store
}

// compile-time check: supplierStore must satisfy repo.SupplierRepo.
var _ repo.SupplierRepo = supplierStore{}

func (s supplierStore) Create(_ context.Context, sup domain.Supplier) (domain.Supplier, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	sup.ID = uuid.New()
	sup.CreatedAt = time.Now().UTC()
	s.st.snap.Suppliers = append(s.st.snap.Suppliers, sup)

	if err := s.st.persistLocked(); err != nil {
		return domain.Supplier{}, fmt.Errorf("localdb.SupplierRepo.Create: %w", err)
	}
	return sup, nil
}

func (s supplierStore) GetByID(_ context.Context, id uuid.UUID) (domain.Supplier, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	for _, sup := range s.st.snap.Suppliers {
		if sup.ID == id {
			return sup, nil
		}
	}
	return domain.Supplier{}, fmt.Errorf("localdb.SupplierRepo.GetByID: %w", domain.ErrNotFound)
}

func (s supplierStore) List(_ context.Context) ([]domain.Supplier, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	out := make([]domain.Supplier, len(s.st.snap.Suppliers))
	copy(out, s.st.snap.Suppliers)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s supplierStore) Update(_ context.Context, sup domain.Supplier) (domain.Supplier, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	for i, existing := range s.st.snap.Suppliers {
		if existing.ID != sup.ID {
			continue
		}
		existing.Name = sup.Name
		existing.Phone = sup.Phone
		existing.Region = sup.Region
		existing.DefaultMark = sup.DefaultMark
		s.st.snap.Suppliers[i] = existing

		if err := s.st.persistLocked(); err != nil {
			return domain.Supplier{}, fmt.Errorf("localdb.SupplierRepo.Update: %w", err)
		}
		return existing, nil
	}
	return domain.Supplier{}, fmt.Errorf("localdb.SupplierRepo.Update: %w", domain.ErrNotFound)
}

// Delete removes the supplier and cascades to every trip line item that
// references it, matching the hosted store's foreign-key cascade.
func (s supplierStore) Delete(_ context.Context, id uuid.UUID) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	suppliers := s.st.snap.Suppliers[:0:0]
	found := false
	for _, sup := range s.st.snap.Suppliers {
		if sup.ID == id {
			found = true
			continue
		}
		suppliers = append(suppliers, sup)
	}
	if !found {
		return fmt.Errorf("localdb.SupplierRepo.Delete: %w", domain.ErrNotFound)
	}
	s.st.snap.Suppliers = suppliers

	animals := s.st.snap.TripAnimals[:0:0]
	for _, a := range s.st.snap.TripAnimals {
		if a.SupplierID == id {
			continue
		}
		animals = append(animals, a)
	}
	s.st.snap.TripAnimals = animals

	if err := s.st.persistLocked(); err != nil {
		return fmt.Errorf("localdb.SupplierRepo.Delete: %w", err)
	}
	return nil
}
