package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockSupplierRepo struct {
	create  func(ctx context.Context, sup domain.Supplier) (domain.Supplier, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Supplier, error)
	list    func(ctx context.Context) ([]domain.Supplier, error)
	update  func(ctx context.Context, sup domain.Supplier) (domain.Supplier, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSupplierRepo) Create(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	return m.create(ctx, sup)
}
func (m *mockSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Supplier, error) {
	return m.getByID(ctx, id)
}
func (m *mockSupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	return m.list(ctx)
}
func (m *mockSupplierRepo) Update(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	return m.update(ctx, sup)
}
func (m *mockSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.SupplierRepo = (*mockSupplierRepo)(nil)

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update  func(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	return m.create(ctx, trip, animals)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	return m.update(ctx, trip, animals)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockReportRepo struct {
	crossSupplierRows  func(ctx context.Context, f domain.ReportFilter) ([]domain.CrossSupplierRow, error)
	supplierDetailRows func(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) ([]domain.SupplierDetailRow, error)
}

func (m *mockReportRepo) CrossSupplierRows(ctx context.Context, f domain.ReportFilter) ([]domain.CrossSupplierRow, error) {
	return m.crossSupplierRows(ctx, f)
}
func (m *mockReportRepo) SupplierDetailRows(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) ([]domain.SupplierDetailRow, error) {
	return m.supplierDetailRows(ctx, supplierID, f)
}

var _ repo.ReportRepo = (*mockReportRepo)(nil)

// supplierLookup returns a mockSupplierRepo whose GetByID serves the given
// suppliers and reports ErrNotFound for anything else.
func supplierLookup(suppliers ...domain.Supplier) *mockSupplierRepo {
	byID := make(map[uuid.UUID]domain.Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.ID] = s
	}
	return &mockSupplierRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Supplier, error) {
			s, ok := byID[id]
			if !ok {
				return domain.Supplier{}, domain.ErrNotFound
			}
			return s, nil
		},
	}
}
