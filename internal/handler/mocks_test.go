package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/auth"
	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/handler"
)

// Function-field test doubles for the handler's consumer interfaces.
// Set only the methods a test exercises; an unset method panics, which
// fails the test loudly instead of silently succeeding.

type mockSupplierService struct {
	create  func(ctx context.Context, sup domain.Supplier) (domain.Supplier, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Supplier, error)
	list    func(ctx context.Context) ([]domain.Supplier, error)
	update  func(ctx context.Context, sup domain.Supplier) (domain.Supplier, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSupplierService) Create(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	return m.create(ctx, sup)
}
func (m *mockSupplierService) GetByID(ctx context.Context, id uuid.UUID) (domain.Supplier, error) {
	return m.getByID(ctx, id)
}
func (m *mockSupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	return m.list(ctx)
}
func (m *mockSupplierService) Update(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	return m.update(ctx, sup)
}
func (m *mockSupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.SupplierServicer = (*mockSupplierService)(nil)

type mockTripService struct {
	create  func(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update  func(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripService) Create(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	return m.create(ctx, trip, animals)
}
func (m *mockTripService) GetByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripService) Update(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	return m.update(ctx, trip, animals)
}
func (m *mockTripService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripService)(nil)

type mockReportService struct {
	crossSupplier  func(ctx context.Context, f domain.ReportFilter) (domain.CrossSupplierReport, error)
	supplierDetail func(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) (domain.SupplierDetailReport, error)
}

func (m *mockReportService) CrossSupplier(ctx context.Context, f domain.ReportFilter) (domain.CrossSupplierReport, error) {
	return m.crossSupplier(ctx, f)
}
func (m *mockReportService) SupplierDetail(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) (domain.SupplierDetailReport, error) {
	return m.supplierDetail(ctx, supplierID, f)
}

var _ handler.ReportServicer = (*mockReportService)(nil)

type mockSessionService struct {
	signIn func(email, password string) (auth.Session, error)
}

func (m *mockSessionService) SignIn(email, password string) (auth.Session, error) {
	return m.signIn(email, password)
}

var _ handler.SessionServicer = (*mockSessionService)(nil)

// testUser is attached to every request by the pass-through auth middleware.
var testUser = auth.User{
	ID:    uuid.MustParse("6f1c2a9e-0b7d-4c43-9a1e-2d8f5f3d0c11"),
	Email: "demo@tanchoice.com",
}

// passAuth stamps testUser on the context without checking any header, so
// handler tests exercise routing and mapping rather than token plumbing.
func passAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), testUser)))
	})
}

// serve routes one request through a Server built from the given mocks.
// Nil mocks are fine for endpoints the request never touches.
func serve(t *testing.T, srv *handler.Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Routes(passAuth).ServeHTTP(rec, req)
	return rec
}
