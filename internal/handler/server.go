// Package handler implements the HTTP handlers for the livestock logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (supplier.go, trip.go, report.go, auth.go) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/auth"
	"github.com/tanchoice/livestock/backend/internal/domain"
)

// SupplierServicer defines the business operations the supplier handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: accept interfaces, return concrete types. It lets
// handler tests inject a mock without touching the database or service layer.
type SupplierServicer interface {
	Create(ctx context.Context, sup domain.Supplier) (domain.Supplier, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Supplier, error)
	List(ctx context.Context) ([]domain.Supplier, error)
	Update(ctx context.Context, sup domain.Supplier) (domain.Supplier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportServicer defines the reporting operations the report handlers depend on.
type ReportServicer interface {
	CrossSupplier(ctx context.Context, f domain.ReportFilter) (domain.CrossSupplierReport, error)
	SupplierDetail(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) (domain.SupplierDetailReport, error)
}

// SessionServicer defines the authentication operations the auth handlers
// depend on. Satisfied by *auth.Service.
type SessionServicer interface {
	SignIn(email, password string) (auth.Session, error)
}

// Server holds the handler dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	suppliers SupplierServicer
	trips     TripServicer
	reports   ReportServicer
	sessions  SessionServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(suppliers SupplierServicer, trips TripServicer, reports ReportServicer, sessions SessionServicer) *Server {
	return &Server{suppliers: suppliers, trips: trips, reports: reports, sessions: sessions}
}

// Routes builds the API router. requireAuth is applied to everything except
// the health check and the login endpoint.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Post("/auth/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/auth/logout", s.Logout)
		r.Get("/auth/session", s.GetSession)

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", s.ListSuppliers)
			r.Post("/", s.CreateSupplier)
			r.Get("/{id}", s.GetSupplier)
			r.Put("/{id}", s.UpdateSupplier)
			r.Delete("/{id}", s.DeleteSupplier)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Get("/{id}/manifest", s.GetTripManifest)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/suppliers", s.GetCrossSupplierReport)
			r.Get("/suppliers/{supplierID}", s.GetSupplierDetailReport)
		})
	})

	return r
}
