// Package service contains the business logic for the livestock logbook API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL and no snapshot access lives here; services depend on the
// repo interfaces, not on either store implementation.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// SupplierService implements business logic for Supplier operations.
type SupplierService struct {
	repo repo.SupplierRepo
}

// NewSupplierService constructs a SupplierService backed by the provided repo.
func NewSupplierService(r repo.SupplierRepo) *SupplierService {
	return &SupplierService{repo: r}
}

// Create validates and persists a new supplier.
func (s *SupplierService) Create(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	if err := validateSupplier(sup); err != nil {
		return domain.Supplier{}, fmt.Errorf("service.SupplierService.Create: %w", err)
	}
	result, err := s.repo.Create(ctx, sup)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("service.SupplierService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single supplier by ID.
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (domain.Supplier, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("service.SupplierService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all suppliers ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SupplierService.List: %w", err)
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return suppliers, nil
}

// Update validates and updates an existing supplier.
func (s *SupplierService) Update(ctx context.Context, sup domain.Supplier) (domain.Supplier, error) {
	if err := validateSupplier(sup); err != nil {
		return domain.Supplier{}, fmt.Errorf("service.SupplierService.Update: %w", err)
	}
	result, err := s.repo.Update(ctx, sup)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("service.SupplierService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a supplier by ID. The store cascades the delete to every
// trip line item referencing the supplier.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.SupplierService.Delete: %w", err)
	}
	return nil
}

// validateSupplier enforces the business rules for supplier writes.
func validateSupplier(sup domain.Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return nil
}
