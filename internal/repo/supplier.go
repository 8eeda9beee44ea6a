// Package repo contains all hosted-store database access for the livestock
// logbook API. Each record kind has its own file with an interface and a
// Postgres implementation. No business logic lives here, only SQL and type
// mapping. The offline store in internal/localdb implements the same
// interfaces, so either backend is a drop-in choice at startup.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tanchoice/livestock/backend/internal/auth"
	"github.com/tanchoice/livestock/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// SupplierRepo defines the persistence operations for Suppliers.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type SupplierRepo interface {
	// Create inserts a new supplier and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, s domain.Supplier) (domain.Supplier, error)

	// GetByID retrieves a single supplier by its UUID primary key.
	// Returns domain.ErrNotFound if no supplier with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Supplier, error)

	// List returns all suppliers ordered by name ascending.
	List(ctx context.Context) ([]domain.Supplier, error)

	// Update overwrites the mutable fields of an existing supplier and returns
	// the updated record. Returns domain.ErrNotFound if the ID does not exist.
	Update(ctx context.Context, s domain.Supplier) (domain.Supplier, error)

	// Delete removes a supplier by ID. Trip line items referencing the
	// supplier are removed with it; the store must cascade.
	// Returns domain.ErrNotFound if the ID does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgSupplierRepo is the Postgres implementation of SupplierRepo.
type pgSupplierRepo struct {
	db db
}

// NewSupplierRepo constructs a SupplierRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSupplierRepo(db db) SupplierRepo {
	return &pgSupplierRepo{db: db}
}

// Create inserts a new supplier row, stamping the authenticated user's ID
// when the context carries one.
func (r *pgSupplierRepo) Create(ctx context.Context, s domain.Supplier) (domain.Supplier, error) {
	const q = `
		INSERT INTO suppliers (name, phone, region, default_mark, user_id)
		VALUES (@name, @phone, @region, @default_mark, @user_id)
		RETURNING id, name, phone, region, default_mark, created_at`

	args := pgx.NamedArgs{
		"name":         s.Name,
		"phone":        s.Phone,
		"region":       s.Region,
		"default_mark": s.DefaultMark,
		"user_id":      auth.UserIDFromContext(ctx), // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSupplier(row)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("repo.SupplierRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a supplier by primary key.
func (r *pgSupplierRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Supplier, error) {
	const q = `
		SELECT id, name, phone, region, default_mark, created_at
		FROM suppliers
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSupplier(row)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("repo.SupplierRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all suppliers ordered by name ascending.
func (r *pgSupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	const q = `
		SELECT id, name, phone, region, default_mark, created_at
		FROM suppliers
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SupplierRepo.List: %w", err)
	}
	defer rows.Close()

	var suppliers []domain.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SupplierRepo.List: scan: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SupplierRepo.List: rows: %w", err)
	}

	return suppliers, nil
}

// Update overwrites the mutable fields of a supplier and returns the updated record.
func (r *pgSupplierRepo) Update(ctx context.Context, s domain.Supplier) (domain.Supplier, error) {
	const q = `
		UPDATE suppliers
		SET name         = @name,
		    phone        = @phone,
		    region       = @region,
		    default_mark = @default_mark
		WHERE id = @id
		RETURNING id, name, phone, region, default_mark, created_at`

	args := pgx.NamedArgs{
		"id":           s.ID,
		"name":         s.Name,
		"phone":        s.Phone,
		"region":       s.Region,
		"default_mark": s.DefaultMark,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSupplier(row)
	if err != nil {
		return domain.Supplier{}, fmt.Errorf("repo.SupplierRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a supplier by primary key. The trip_animals foreign key
// cascades, so every line item referencing the supplier is removed with it.
func (r *pgSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM suppliers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SupplierRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SupplierRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanSupplier maps a single database row into a domain.Supplier.
func scanSupplier(s scanner) (domain.Supplier, error) {
	var (
		sup domain.Supplier
		id  pgtype.UUID
	)

	err := s.Scan(&id, &sup.Name, &sup.Phone, &sup.Region, &sup.DefaultMark, &sup.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Supplier{}, domain.ErrNotFound
		}
		return domain.Supplier{}, err
	}

	sup.ID = uuid.UUID(id.Bytes)
	return sup, nil
}
