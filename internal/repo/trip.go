package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tanchoice/livestock/backend/internal/auth"
	"github.com/tanchoice/livestock/backend/internal/domain"
)

// txDB extends db with the ability to open a transaction. *pgxpool.Pool and
// pgx.Tx both satisfy it (pgx.Tx.Begin opens a savepoint), so the same
// rollback-isolation trick used elsewhere in this package still works for
// the trip repo's transactional writes.
type txDB interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips and their animal
// line items. Line items never exist outside a trip: they are written
// alongside the parent on Create, wholesale-replaced on Update, and removed
// by the store's cascade on Delete.
type TripRepo interface {
	// Create inserts a new trip together with its line items in a single
	// transaction, and returns the persisted record with line items joined.
	// TotalAnimals on each line item is recomputed, not taken from the caller.
	Create(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)

	// GetByID retrieves a single trip with its line items and joined supplier
	// names. A line item whose supplier no longer exists carries the name
	// "Unknown". Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error)

	// List returns one page of trips ordered by date descending, plus the
	// total trip count for pagination.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of a trip and replaces its full
	// set of line items (delete-then-insert) in a single transaction.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error)

	// Delete removes a trip by ID; its line items go with it via cascade.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db txDB
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db txDB) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts the trip and all its line items in one transaction so a
// failure part-way through leaves no half-written trip behind.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck — rollback after commit is a no-op

	const q = `
		INSERT INTO trips (date, region, truck_no, form_no, driver_name, escort_name,
		                   prepared_by_name, prepared_by_position, user_id)
		VALUES (@date, @region, @truck_no, @form_no, @driver_name, @escort_name,
		        @prepared_by_name, @prepared_by_position, @user_id)
		RETURNING id, date, region, truck_no, form_no, driver_name, escort_name,
		          prepared_by_name, prepared_by_position, created_at`

	args := pgx.NamedArgs{
		"date":                 trip.Date,
		"region":               trip.Region,
		"truck_no":             trip.TruckNo,
		"form_no":              trip.FormNo,
		"driver_name":          trip.DriverName,
		"escort_name":          trip.EscortName,
		"prepared_by_name":     trip.PreparedByName,
		"prepared_by_position": trip.PreparedByPosition,
		"user_id":              auth.UserIDFromContext(ctx),
	}

	created, err := scanTrip(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if err := insertAnimals(ctx, tx, created.ID, animals); err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Create: commit: %w", err)
	}

	return r.GetByID(ctx, created.ID)
}

// GetByID retrieves the trip and its line items with supplier names joined.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripDetail, error) {
	const tripQ = `
		SELECT id, date, region, truck_no, form_no, driver_name, escort_name,
		       prepared_by_name, prepared_by_position, created_at
		FROM trips
		WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, tripQ, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	// LEFT JOIN so a dangling supplier reference degrades to "Unknown"
	// instead of dropping the line item from the manifest.
	const animalsQ = `
		SELECT ta.id, ta.trip_id, ta.supplier_id, ta.mark,
		       ta.goats_count, ta.sheep_count,
		       ta.goats_count + ta.sheep_count AS total_animals,
		       ta.created_at,
		       COALESCE(s.name, 'Unknown') AS supplier_name
		FROM trip_animals ta
		LEFT JOIN suppliers s ON s.id = ta.supplier_id
		WHERE ta.trip_id = @trip_id
		ORDER BY ta.created_at ASC`

	rows, err := r.db.Query(ctx, animalsQ, pgx.NamedArgs{"trip_id": id})
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetByID: animals: %w", err)
	}
	defer rows.Close()

	detail := domain.TripDetail{Trip: trip}
	for rows.Next() {
		a, err := scanAnimalDetail(rows)
		if err != nil {
			return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetByID: scan animal: %w", err)
		}
		detail.Animals = append(detail.Animals, a)
	}
	if err := rows.Err(); err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.GetByID: rows: %w", err)
	}

	return detail, nil
}

// List returns one page of trips ordered by date descending (most recent
// first) and the total number of trips.
func (r *pgTripRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trips`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}

	const q = `
		SELECT id, date, region, truck_no, form_no, driver_name, escort_name,
		       prepared_by_name, prepared_by_position, created_at
		FROM trips
		ORDER BY date DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the trip's fields and replaces all of its line items.
// Both phases of the replacement (delete old rows, insert new set) run in
// the same transaction as the parent update, so a failure between them can
// never leave the trip with no line items.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip, animals []domain.TripAnimal) (domain.TripDetail, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Update: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const q = `
		UPDATE trips
		SET date                 = @date,
		    region               = @region,
		    truck_no             = @truck_no,
		    form_no              = @form_no,
		    driver_name          = @driver_name,
		    escort_name          = @escort_name,
		    prepared_by_name     = @prepared_by_name,
		    prepared_by_position = @prepared_by_position
		WHERE id = @id
		RETURNING id, date, region, truck_no, form_no, driver_name, escort_name,
		          prepared_by_name, prepared_by_position, created_at`

	args := pgx.NamedArgs{
		"id":                   trip.ID,
		"date":                 trip.Date,
		"region":               trip.Region,
		"truck_no":             trip.TruckNo,
		"form_no":              trip.FormNo,
		"driver_name":          trip.DriverName,
		"escort_name":          trip.EscortName,
		"prepared_by_name":     trip.PreparedByName,
		"prepared_by_position": trip.PreparedByPosition,
	}

	updated, err := scanTrip(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM trip_animals WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": updated.ID}); err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Update: delete animals: %w", err)
	}

	if err := insertAnimals(ctx, tx, updated.ID, animals); err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.TripDetail{}, fmt.Errorf("repo.TripRepo.Update: commit: %w", err)
	}

	return r.GetByID(ctx, updated.ID)
}

// Delete removes a trip by primary key; trip_animals cascade with it.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertAnimals writes the full line-item set for a trip inside tx.
// total_animals is always goats + sheep, regardless of what the caller set.
func insertAnimals(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, animals []domain.TripAnimal) error {
	const q = `
		INSERT INTO trip_animals (trip_id, supplier_id, mark, goats_count,
		                          sheep_count, total_animals, user_id)
		VALUES (@trip_id, @supplier_id, @mark, @goats_count,
		        @sheep_count, @total_animals, @user_id)`

	userID := auth.UserIDFromContext(ctx)
	for _, a := range animals {
		args := pgx.NamedArgs{
			"trip_id":       tripID,
			"supplier_id":   a.SupplierID,
			"mark":          a.Mark,
			"goats_count":   a.GoatsCount,
			"sheep_count":   a.SheepCount,
			"total_animals": a.GoatsCount + a.SheepCount,
			"user_id":       userID,
		}
		if _, err := tx.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("insert animal: %w", err)
		}
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t    domain.Trip
		id   pgtype.UUID
		date pgtype.Date
	)

	err := s.Scan(&id, &date, &t.Region, &t.TruckNo, &t.FormNo, &t.DriverName,
		&t.EscortName, &t.PreparedByName, &t.PreparedByPosition, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.Date = date.Time
	return t, nil
}

// scanAnimalDetail maps a joined trip_animals row into a domain.TripAnimalDetail.
func scanAnimalDetail(s scanner) (domain.TripAnimalDetail, error) {
	var (
		a          domain.TripAnimalDetail
		id         pgtype.UUID
		tripID     pgtype.UUID
		supplierID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &supplierID, &a.Mark, &a.GoatsCount,
		&a.SheepCount, &a.TotalAnimals, &a.CreatedAt, &a.SupplierName)
	if err != nil {
		return domain.TripAnimalDetail{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.SupplierID = uuid.UUID(supplierID.Bytes)
	return a, nil
}
