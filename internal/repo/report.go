package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tanchoice/livestock/backend/internal/domain"
)

// ReportRepo defines the joined read paths the report aggregator builds on.
// Both queries return raw per-line-item rows; grouping and totals happen in
// the service layer so the two store backends stay dumb and identical.
type ReportRepo interface {
	// CrossSupplierRows returns one row per trip line item whose parent
	// trip's date falls inside the filter's inclusive bounds (and region,
	// when set), ordered by trip date descending. A line item whose supplier
	// is missing carries the name "Unknown"; line items whose parent trip is
	// missing do not appear (the inner join drops them).
	CrossSupplierRows(ctx context.Context, f domain.ReportFilter) ([]domain.CrossSupplierRow, error)

	// SupplierDetailRows returns the same filtering restricted to one
	// supplier, ordered by trip date descending.
	SupplierDetailRows(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) ([]domain.SupplierDetailRow, error)
}

// pgReportRepo is the Postgres implementation of ReportRepo.
type pgReportRepo struct {
	db db
}

// NewReportRepo constructs a ReportRepo backed by the provided db connection.
func NewReportRepo(db db) ReportRepo {
	return &pgReportRepo{db: db}
}

// CrossSupplierRows joins line items with their trip and supplier.
// total_animals is recomputed in the SELECT rather than read from the stored
// column, so a drifted stored value can never leak into a report.
func (r *pgReportRepo) CrossSupplierRows(ctx context.Context, f domain.ReportFilter) ([]domain.CrossSupplierRow, error) {
	q := `
		SELECT ta.supplier_id,
		       COALESCE(s.name, 'Unknown') AS supplier_name,
		       ta.goats_count, ta.sheep_count,
		       ta.goats_count + ta.sheep_count AS total_animals,
		       t.date, t.region, t.truck_no, t.form_no
		FROM trip_animals ta
		JOIN trips t ON t.id = ta.trip_id
		LEFT JOIN suppliers s ON s.id = ta.supplier_id
		WHERE t.date >= @from AND t.date <= @to`

	args := pgx.NamedArgs{"from": f.From, "to": f.To}
	if f.Region != "" {
		q += ` AND t.region = @region`
		args["region"] = f.Region
	}
	q += ` ORDER BY t.date DESC, ta.created_at ASC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ReportRepo.CrossSupplierRows: %w", err)
	}
	defer rows.Close()

	var out []domain.CrossSupplierRow
	for rows.Next() {
		var (
			row        domain.CrossSupplierRow
			supplierID pgtype.UUID
			date       pgtype.Date
		)
		err := rows.Scan(&supplierID, &row.SupplierName, &row.GoatsCount,
			&row.SheepCount, &row.TotalAnimals, &date, &row.TripRegion,
			&row.TruckNo, &row.FormNo)
		if err != nil {
			return nil, fmt.Errorf("repo.ReportRepo.CrossSupplierRows: scan: %w", err)
		}
		row.SupplierID = uuid.UUID(supplierID.Bytes)
		row.TripDate = date.Time
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReportRepo.CrossSupplierRows: rows: %w", err)
	}

	return out, nil
}

// SupplierDetailRows returns the per-trip rows for a single supplier.
func (r *pgReportRepo) SupplierDetailRows(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) ([]domain.SupplierDetailRow, error) {
	q := `
		SELECT t.date, t.region, t.truck_no, t.form_no,
		       ta.goats_count, ta.sheep_count,
		       ta.goats_count + ta.sheep_count AS total_animals
		FROM trip_animals ta
		JOIN trips t ON t.id = ta.trip_id
		WHERE ta.supplier_id = @supplier_id
		  AND t.date >= @from AND t.date <= @to`

	args := pgx.NamedArgs{"supplier_id": supplierID, "from": f.From, "to": f.To}
	if f.Region != "" {
		q += ` AND t.region = @region`
		args["region"] = f.Region
	}
	q += ` ORDER BY t.date DESC, ta.created_at ASC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ReportRepo.SupplierDetailRows: %w", err)
	}
	defer rows.Close()

	var out []domain.SupplierDetailRow
	for rows.Next() {
		var (
			row  domain.SupplierDetailRow
			date pgtype.Date
		)
		err := rows.Scan(&date, &row.TripRegion, &row.TruckNo, &row.FormNo,
			&row.GoatsCount, &row.SheepCount, &row.TotalAnimals)
		if err != nil {
			return nil, fmt.Errorf("repo.ReportRepo.SupplierDetailRows: scan: %w", err)
		}
		row.TripDate = date.Time
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReportRepo.SupplierDetailRows: rows: %w", err)
	}

	return out, nil
}
