package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// ReportService aggregates trip line items into the two report shapes:
// the cross-supplier report with its per-supplier roll-up, and the
// single-supplier detail report.
type ReportService struct {
	reports   repo.ReportRepo
	suppliers repo.SupplierRepo
}

// NewReportService constructs a ReportService backed by the provided repos.
func NewReportService(reports repo.ReportRepo, suppliers repo.SupplierRepo) *ReportService {
	return &ReportService{reports: reports, suppliers: suppliers}
}

// CrossSupplier runs the cross-supplier report for the filter: the raw
// denormalized rows, the per-supplier roll-up in first-seen order, and the
// grand totals. The grand totals are the sum of the roll-up totals by
// construction.
func (s *ReportService) CrossSupplier(ctx context.Context, f domain.ReportFilter) (domain.CrossSupplierReport, error) {
	if err := validateFilter(f); err != nil {
		return domain.CrossSupplierReport{}, fmt.Errorf("service.ReportService.CrossSupplier: %w", err)
	}

	rows, err := s.reports.CrossSupplierRows(ctx, f)
	if err != nil {
		return domain.CrossSupplierReport{}, fmt.Errorf("service.ReportService.CrossSupplier: %w", err)
	}
	if rows == nil {
		rows = []domain.CrossSupplierRow{}
	}

	rollup := RollUp(rows)
	return domain.CrossSupplierReport{
		Rows:   rows,
		Rollup: rollup,
		Totals: rollupTotals(rollup),
	}, nil
}

// SupplierDetail runs the single-supplier detail report. A supplier that no
// longer exists does not fail the report; its name renders as
// "Unknown Supplier" over whatever rows still reference it.
func (s *ReportService) SupplierDetail(ctx context.Context, supplierID uuid.UUID, f domain.ReportFilter) (domain.SupplierDetailReport, error) {
	if err := validateFilter(f); err != nil {
		return domain.SupplierDetailReport{}, fmt.Errorf("service.ReportService.SupplierDetail: %w", err)
	}

	name := "Unknown Supplier"
	sup, err := s.suppliers.GetByID(ctx, supplierID)
	switch {
	case err == nil:
		name = sup.Name
	case !errors.Is(err, domain.ErrNotFound):
		return domain.SupplierDetailReport{}, fmt.Errorf("service.ReportService.SupplierDetail: %w", err)
	}

	rows, err := s.reports.SupplierDetailRows(ctx, supplierID, f)
	if err != nil {
		return domain.SupplierDetailReport{}, fmt.Errorf("service.ReportService.SupplierDetail: %w", err)
	}
	if rows == nil {
		rows = []domain.SupplierDetailRow{}
	}

	report := domain.SupplierDetailReport{
		SupplierID:   supplierID,
		SupplierName: name,
		Rows:         rows,
	}
	for _, row := range rows {
		report.Totals.Goats += row.GoatsCount
		report.Totals.Sheep += row.SheepCount
		report.Totals.Total += row.TotalAnimals
	}
	return report, nil
}

// RollUp groups cross-supplier rows by supplier and sums their counts.
// Groups appear in the order their supplier is first seen in rows.
// Exported because the summary PDF groups its raw rows through the same
// function and the two must agree.
func RollUp(rows []domain.CrossSupplierRow) []domain.SupplierRollup {
	index := map[uuid.UUID]int{}
	rollup := []domain.SupplierRollup{}
	for _, row := range rows {
		i, ok := index[row.SupplierID]
		if !ok {
			i = len(rollup)
			index[row.SupplierID] = i
			rollup = append(rollup, domain.SupplierRollup{
				SupplierID:   row.SupplierID,
				SupplierName: row.SupplierName,
			})
		}
		rollup[i].Goats += row.GoatsCount
		rollup[i].Sheep += row.SheepCount
		rollup[i].Total += row.TotalAnimals
	}
	return rollup
}

// rollupTotals sums the per-supplier groups into grand totals.
func rollupTotals(rollup []domain.SupplierRollup) domain.ReportTotals {
	var t domain.ReportTotals
	for _, r := range rollup {
		t.Goats += r.Goats
		t.Sheep += r.Sheep
		t.Total += r.Total
	}
	return t
}

// validateFilter enforces the report parameter rules.
func validateFilter(f domain.ReportFilter) error {
	switch {
	case f.From.IsZero():
		return fmt.Errorf("%w: from date is required", domain.ErrValidation)
	case f.To.IsZero():
		return fmt.Errorf("%w: to date is required", domain.ErrValidation)
	case f.To.Before(f.From):
		return fmt.Errorf("%w: to date is before from date", domain.ErrValidation)
	}
	return nil
}
