package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/handler"
)

func reportServer(reports *mockReportService) *handler.Server {
	return handler.NewServer(nil, nil, reports, nil)
}

func sampleCrossReport() domain.CrossSupplierReport {
	id := uuid.New()
	rows := []domain.CrossSupplierRow{
		{
			SupplierID:   id,
			SupplierName: "Mwanga Livestock Traders",
			GoatsCount:   3,
			SheepCount:   1,
			TotalAnimals: 4,
			TripDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			TripRegion:   "Manyara",
			TruckNo:      "T 123 ABC",
			FormNo:       "F-0001",
		},
	}
	return domain.CrossSupplierReport{
		Rows: rows,
		Rollup: []domain.SupplierRollup{
			{SupplierID: id, SupplierName: "Mwanga Livestock Traders", Goats: 3, Sheep: 1, Total: 4},
		},
		Totals: domain.ReportTotals{Goats: 3, Sheep: 1, Total: 4},
	}
}

func TestCrossSupplierReport_JSON(t *testing.T) {
	reports := &mockReportService{
		crossSupplier: func(_ context.Context, f domain.ReportFilter) (domain.CrossSupplierReport, error) {
			assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), f.From)
			assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), f.To)
			assert.Equal(t, "Manyara", f.Region)
			return sampleCrossReport(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers?from=2025-06-01&to=2025-06-30&region=Manyara", nil)
	rec := serve(t, reportServer(reports), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"rollup"`)
	assert.Contains(t, rec.Body.String(), `"totals":{"goats":3,"sheep":1,"total":4}`)
}

func TestCrossSupplierReport_CSV(t *testing.T) {
	reports := &mockReportService{
		crossSupplier: func(_ context.Context, _ domain.ReportFilter) (domain.CrossSupplierReport, error) {
			return sampleCrossReport(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers?from=2025-06-01&to=2025-06-30&format=csv", nil)
	rec := serve(t, reportServer(reports), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="supplier-report-2025-06-01-2025-06-30.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Supplier Name,Total Goats,Total Sheep,Total Animals")
	assert.Contains(t, rec.Body.String(), "Mwanga Livestock Traders,3,1,4")
}

func TestCrossSupplierReport_PDF(t *testing.T) {
	reports := &mockReportService{
		crossSupplier: func(_ context.Context, _ domain.ReportFilter) (domain.CrossSupplierReport, error) {
			return sampleCrossReport(), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers?from=2025-06-01&to=2025-06-30&format=pdf", nil)
	rec := serve(t, reportServer(reports), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="supplier-report-2025-06-01-2025-06-30.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-", rec.Body.String()[:5])
}

func TestCrossSupplierReport_MissingBounds(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers?to=2025-06-30", nil)
	rec := serve(t, reportServer(&mockReportService{}), req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "from date is required")
}

func TestSupplierDetailReport_JSON(t *testing.T) {
	supplierID := uuid.New()
	reports := &mockReportService{
		supplierDetail: func(_ context.Context, id uuid.UUID, _ domain.ReportFilter) (domain.SupplierDetailReport, error) {
			assert.Equal(t, supplierID, id)
			return domain.SupplierDetailReport{
				SupplierID:   supplierID,
				SupplierName: "Mwanga Livestock Traders",
				Rows: []domain.SupplierDetailRow{
					{TripDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), TripRegion: "Manyara", GoatsCount: 3, SheepCount: 1, TotalAnimals: 4},
				},
				Totals: domain.ReportTotals{Goats: 3, Sheep: 1, Total: 4},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers/"+supplierID.String()+"?from=2025-06-01&to=2025-06-30", nil)
	rec := serve(t, reportServer(reports), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"supplier_name":"Mwanga Livestock Traders"`)
}

func TestSupplierDetailReport_CSVFilenameSanitized(t *testing.T) {
	supplierID := uuid.New()
	reports := &mockReportService{
		supplierDetail: func(_ context.Context, _ uuid.UUID, _ domain.ReportFilter) (domain.SupplierDetailReport, error) {
			return domain.SupplierDetailReport{
				SupplierID:   supplierID,
				SupplierName: "Mwanga Livestock Traders",
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers/"+supplierID.String()+"?from=2025-06-01&to=2025-06-30&format=csv", nil)
	rec := serve(t, reportServer(reports), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		`attachment; filename="supplier-Mwanga-Livestock-Traders-2025-06-01-2025-06-30.csv"`,
		rec.Header().Get("Content-Disposition"))
}

func TestSupplierDetailReport_UnknownFormatFallsBackToJSON(t *testing.T) {
	supplierID := uuid.New()
	reports := &mockReportService{
		supplierDetail: func(_ context.Context, _ uuid.UUID, _ domain.ReportFilter) (domain.SupplierDetailReport, error) {
			return domain.SupplierDetailReport{SupplierID: supplierID, SupplierName: "X"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reports/suppliers/"+supplierID.String()+"?from=2025-06-01&to=2025-06-30&format=xml", nil)
	rec := serve(t, reportServer(reports), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
