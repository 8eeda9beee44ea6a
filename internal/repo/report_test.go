package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/repo"
)

// seedReportData inserts two suppliers and two trips:
//
//	2025-06-01 Manyara: S1 3g/1s, S2 0g/1s
//	2025-06-10 Arusha:  S2 1g/0s
func seedReportData(t *testing.T, tx pgx.Tx) (s1, s2 domain.Supplier) {
	t.Helper()
	ctx := context.Background()
	tripRepo := repo.NewTripRepo(tx)

	s1 = createSupplier(t, tx, "Mwanga Livestock Traders", "Manyara", "M1")
	s2 = createSupplier(t, tx, "Kilimanjaro Goats", "Arusha", "KG")

	t1 := tripFixture()
	t1.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	t1.Region = "Manyara"
	_, err := tripRepo.Create(ctx, t1, []domain.TripAnimal{
		animalFixture(s1.ID, 3, 1),
		animalFixture(s2.ID, 0, 1),
	})
	require.NoError(t, err)

	t2 := tripFixture()
	t2.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	t2.Region = "Arusha"
	t2.FormNo = "F-0002"
	_, err = tripRepo.Create(ctx, t2, []domain.TripAnimal{
		animalFixture(s2.ID, 1, 0),
	})
	require.NoError(t, err)

	return s1, s2
}

func TestReportRepo_CrossSupplierRows(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewReportRepo(tx)

	s1, _ := seedReportData(t, tx)

	rows, err := r.CrossSupplierRows(context.Background(), domain.ReportFilter{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Ordered by trip date descending, so the Arusha trip leads.
	assert.Equal(t, "Arusha", rows[0].TripRegion)
	assert.Equal(t, s1.ID, rows[1].SupplierID)
	assert.Equal(t, 4, rows[1].TotalAnimals)
}

func TestReportRepo_CrossSupplierRows_InclusiveBounds(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewReportRepo(tx)

	seedReportData(t, tx)

	// Bounds exactly on the two trip dates keep both trips.
	rows, err := r.CrossSupplierRows(context.Background(), domain.ReportFilter{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	// A window past both trips returns nothing.
	rows, err = r.CrossSupplierRows(context.Background(), domain.ReportFilter{
		From: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReportRepo_CrossSupplierRows_RegionFilter(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewReportRepo(tx)

	seedReportData(t, tx)

	rows, err := r.CrossSupplierRows(context.Background(), domain.ReportFilter{
		From:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Region: "Manyara",
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "Manyara", row.TripRegion)
	}
}

func TestReportRepo_SupplierDetailRows(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewReportRepo(tx)

	_, s2 := seedReportData(t, tx)

	rows, err := r.SupplierDetailRows(context.Background(), s2.ID, domain.ReportFilter{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Newest trip first.
	assert.Equal(t, "F-0002", rows[0].FormNo)
	assert.Equal(t, 1, rows[0].TotalAnimals)
	assert.Equal(t, 1, rows[1].TotalAnimals)
}
