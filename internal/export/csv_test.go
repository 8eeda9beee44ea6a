package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/export"
)

// readCSV parses raw CSV output back into records so assertions survive
// quoting differences.
func readCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestSupplierSummaryCSV(t *testing.T) {
	rollup := []domain.SupplierRollup{
		{SupplierID: uuid.New(), SupplierName: "Mwanga Livestock Traders", Goats: 4, Sheep: 1, Total: 5},
		{SupplierID: uuid.New(), SupplierName: "Kilimanjaro Goats", Goats: 0, Sheep: 1, Total: 1},
	}

	raw, err := export.SupplierSummaryCSV(rollup)

	require.NoError(t, err)
	records := readCSV(t, raw)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Supplier Name", "Total Goats", "Total Sheep", "Total Animals"}, records[0])
	assert.Equal(t, []string{"Mwanga Livestock Traders", "4", "1", "5"}, records[1])
	assert.Equal(t, []string{"Kilimanjaro Goats", "0", "1", "1"}, records[2])
}

func TestSupplierSummaryCSV_QuotesCommasInNames(t *testing.T) {
	rollup := []domain.SupplierRollup{
		{SupplierName: `Arusha, Region "A" Traders`, Goats: 1, Sheep: 0, Total: 1},
	}

	raw, err := export.SupplierSummaryCSV(rollup)

	require.NoError(t, err)
	records := readCSV(t, raw)
	require.Len(t, records, 2)
	// The name with a comma and quotes round-trips intact.
	assert.Equal(t, `Arusha, Region "A" Traders`, records[1][0])
}

func TestSupplierSummaryCSV_Empty(t *testing.T) {
	raw, err := export.SupplierSummaryCSV(nil)

	require.NoError(t, err)
	records := readCSV(t, raw)
	require.Len(t, records, 1, "an empty report still carries the header line")
}

func TestSupplierDetailCSV(t *testing.T) {
	rows := []domain.SupplierDetailRow{
		{
			TripDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			TripRegion:   "Arusha",
			TruckNo:      "T 456 XYZ",
			FormNo:       "F-0002",
			GoatsCount:   1,
			SheepCount:   0,
			TotalAnimals: 1,
		},
		{
			TripDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			TripRegion:   "Manyara",
			TruckNo:      "T 123 ABC",
			FormNo:       "F-0001",
			GoatsCount:   3,
			SheepCount:   1,
			TotalAnimals: 4,
		},
	}

	raw, err := export.SupplierDetailCSV(rows)

	require.NoError(t, err)
	records := readCSV(t, raw)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Date", "Region", "Truck No", "Form No", "Goats", "Sheep", "Total Animals"}, records[0])
	assert.Equal(t, []string{"2025-06-10", "Arusha", "T 456 XYZ", "F-0002", "1", "0", "1"}, records[1])
	assert.Equal(t, []string{"2025-06-01", "Manyara", "T 123 ABC", "F-0001", "3", "1", "4"}, records[2])
}
