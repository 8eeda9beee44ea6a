// Package export is the document renderer: it turns report results and trip
// records into CSV text for spreadsheet import and paginated PDF documents
// for print and download. It never queries a store; callers pass in the
// already-aggregated rows.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tanchoice/livestock/backend/internal/domain"
)

// summaryCSVHeaders are the column names of the cross-supplier summary CSV.
var summaryCSVHeaders = []string{"Supplier Name", "Total Goats", "Total Sheep", "Total Animals"}

// detailCSVHeaders are the column names of the single-supplier detail CSV.
var detailCSVHeaders = []string{"Date", "Region", "Truck No", "Form No", "Goats", "Sheep", "Total Animals"}

// SupplierSummaryCSV renders the per-supplier roll-up as CSV: one header
// line and one line per supplier group. encoding/csv applies standard
// quoting, so names containing commas or quotes survive a round trip.
func SupplierSummaryCSV(rollup []domain.SupplierRollup) ([]byte, error) {
	records := make([][]string, 0, len(rollup))
	for _, r := range rollup {
		records = append(records, []string{
			r.SupplierName,
			strconv.Itoa(r.Goats),
			strconv.Itoa(r.Sheep),
			strconv.Itoa(r.Total),
		})
	}
	return writeCSV(summaryCSVHeaders, records)
}

// SupplierDetailCSV renders the single-supplier detail rows as CSV, one line
// per trip. Dates are formatted as 2006-01-02 for spreadsheet import.
func SupplierDetailCSV(rows []domain.SupplierDetailRow) ([]byte, error) {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			row.TripDate.Format("2006-01-02"),
			row.TripRegion,
			row.TruckNo,
			row.FormNo,
			strconv.Itoa(row.GoatsCount),
			strconv.Itoa(row.SheepCount),
			strconv.Itoa(row.TotalAnimals),
		})
	}
	return writeCSV(detailCSVHeaders, records)
}

// writeCSV emits the header line followed by the records.
func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error; w.Error() is checked below.
	w.Write(headers)
	for _, rec := range records {
		//nolint:errcheck
		w.Write(rec)
	}
	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: write csv: %w", err)
	}
	return buf.Bytes(), nil
}
