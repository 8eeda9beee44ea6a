package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
)

// pdfDate is the date format used inside rendered documents.
const pdfDate = "02/01/2006"

// column describes one table column of a rendered document.
// Numeric columns are right-aligned and summed into the TOTAL row.
type column struct {
	header  string
	width   float64
	numeric bool
}

// TripManifestPDF renders the single-trip manifest: letterhead, trip
// metadata, one table row per line item with a synthesized TOTAL row, and
// the signature footer for preparer, driver, and escort.
func TripManifestPDF(trip domain.TripDetail) ([]byte, error) {
	pdf := newDoc("")

	// Metadata block: two columns, two lines.
	pdf.SetFont("Helvetica", "", 12)
	half := float64(contentWidth) / 2
	pdf.CellFormat(half, 7, "Region: "+trip.Region, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 7, "Truck No: "+trip.TruckNo, "", 1, "L", false, 0, "")
	pdf.CellFormat(half, 7, "Date: "+trip.Date.Format(pdfDate), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 7, "Form No: "+trip.FormNo, "", 1, "L", false, 0, "")
	pdf.Ln(5)

	cols := []column{
		{header: "S/N", width: 14},
		{header: "Supplier's Name", width: 64},
		{header: "Mark / Symbol", width: 32},
		{header: "Goats", width: 22, numeric: true},
		{header: "Sheep", width: 22, numeric: true},
		{header: "Total Summary", width: 28, numeric: true},
	}
	rows := make([][]string, 0, len(trip.Animals))
	for i, a := range trip.Animals {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			a.SupplierName,
			a.Mark,
			strconv.Itoa(a.GoatsCount),
			strconv.Itoa(a.SheepCount),
			strconv.Itoa(a.TotalAnimals),
		})
	}
	renderTable(pdf, cols, rows)

	// Signature footer.
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	preparer := trip.PreparedByPosition
	if preparer != "" && trip.PreparedByName != "" {
		preparer += " "
	}
	preparer += trip.PreparedByName
	signatureLine(pdf, "Prepared by: "+preparer)
	signatureLine(pdf, "Driver: "+trip.DriverName)
	signatureLine(pdf, "Escort: "+trip.EscortName)

	return output(pdf)
}

// SupplierDetailPDF renders the single-supplier detail report: one table row
// per trip in the period, with a synthesized TOTAL row.
func SupplierDetailPDF(supplierName string, rows []domain.SupplierDetailRow, f domain.ReportFilter) ([]byte, error) {
	pdf := newDoc("Supplier Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, "Supplier: "+supplierName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, periodLine(f.From, f.To), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	cols := []column{
		{header: "S/N", width: 14},
		{header: "Date", width: 30},
		{header: "Region", width: 36},
		{header: "Truck No", width: 30},
		{header: "Goats", width: 24, numeric: true},
		{header: "Sheep", width: 24, numeric: true},
		{header: "Total Animals", width: 24, numeric: true},
	}
	data := make([][]string, 0, len(rows))
	for i, row := range rows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			row.TripDate.Format(pdfDate),
			row.TripRegion,
			row.TruckNo,
			strconv.Itoa(row.GoatsCount),
			strconv.Itoa(row.SheepCount),
			strconv.Itoa(row.TotalAnimals),
		})
	}
	renderTable(pdf, cols, data)

	return output(pdf)
}

// SupplierSummaryPDF renders the cross-supplier summary: raw report rows are
// grouped by supplier here, independently of the aggregator's roll-up, and
// the two groupings agree because both sum the same counts in first-seen
// order.
func SupplierSummaryPDF(rows []domain.CrossSupplierRow, f domain.ReportFilter) ([]byte, error) {
	pdf := newDoc("Supplier Summary Report")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, periodLine(f.From, f.To), "", 1, "L", false, 0, "")
	if f.Region != "" {
		pdf.CellFormat(0, 7, "Region: "+f.Region, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	type group struct {
		name                string
		goats, sheep, total int
	}
	index := map[uuid.UUID]int{}
	var groups []group
	for _, row := range rows {
		i, ok := index[row.SupplierID]
		if !ok {
			i = len(groups)
			index[row.SupplierID] = i
			groups = append(groups, group{name: row.SupplierName})
		}
		groups[i].goats += row.GoatsCount
		groups[i].sheep += row.SheepCount
		groups[i].total += row.TotalAnimals
	}

	cols := []column{
		{header: "S/N", width: 14},
		{header: "Supplier Name", width: 78},
		{header: "Total Goats", width: 30, numeric: true},
		{header: "Total Sheep", width: 30, numeric: true},
		{header: "Total Animals", width: 30, numeric: true},
	}
	data := make([][]string, 0, len(groups))
	for i, g := range groups {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			g.name,
			strconv.Itoa(g.goats),
			strconv.Itoa(g.sheep),
			strconv.Itoa(g.total),
		})
	}
	renderTable(pdf, cols, data)

	return output(pdf)
}

// contentWidth is the printable width of an A4 page with 14mm side margins.
const contentWidth = 182

// newDoc creates an A4 portrait page with the company letterhead and an
// optional centered document title.
func newDoc(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 10, 14)
	pdf.AddPage()

	// Brand block standing in for the company logo.
	pdf.SetFillColor(0, 86, 143)
	pdf.Rect(14, 10, 60, 18, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(14, 12)
	pdf.CellFormat(60, 8, "TANCHOICE LTD", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetX(14)
	pdf.CellFormat(60, 5, "Simply Organic Meat", "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(32)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, "TANCHOICE LIMITED - Simply Organic Meat", "", 1, "C", false, 0, "")
	if title != "" {
		pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)
	return pdf
}

// renderTable draws the header row, the data rows with alternating fill,
// and a synthesized TOTAL row whose numeric columns are the column-wise sum
// of the data rows and whose non-numeric columns are blank.
func renderTable(pdf *fpdf.Fpdf, cols []column, rows [][]string) {
	// Header row: brand blue fill, white bold text.
	pdf.SetFillColor(0, 86, 143)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 8, c.header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	sums := make([]int, len(cols))
	for i, row := range rows {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for j, c := range cols {
			align := "L"
			if c.numeric {
				align = "R"
				if n, err := strconv.Atoi(row[j]); err == nil {
					sums[j] += n
				}
			}
			pdf.CellFormat(c.width, 7, row[j], "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	// TOTAL row.
	pdf.SetFont("Helvetica", "B", 10)
	for j, c := range cols {
		text := ""
		align := "L"
		switch {
		case j == 0:
			text = "TOTAL"
		case c.numeric:
			text = strconv.Itoa(sums[j])
			align = "R"
		}
		pdf.CellFormat(c.width, 8, text, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

// signatureLine writes a labelled line with a ruled signature area.
func signatureLine(pdf *fpdf.Fpdf, label string) {
	pdf.CellFormat(90, 10, label, "", 0, "L", false, 0, "")
	y := pdf.GetY() + 8
	pdf.Line(110, y, 190, y)
	pdf.Ln(-1)
}

// periodLine formats the inclusive report period for document headers.
func periodLine(from, to time.Time) string {
	return "Period: " + from.Format(pdfDate) + " - " + to.Format(pdfDate)
}

// output closes the document and returns its bytes.
func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
