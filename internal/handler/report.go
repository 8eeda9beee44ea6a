package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/export"
)

// GetCrossSupplierReport handles GET /reports/suppliers.
// Requires ?from= and ?to= (inclusive, 2006-01-02); ?region= narrows to an
// exact region match. ?format= selects json (default), csv, or pdf. The
// CSV and PDF downloads contain the per-supplier roll-up, not the raw rows.
func (s *Server) GetCrossSupplierReport(w http.ResponseWriter, r *http.Request) {
	f, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	report, err := s.reports.CrossSupplier(r.Context(), f)
	if err != nil {
		respondServiceError(w, err, "")
		return
	}

	base := fmt.Sprintf("supplier-report-%s-%s", f.From.Format(dateLayout), f.To.Format(dateLayout))
	switch reportFormat(r) {
	case "csv":
		doc, err := export.SupplierSummaryCSV(report.Rollup)
		if err != nil {
			respondServiceError(w, err, "")
			return
		}
		writeAttachment(w, doc, "text/csv", base+".csv")
	case "pdf":
		doc, err := export.SupplierSummaryPDF(report.Rows, f)
		if err != nil {
			respondServiceError(w, err, "")
			return
		}
		writeAttachment(w, doc, "application/pdf", base+".pdf")
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

// GetSupplierDetailReport handles GET /reports/suppliers/{supplierID}.
// Same query parameters as the cross-supplier report, restricted to one
// supplier's trips.
func (s *Server) GetSupplierDetailReport(w http.ResponseWriter, r *http.Request) {
	supplierID, ok := pathUUID(w, r, "supplierID")
	if !ok {
		return
	}

	f, err := parseReportFilter(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	report, err := s.reports.SupplierDetail(r.Context(), supplierID, f)
	if err != nil {
		respondServiceError(w, err, "supplier not found")
		return
	}

	base := fmt.Sprintf("supplier-%s-%s-%s",
		sanitizeFilename(report.SupplierName), f.From.Format(dateLayout), f.To.Format(dateLayout))
	switch reportFormat(r) {
	case "csv":
		doc, err := export.SupplierDetailCSV(report.Rows)
		if err != nil {
			respondServiceError(w, err, "")
			return
		}
		writeAttachment(w, doc, "text/csv", base+".csv")
	case "pdf":
		doc, err := export.SupplierDetailPDF(report.SupplierName, report.Rows, f)
		if err != nil {
			respondServiceError(w, err, "")
			return
		}
		writeAttachment(w, doc, "application/pdf", base+".pdf")
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

// parseReportFilter reads from/to/region query parameters.
// Missing or unparsable bounds are rejected here; range ordering is
// validated in the service layer.
func parseReportFilter(r *http.Request) (domain.ReportFilter, error) {
	q := r.URL.Query()

	from, err := parseDateParam(q.Get("from"), "from")
	if err != nil {
		return domain.ReportFilter{}, err
	}
	to, err := parseDateParam(q.Get("to"), "to")
	if err != nil {
		return domain.ReportFilter{}, err
	}

	return domain.ReportFilter{
		From:   from,
		To:     to,
		Region: strings.TrimSpace(q.Get("region")),
	}, nil
}

func parseDateParam(v, name string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("%s date is required", name)
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted as %s", name, dateLayout)
	}
	return t, nil
}

// reportFormat normalizes the ?format= parameter. Anything other than csv
// or pdf falls back to json.
func reportFormat(r *http.Request) string {
	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "csv":
		return "csv"
	case "pdf":
		return "pdf"
	default:
		return "json"
	}
}

// writeAttachment sends body as a file download.
func writeAttachment(w http.ResponseWriter, body []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(body)
}

// sanitizeFilename replaces characters that are unsafe in a download name.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}
