package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportFilter carries the parameters shared by both report shapes.
// From and To are inclusive calendar-date bounds compared against each trip's
// date; the time-of-day part is ignored. An empty Region means no region filter.
type ReportFilter struct {
	From   time.Time
	To     time.Time
	Region string
}

// Matches reports whether a trip with the given date and region passes the
// filter. Dates are compared at calendar-date granularity in UTC.
func (f ReportFilter) Matches(date time.Time, region string) bool {
	d := truncateToDay(date)
	if d.Before(truncateToDay(f.From)) || d.After(truncateToDay(f.To)) {
		return false
	}
	if f.Region != "" && region != f.Region {
		return false
	}
	return true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CrossSupplierRow is one line of the cross-supplier report: a trip animal
// line item denormalized with its supplier name and trip metadata.
// SupplierName is "Unknown" when the supplier row no longer exists.
type CrossSupplierRow struct {
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	GoatsCount   int       `json:"goats_count"`
	SheepCount   int       `json:"sheep_count"`
	TotalAnimals int       `json:"total_animals"`
	TripDate     time.Time `json:"trip_date"`
	TripRegion   string    `json:"trip_region"`
	TruckNo      string    `json:"truck_no"`
	FormNo       string    `json:"form_no"`
}

// SupplierDetailRow is one line of the single-supplier detail report:
// the counts collected from that supplier on one trip.
type SupplierDetailRow struct {
	TripDate     time.Time `json:"trip_date"`
	TripRegion   string    `json:"trip_region"`
	TruckNo      string    `json:"truck_no"`
	FormNo       string    `json:"form_no"`
	GoatsCount   int       `json:"goats_count"`
	SheepCount   int       `json:"sheep_count"`
	TotalAnimals int       `json:"total_animals"`
}

// SupplierRollup is the per-supplier aggregation of cross-supplier report
// rows: the sum of counts across all of that supplier's line items in the
// report period.
type SupplierRollup struct {
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Goats        int       `json:"goats"`
	Sheep        int       `json:"sheep"`
	Total        int       `json:"total"`
}

// ReportTotals holds grand totals across an entire report.
type ReportTotals struct {
	Goats int `json:"goats"`
	Sheep int `json:"sheep"`
	Total int `json:"total"`
}

// CrossSupplierReport is the full result of the cross-supplier report:
// the raw rows, the per-supplier roll-up in first-seen order, and grand
// totals. The grand totals always equal the sum of the roll-up totals.
type CrossSupplierReport struct {
	Rows   []CrossSupplierRow `json:"rows"`
	Rollup []SupplierRollup   `json:"rollup"`
	Totals ReportTotals       `json:"totals"`
}

// SupplierDetailReport is the full result of the single-supplier detail
// report, sorted by trip date descending.
type SupplierDetailReport struct {
	SupplierID   uuid.UUID           `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	Rows         []SupplierDetailRow `json:"rows"`
	Totals       ReportTotals        `json:"totals"`
}
