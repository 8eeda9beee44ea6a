package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
	"github.com/tanchoice/livestock/backend/internal/export"
)

// dateLayout is the wire format for calendar dates in request and response
// bodies. Only the date part of a trip date is meaningful.
const dateLayout = "2006-01-02"

// tripAnimalRequest is one animal line item in a trip create/update body.
// An empty mark is filled in from the supplier's default mark.
type tripAnimalRequest struct {
	SupplierID uuid.UUID `json:"supplier_id"`
	Mark       string    `json:"mark"`
	GoatsCount int       `json:"goats_count"`
	SheepCount int       `json:"sheep_count"`
}

// tripRequest is the JSON body for creating or updating a trip. The animals
// array wholesale-replaces the trip's line items on update.
type tripRequest struct {
	Date               string              `json:"date"`
	Region             string              `json:"region"`
	TruckNo            string              `json:"truck_no"`
	FormNo             string              `json:"form_no"`
	DriverName         string              `json:"driver_name"`
	EscortName         string              `json:"escort_name"`
	PreparedByName     string              `json:"prepared_by_name"`
	PreparedByPosition string              `json:"prepared_by_position"`
	Animals            []tripAnimalRequest `json:"animals"`
}

type tripAnimalResponse struct {
	ID           uuid.UUID `json:"id"`
	SupplierID   uuid.UUID `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Mark         string    `json:"mark,omitempty"`
	GoatsCount   int       `json:"goats_count"`
	SheepCount   int       `json:"sheep_count"`
	TotalAnimals int       `json:"total_animals"`
}

type tripTotals struct {
	Goats int `json:"goats"`
	Sheep int `json:"sheep"`
	Total int `json:"total"`
}

// tripResponse is the JSON shape of a trip summary (list endpoint).
type tripResponse struct {
	ID                 uuid.UUID `json:"id"`
	Date               string    `json:"date"`
	Region             string    `json:"region"`
	TruckNo            string    `json:"truck_no"`
	FormNo             string    `json:"form_no"`
	DriverName         string    `json:"driver_name"`
	EscortName         string    `json:"escort_name"`
	PreparedByName     string    `json:"prepared_by_name,omitempty"`
	PreparedByPosition string    `json:"prepared_by_position,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// tripDetailResponse adds the line items and their totals.
type tripDetailResponse struct {
	tripResponse
	Animals []tripAnimalResponse `json:"animals"`
	Totals  tripTotals           `json:"totals"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, animals, err := decodeTripRequest(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), trip, animals)
	if err != nil {
		respondServiceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, tripDetailToResponse(created))
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.trips.List(r.Context(), params)
	if err != nil {
		respondServiceError(w, err, "")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripDetailToResponse(trip))
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	trip, animals, err := decodeTripRequest(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip, animals)
	if err != nil {
		respondServiceError(w, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripDetailToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTripManifest handles GET /trips/{id}/manifest.
// It renders the trip as a printable collection form and returns it as a
// PDF download named after the form number.
func (s *Server) GetTripManifest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "trip not found")
		return
	}

	doc, err := export.TripManifestPDF(trip)
	if err != nil {
		respondServiceError(w, err, "")
		return
	}

	writeAttachment(w, doc, "application/pdf", fmt.Sprintf("Trip-%s.pdf", sanitizeFilename(trip.FormNo)))
}

// --- mapping helpers --------------------------------------------------------

// decodeTripRequest parses and converts a trip create/update body.
// Structural problems (bad JSON, unparsable date) are reported here; business
// rules (required fields, counts) are the service layer's job.
func decodeTripRequest(r *http.Request) (domain.Trip, []domain.TripAnimal, error) {
	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.Trip{}, nil, fmt.Errorf("invalid request body")
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			return domain.Trip{}, nil, fmt.Errorf("date must be formatted as %s", dateLayout)
		}
	}

	trip := domain.Trip{
		Date:               date,
		Region:             req.Region,
		TruckNo:            req.TruckNo,
		FormNo:             req.FormNo,
		DriverName:         req.DriverName,
		EscortName:         req.EscortName,
		PreparedByName:     req.PreparedByName,
		PreparedByPosition: req.PreparedByPosition,
	}

	animals := make([]domain.TripAnimal, len(req.Animals))
	for i, a := range req.Animals {
		animals[i] = domain.TripAnimal{
			SupplierID: a.SupplierID,
			Mark:       a.Mark,
			GoatsCount: a.GoatsCount,
			SheepCount: a.SheepCount,
		}
	}
	return trip, animals, nil
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:                 t.ID,
		Date:               t.Date.Format(dateLayout),
		Region:             t.Region,
		TruckNo:            t.TruckNo,
		FormNo:             t.FormNo,
		DriverName:         t.DriverName,
		EscortName:         t.EscortName,
		PreparedByName:     t.PreparedByName,
		PreparedByPosition: t.PreparedByPosition,
		CreatedAt:          t.CreatedAt,
	}
}

func tripDetailToResponse(t domain.TripDetail) tripDetailResponse {
	animals := make([]tripAnimalResponse, len(t.Animals))
	for i, a := range t.Animals {
		animals[i] = tripAnimalResponse{
			ID:           a.ID,
			SupplierID:   a.SupplierID,
			SupplierName: a.SupplierName,
			Mark:         a.Mark,
			GoatsCount:   a.GoatsCount,
			SheepCount:   a.SheepCount,
			TotalAnimals: a.TotalAnimals,
		}
	}
	goats, sheep, total := t.Totals()
	return tripDetailResponse{
		tripResponse: tripToResponse(t.Trip),
		Animals:      animals,
		Totals:       tripTotals{Goats: goats, Sheep: sheep, Total: total},
	}
}

// queryInt parses an optional positive integer query parameter.
// Returns nil when absent or malformed so defaults apply.
func queryInt(r *http.Request, name string) *int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}
