package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tanchoice/livestock/backend/internal/domain"
)

// supplierRequest is the JSON body for creating or updating a supplier.
// Only name is required; the service layer enforces that.
type supplierRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Region      string `json:"region"`
	DefaultMark string `json:"default_mark"`
}

// supplierResponse is the JSON shape of a supplier in all responses.
type supplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Region      string    `json:"region,omitempty"`
	DefaultMark string    `json:"default_mark,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListSuppliers handles GET /suppliers.
// Suppliers are returned sorted by name; the list is small enough that
// pagination is not worth the complexity.
func (s *Server) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.suppliers.List(r.Context())
	if err != nil {
		respondServiceError(w, err, "")
		return
	}

	data := make([]supplierResponse, len(suppliers))
	for i, sup := range suppliers {
		data[i] = supplierToResponse(sup)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// CreateSupplier handles POST /suppliers.
func (s *Server) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	created, err := s.suppliers.Create(r.Context(), requestToSupplier(req))
	if err != nil {
		respondServiceError(w, err, "supplier not found")
		return
	}

	writeJSON(w, http.StatusCreated, supplierToResponse(created))
}

// GetSupplier handles GET /suppliers/{id}.
func (s *Server) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	sup, err := s.suppliers.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "supplier not found")
		return
	}

	writeJSON(w, http.StatusOK, supplierToResponse(sup))
}

// UpdateSupplier handles PUT /suppliers/{id}.
func (s *Server) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req supplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body")
		return
	}

	sup := requestToSupplier(req)
	sup.ID = id
	updated, err := s.suppliers.Update(r.Context(), sup)
	if err != nil {
		respondServiceError(w, err, "supplier not found")
		return
	}

	writeJSON(w, http.StatusOK, supplierToResponse(updated))
}

// DeleteSupplier handles DELETE /suppliers/{id}.
// Deleting a supplier also removes its animal line items from all trips.
func (s *Server) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.suppliers.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "supplier not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses the named URL parameter as a UUID, writing a 404 if it is
// malformed. A garbage ID is indistinguishable from a missing resource.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
		return uuid.Nil, false
	}
	return id, true
}

func requestToSupplier(req supplierRequest) domain.Supplier {
	return domain.Supplier{
		Name:        req.Name,
		Phone:       req.Phone,
		Region:      req.Region,
		DefaultMark: req.DefaultMark,
	}
}

func supplierToResponse(s domain.Supplier) supplierResponse {
	return supplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Phone:       s.Phone,
		Region:      s.Region,
		DefaultMark: s.DefaultMark,
		CreatedAt:   s.CreatedAt,
	}
}
