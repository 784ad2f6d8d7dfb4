package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/types"
)

// handleCreateInstitution adds an institution to the catalog (admin only)
func (s *Server) handleCreateInstitution(w http.ResponseWriter, r *http.Request) {
	var req types.CreateInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	inst := &db.Institution{
		Name:        req.Name,
		City:        req.City,
		Type:        req.Type,
		Description: req.Description,
	}
	id, err := s.db.CreateInstitution(r.Context(), inst)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	inst.ID = id

	s.jsonResponse(w, http.StatusCreated, inst)
}

// handleListInstitutions returns institutions, optionally filtered by city and type
func (s *Server) handleListInstitutions(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	instType := r.URL.Query().Get("type")
	if instType != "" && instType != db.InstitutionPublic && instType != db.InstitutionPrivate {
		s.errorResponse(w, http.StatusBadRequest, "type must be public or private")
		return
	}

	institutions, err := s.db.ListInstitutions(r.Context(), city, instType)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if institutions == nil {
		institutions = []db.Institution{}
	}

	s.jsonResponse(w, http.StatusOK, institutions)
}

// handleGetInstitution returns one institution by ID
func (s *Server) handleGetInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid institution ID format")
		return
	}

	inst, err := s.db.GetInstitution(r.Context(), institutionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if inst == nil {
		s.errorResponse(w, http.StatusNotFound, "Institution not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, inst)
}

// handleUpdateInstitution replaces an institution (admin only)
func (s *Server) handleUpdateInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid institution ID format")
		return
	}

	var req types.CreateInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	inst := &db.Institution{
		ID:          institutionID,
		Name:        req.Name,
		City:        req.City,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := s.db.UpdateInstitution(r.Context(), inst); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, inst)
}

// handleDeleteInstitution removes an institution (admin only)
func (s *Server) handleDeleteInstitution(w http.ResponseWriter, r *http.Request) {
	institutionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid institution ID format")
		return
	}

	if err := s.db.DeleteInstitution(r.Context(), institutionID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleCreateField adds a field of study to the catalog (admin only)
func (s *Server) handleCreateField(w http.ResponseWriter, r *http.Request) {
	var req types.CreateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	if req.TuitionFeesMin != nil && req.TuitionFeesMax != nil && *req.TuitionFeesMax < *req.TuitionFeesMin {
		s.errorResponse(w, http.StatusBadRequest, "tuition_fees_max must not be below tuition_fees_min")
		return
	}

	field := fieldFromRequest(&req)
	id, err := s.db.CreateField(r.Context(), field)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	field.ID = id

	s.jsonResponse(w, http.StatusCreated, field)
}

// handleListFields returns catalog fields with optional search, duration
// filter and ordering
func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	filters := db.FieldFilters{
		Search:  r.URL.Query().Get("search"),
		OrderBy: r.URL.Query().Get("order_by"),
	}
	if raw := r.URL.Query().Get("duration_years"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration < 1 {
			s.errorResponse(w, http.StatusBadRequest, "duration_years must be a positive integer")
			return
		}
		filters.DurationYears = duration
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filters.Limit = limit
	}

	fields, err := s.db.ListFields(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if fields == nil {
		fields = []db.Field{}
	}

	s.jsonResponse(w, http.StatusOK, fields)
}

// handleGetField returns one catalog field by ID
func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid field ID format")
		return
	}

	field, err := s.db.GetField(r.Context(), fieldID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if field == nil {
		s.errorResponse(w, http.StatusNotFound, "Field not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, field)
}

// handleUpdateField replaces a catalog field (admin only)
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid field ID format")
		return
	}

	var req types.CreateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	field := fieldFromRequest(&req)
	field.ID = fieldID
	if err := s.db.UpdateField(r.Context(), field); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, field)
}

// handleDeleteField removes a catalog field (admin only)
func (s *Server) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	fieldID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid field ID format")
		return
	}

	if err := s.db.DeleteField(r.Context(), fieldID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func fieldFromRequest(req *types.CreateFieldRequest) *db.Field {
	return &db.Field{
		Name:                req.Name,
		Description:         req.Description,
		DurationYears:       req.DurationYears,
		CareerOpportunities: req.CareerOpportunities,
		RequiredSkills:      req.RequiredSkills,
		AdmissionCriteria:   req.AdmissionCriteria,
		TuitionFeesMin:      req.TuitionFeesMin,
		TuitionFeesMax:      req.TuitionFeesMax,
		InstitutionIDs:      req.InstitutionIDs,
	}
}
