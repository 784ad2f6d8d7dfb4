package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/server/middleware"
	"github.com/amine/orientation-platform/internal/types"
)

// handleAddFavorite bookmarks a field for the authenticated user. Adding an
// already bookmarked field is a conflict, not a duplicate row.
func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req types.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FieldID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "field_id is required")
		return
	}

	field, err := s.db.GetField(r.Context(), req.FieldID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if field == nil {
		s.errorResponse(w, http.StatusNotFound, "Field not found")
		return
	}

	favoriteID, created, err := s.db.AddFavorite(r.Context(), userID, req.FieldID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !created {
		favErr := &ErrAlreadyFavorite{FieldID: req.FieldID}
		s.errorResponse(w, HTTPStatus(favErr), favErr.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":       favoriteID,
		"field_id": req.FieldID,
	})
}

// handleListFavorites returns the authenticated user's bookmarked fields
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	favorites, err := s.db.ListFavorites(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if favorites == nil {
		favorites = []db.Favorite{}
	}

	s.jsonResponse(w, http.StatusOK, favorites)
}

// handleDeleteFavorite removes one of the authenticated user's bookmarks
func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	favoriteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid favorite ID format")
		return
	}

	if err := s.db.DeleteFavorite(r.Context(), favoriteID, userID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
