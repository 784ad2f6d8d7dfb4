package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/server/middleware"
	"github.com/amine/orientation-platform/internal/types"
)

// SessionResultResponse is the response for a completed session's result.
type SessionResultResponse struct {
	SessionID         uuid.UUID       `json:"session_id"`
	Scores            db.ScoreMap     `json:"scores"`
	RecommendedFields json.RawMessage `json:"recommended_fields"`
	Justification     string          `json:"justification"`
	GeneratedAt       string          `json:"generated_at"`
}

// handleStartSession opens a new survey session for the authenticated user
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	session, err := s.orientationService.StartSession(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, session)
}

// handleListSessions returns the authenticated user's sessions
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessions, err := s.orientationService.ListSessions(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if sessions == nil {
		sessions = []db.Session{}
	}

	s.jsonResponse(w, http.StatusOK, sessions)
}

// handleGetSession returns one of the authenticated user's sessions
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, err := s.orientationService.GetSession(r.Context(), userID, sessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleSubmitAnswer validates and stores an answer in an open session.
// Submitting again for the same question replaces the previous answer.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req types.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.QuestionID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}
	if len(req.Value) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	answer, err := s.orientationService.SubmitAnswer(r.Context(), userID, sessionID, req.QuestionID, req.Value)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, answer)
}

// handleCompleteSession runs the scoring pipeline and closes the session
func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, recommendation, err := s.orientationService.CompleteSession(r.Context(), userID, sessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session":        session,
		"recommendation": recommendation,
	})
}

// handleGetResult returns the stored recommendation for a completed session
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, record, err := s.orientationService.GetResult(r.Context(), userID, sessionID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SessionResultResponse{
		SessionID:         session.ID,
		Scores:            session.Scores,
		RecommendedFields: record.RecommendedFields,
		Justification:     record.Justification,
		GeneratedAt:       record.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
