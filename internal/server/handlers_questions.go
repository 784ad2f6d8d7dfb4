package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/survey"
	"github.com/amine/orientation-platform/internal/types"
)

// handleCreateQuestion adds a survey question (admin only)
func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req types.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	question, err := questionFromRequest(&req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.db.CreateQuestion(r.Context(), question)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	question.ID = id

	s.jsonResponse(w, http.StatusCreated, question)
}

// handleListQuestions returns all survey questions in insertion order
func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.db.ListQuestions(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if questions == nil {
		questions = []survey.Question{}
	}

	s.jsonResponse(w, http.StatusOK, questions)
}

// handleGetQuestion returns one question by ID
func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	question, err := s.db.GetQuestion(r.Context(), questionID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if question == nil {
		s.errorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, question)
}

// handleUpdateQuestion replaces a question (admin only). Questions that
// already have answers are immutable and the update is rejected.
func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	var req types.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	question, err := questionFromRequest(&req)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	question.ID = questionID

	if err := s.db.UpdateQuestion(r.Context(), question); err != nil {
		s.errorResponse(w, http.StatusConflict, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, question)
}

// handleDeleteQuestion removes a question and its answers (admin only)
func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid question ID format")
		return
	}

	if err := s.db.DeleteQuestion(r.Context(), questionID); err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// questionFromRequest builds a survey question, enforcing the option rules
// the struct tags cannot express: mcq and ranking need at least two options,
// likert declares none.
func questionFromRequest(req *types.CreateQuestionRequest) (*survey.Question, error) {
	question := &survey.Question{
		Text:     req.Text,
		Category: survey.Category(req.Category),
		Type:     survey.AnswerType(req.Type),
		Options:  req.Options,
	}

	switch question.Type {
	case survey.TypeLikert:
		if len(question.Options) > 0 {
			return nil, &ErrValidation{Field: "options", Message: "likert questions do not declare options"}
		}
	default:
		if len(question.Options) < 2 {
			return nil, &ErrValidation{Field: "options", Message: "at least two options are required"}
		}
	}

	return question, nil
}
