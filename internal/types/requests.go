package types

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CreateQuestionRequest represents the admin request to add a survey question.
type CreateQuestionRequest struct {
	Text     string   `json:"text" validate:"required,min=1"`
	Category string   `json:"category" validate:"required,oneof=academic_interests perceived_skills professional_values work_preferences"`
	Type     string   `json:"question_type" validate:"required,oneof=mcq likert ranking"`
	Options  []string `json:"options" validate:"required_unless=Type likert,dive,min=1"`
}

// SubmitAnswerRequest represents a student's answer to one question. The
// value's shape depends on the question's answer type and is validated by the
// survey model before it is stored.
type SubmitAnswerRequest struct {
	QuestionID uuid.UUID       `json:"question_id" validate:"required"`
	Value      json.RawMessage `json:"value" validate:"required"`
}

// CreateInstitutionRequest represents the admin request to add an institution.
type CreateInstitutionRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	City        string `json:"city" validate:"required,min=1,max=100"`
	Type        string `json:"type" validate:"required,oneof=public private"`
	Description string `json:"description,omitempty"`
}

// CreateFieldRequest represents the admin request to add a catalog field.
type CreateFieldRequest struct {
	Name                string      `json:"name" validate:"required,min=1,max=255"`
	Description         string      `json:"description" validate:"required"`
	DurationYears       int         `json:"duration_years" validate:"required,min=1,max=12"`
	CareerOpportunities []string    `json:"career_opportunities,omitempty"`
	RequiredSkills      []string    `json:"required_skills,omitempty"`
	AdmissionCriteria   string      `json:"admission_criteria,omitempty"`
	TuitionFeesMin      *float64    `json:"tuition_fees_min,omitempty" validate:"omitempty,min=0"`
	TuitionFeesMax      *float64    `json:"tuition_fees_max,omitempty" validate:"omitempty,min=0"`
	InstitutionIDs      []uuid.UUID `json:"institution_ids,omitempty"`
}

// AddFavoriteRequest represents a student's request to bookmark a field.
type AddFavoriteRequest struct {
	FieldID uuid.UUID `json:"field_id" validate:"required"`
}
