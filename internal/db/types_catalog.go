package db

import (
	"time"

	"github.com/google/uuid"
)

// Institution types.
const (
	InstitutionPublic  = "public"
	InstitutionPrivate = "private"
)

// Institution represents a school or university offering fields of study
type Institution struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Type        string    `json:"type"` // public or private
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Field represents an academic field of study in the catalog
type Field struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	Description         string      `json:"description"`
	DurationYears       int         `json:"duration_years"`
	CareerOpportunities StringArray `json:"career_opportunities"` // JSONB array
	RequiredSkills      StringArray `json:"required_skills"`      // JSONB array
	AdmissionCriteria   string      `json:"admission_criteria,omitempty"`
	TuitionFeesMin      *float64    `json:"tuition_fees_min,omitempty"`
	TuitionFeesMax      *float64    `json:"tuition_fees_max,omitempty"`
	InstitutionIDs      []uuid.UUID `json:"institution_ids,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
}

// FieldFilters holds optional filters for listing fields
type FieldFilters struct {
	Search        string // matches name, description or required skills
	DurationYears int
	OrderBy       string // name, duration_years or tuition_fees_min
	Limit         int
}

// Favorite links a student to a bookmarked field
type Favorite struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	FieldID uuid.UUID `json:"field_id"`
	AddedAt time.Time `json:"added_at"`
}
