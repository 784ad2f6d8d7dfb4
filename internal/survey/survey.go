// Package survey defines the orientation survey model: question categories,
// answer types, and validation of submitted answer values.
package survey

import (
	"github.com/google/uuid"
)

// Category is one of the fixed survey dimensions a question belongs to.
type Category string

const (
	CategoryAcademicInterests  Category = "academic_interests"
	CategoryPerceivedSkills    Category = "perceived_skills"
	CategoryProfessionalValues Category = "professional_values"
	CategoryWorkPreferences    Category = "work_preferences"
)

// Categories returns all survey categories in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryAcademicInterests,
		CategoryPerceivedSkills,
		CategoryProfessionalValues,
		CategoryWorkPreferences,
	}
}

// Valid reports whether c is one of the fixed survey categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryAcademicInterests, CategoryPerceivedSkills,
		CategoryProfessionalValues, CategoryWorkPreferences:
		return true
	}
	return false
}

// AnswerType describes the shape of the value a question accepts.
type AnswerType string

const (
	TypeMCQ     AnswerType = "mcq"     // one option from the declared set
	TypeLikert  AnswerType = "likert"  // integer scale 1-5
	TypeRanking AnswerType = "ranking" // ordered preference over the declared options
)

// Valid reports whether t is a known answer type.
func (t AnswerType) Valid() bool {
	switch t {
	case TypeMCQ, TypeLikert, TypeRanking:
		return true
	}
	return false
}

// Likert scale bounds.
const (
	LikertMin = 1
	LikertMax = 5
)

// Question is one survey question. Questions are immutable once answers
// reference them.
type Question struct {
	ID       uuid.UUID  `json:"id"`
	Text     string     `json:"text"`
	Category Category   `json:"category"`
	Type     AnswerType `json:"question_type"`
	Options  []string   `json:"options"` // declared options for mcq and ranking, empty for likert
}
