package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Session represents one user's attempt at the orientation survey, spanning
// start to completion
type Session struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	Scores      ScoreMap   `json:"scores,omitempty"` // normalized category scores, set on completion
}

// SessionAnswer stores one submitted answer, keyed by session and question
type SessionAnswer struct {
	ID         uuid.UUID       `json:"id"`
	SessionID  uuid.UUID       `json:"session_id"`
	QuestionID uuid.UUID       `json:"question_id"`
	Value      json.RawMessage `json:"value"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// RecommendationRecord is the persisted recommendation, one per session
type RecommendationRecord struct {
	SessionID         uuid.UUID       `json:"session_id"`
	RecommendedFields json.RawMessage `json:"recommended_fields"` // JSONB ranked (field id, score) pairs
	Justification     string          `json:"justification"`
	GeneratedAt       time.Time       `json:"generated_at"`
}
