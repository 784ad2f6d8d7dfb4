package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amine/orientation-platform/internal/survey"
)

// CreateSession starts a new orientation session for a user
func (db *DB) CreateSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	var s Session
	err := db.pool.QueryRow(ctx,
		`INSERT INTO orientation_sessions (user_id)
		 VALUES ($1)
		 RETURNING id, user_id, started_at, completed_at, is_completed, scores`,
		userID,
	).Scan(&s.ID, &s.UserID, &s.StartedAt, &s.CompletedAt, &s.IsCompleted, &s.Scores)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &s, nil
}

// GetSession retrieves a session by ID, or nil when absent
func (db *DB) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var s Session
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, started_at, completed_at, is_completed, scores
		 FROM orientation_sessions WHERE id = $1`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &s.StartedAt, &s.CompletedAt, &s.IsCompleted, &s.Scores)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// GetActiveSession retrieves a user's uncompleted session, or nil when none
func (db *DB) GetActiveSession(ctx context.Context, userID uuid.UUID) (*Session, error) {
	var s Session
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, started_at, completed_at, is_completed, scores
		 FROM orientation_sessions
		 WHERE user_id = $1 AND is_completed = FALSE
		 ORDER BY started_at DESC LIMIT 1`,
		userID,
	).Scan(&s.ID, &s.UserID, &s.StartedAt, &s.CompletedAt, &s.IsCompleted, &s.Scores)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	return &s, nil
}

// ListSessionsByUser retrieves a user's sessions, newest first
func (db *DB) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, started_at, completed_at, is_completed, scores
		 FROM orientation_sessions WHERE user_id = $1 ORDER BY started_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.StartedAt, &s.CompletedAt, &s.IsCompleted, &s.Scores); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// UpsertAnswer stores an answer value for a question within a session,
// replacing any previous value for the same question
func (db *DB) UpsertAnswer(ctx context.Context, sessionID, questionID uuid.UUID, value json.RawMessage) (*SessionAnswer, error) {
	var a SessionAnswer
	err := db.pool.QueryRow(ctx,
		`INSERT INTO session_answers (session_id, question_id, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (session_id, question_id) DO UPDATE SET value = $3, updated_at = NOW()
		 RETURNING id, session_id, question_id, value, updated_at`,
		sessionID, questionID, value,
	).Scan(&a.ID, &a.SessionID, &a.QuestionID, &a.Value, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert answer: %w", err)
	}
	return &a, nil
}

// AnswerWithQuestion joins one stored answer with its question
type AnswerWithQuestion struct {
	Answer   SessionAnswer
	Question survey.Question
}

// ListSessionAnswers retrieves a session's answers joined with their questions
func (db *DB) ListSessionAnswers(ctx context.Context, sessionID uuid.UUID) ([]AnswerWithQuestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.session_id, a.question_id, a.value, a.updated_at,
		        q.id, q.text, q.category, q.question_type, q.options
		 FROM session_answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.session_id = $1
		 ORDER BY a.updated_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list session answers: %w", err)
	}
	defer rows.Close()

	var answers []AnswerWithQuestion
	for rows.Next() {
		var aq AnswerWithQuestion
		var options StringArray
		if err := rows.Scan(
			&aq.Answer.ID, &aq.Answer.SessionID, &aq.Answer.QuestionID, &aq.Answer.Value, &aq.Answer.UpdatedAt,
			&aq.Question.ID, &aq.Question.Text, &aq.Question.Category, &aq.Question.Type, &options,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session answer: %w", err)
		}
		aq.Question.Options = options
		answers = append(answers, aq)
	}
	return answers, nil
}

// LockSessionTx loads a session inside a transaction with a row lock,
// serializing concurrent completion attempts for the same session.
func (db *DB) LockSessionTx(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID) (*Session, error) {
	var s Session
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, started_at, completed_at, is_completed, scores
		 FROM orientation_sessions WHERE id = $1
		 FOR UPDATE`,
		sessionID,
	).Scan(&s.ID, &s.UserID, &s.StartedAt, &s.CompletedAt, &s.IsCompleted, &s.Scores)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock session: %w", err)
	}
	return &s, nil
}

// MarkSessionCompletedTx marks a session completed and stores its category scores
func (db *DB) MarkSessionCompletedTx(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, scores ScoreMap) error {
	result, err := tx.Exec(ctx,
		`UPDATE orientation_sessions
		 SET is_completed = TRUE, completed_at = NOW(), scores = $1
		 WHERE id = $2`,
		scores, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark session completed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	return nil
}

// UpsertRecommendationTx stores the recommendation for a session, replacing
// any prior result (one recommendation per session)
func (db *DB) UpsertRecommendationTx(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, recommendedFields any, justification string, generatedAt time.Time) error {
	fieldsJSON, err := json.Marshal(recommendedFields)
	if err != nil {
		return fmt.Errorf("failed to marshal recommended fields: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO recommendations (session_id, recommended_fields, justification, generated_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id) DO UPDATE
		 SET recommended_fields = $2, justification = $3, generated_at = $4`,
		sessionID, fieldsJSON, justification, generatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recommendation: %w", err)
	}
	return nil
}

// GetRecommendation retrieves the recommendation for a session, or nil when absent
func (db *DB) GetRecommendation(ctx context.Context, sessionID uuid.UUID) (*RecommendationRecord, error) {
	var rec RecommendationRecord
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, recommended_fields, justification, generated_at
		 FROM recommendations WHERE session_id = $1`,
		sessionID,
	).Scan(&rec.SessionID, &rec.RecommendedFields, &rec.Justification, &rec.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	return &rec, nil
}
