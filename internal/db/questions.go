package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amine/orientation-platform/internal/survey"
)

// CreateQuestion inserts a new survey question and returns its ID
func (db *DB) CreateQuestion(ctx context.Context, q *survey.Question) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO questions (text, category, question_type, options)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		q.Text, string(q.Category), string(q.Type), StringArray(q.Options),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create question: %w", err)
	}
	return id, nil
}

// GetQuestion retrieves a question by ID, or nil when absent
func (db *DB) GetQuestion(ctx context.Context, questionID uuid.UUID) (*survey.Question, error) {
	var q survey.Question
	var options StringArray
	err := db.pool.QueryRow(ctx,
		`SELECT id, text, category, question_type, options
		 FROM questions WHERE id = $1`,
		questionID,
	).Scan(&q.ID, &q.Text, &q.Category, &q.Type, &options)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	q.Options = options
	return &q, nil
}

// ListQuestions retrieves all survey questions in insertion order
func (db *DB) ListQuestions(ctx context.Context) ([]survey.Question, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, text, category, question_type, options
		 FROM questions ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []survey.Question
	for rows.Next() {
		var q survey.Question
		var options StringArray
		if err := rows.Scan(&q.ID, &q.Text, &q.Category, &q.Type, &options); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Options = options
		questions = append(questions, q)
	}
	return questions, nil
}

// UpdateQuestion replaces a question's attributes. Rejected when the question
// already has answers: questions are immutable once answered against.
func (db *DB) UpdateQuestion(ctx context.Context, q *survey.Question) error {
	var answered bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM session_answers WHERE question_id = $1)`,
		q.ID,
	).Scan(&answered)
	if err != nil {
		return fmt.Errorf("failed to check question answers: %w", err)
	}
	if answered {
		return fmt.Errorf("question %s has answers and cannot be modified", q.ID)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE questions SET text = $1, category = $2, question_type = $3, options = $4
		 WHERE id = $5`,
		q.Text, string(q.Category), string(q.Type), StringArray(q.Options), q.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("question not found: %s", q.ID)
	}
	return nil
}

// DeleteQuestion deletes a question and its answers (via cascade)
func (db *DB) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("question not found: %s", questionID)
	}
	return nil
}
