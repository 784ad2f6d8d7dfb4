package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/matching"
	"github.com/amine/orientation-platform/internal/recommend"
	"github.com/amine/orientation-platform/internal/scoring"
	"github.com/amine/orientation-platform/internal/survey"
)

// OrientationService drives the survey workflow: session lifecycle, answer
// validation, and the scoring pipeline that turns a completed session into
// field recommendations.
type OrientationService struct {
	db             *db.DB
	scoringConfig  scoring.Config
	matchingConfig matching.Config
}

// NewOrientationService creates an OrientationService with default engine configuration.
func NewOrientationService(database *db.DB) *OrientationService {
	return &OrientationService{
		db:             database,
		scoringConfig:  scoring.DefaultConfig(),
		matchingConfig: matching.DefaultConfig(),
	}
}

// StartSession opens a new survey session for the user. A user may only have
// one uncompleted session at a time.
func (s *OrientationService) StartSession(ctx context.Context, userID uuid.UUID) (*db.Session, error) {
	active, err := s.db.GetActiveSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for active session: %w", err)
	}
	if active != nil {
		return nil, &ErrActiveSessionExists{SessionID: active.ID}
	}

	session, err := s.db.CreateSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession returns a session owned by the user.
func (s *OrientationService) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*db.Session, error) {
	return s.ownedSession(ctx, userID, sessionID)
}

// ListSessions returns all sessions belonging to the user, newest first.
func (s *OrientationService) ListSessions(ctx context.Context, userID uuid.UUID) ([]db.Session, error) {
	sessions, err := s.db.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// SubmitAnswer validates an answer against its question's declared type and
// stores the canonical form. Re-answering a question replaces the previous
// answer as long as the session is still open.
func (s *OrientationService) SubmitAnswer(ctx context.Context, userID, sessionID, questionID uuid.UUID, rawValue json.RawMessage) (*db.SessionAnswer, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, &ErrSessionCompleted{SessionID: sessionID}
	}

	question, err := s.db.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	if question == nil {
		return nil, &ErrQuestionNotFound{QuestionID: questionID}
	}

	value, err := survey.ParseValue(question, rawValue)
	if err != nil {
		return nil, err
	}

	canonical, err := canonicalAnswerJSON(question.Type, value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answer: %w", err)
	}

	answer, err := s.db.UpsertAnswer(ctx, sessionID, questionID, canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to store answer: %w", err)
	}
	return answer, nil
}

// CompleteSession runs the scoring pipeline over every stored answer,
// ranks the field catalog, and persists scores plus the recommendation.
// Completion is one-shot: a second attempt fails even under concurrency,
// serialized by a row lock on the session.
func (s *OrientationService) CompleteSession(ctx context.Context, userID, sessionID uuid.UUID) (*db.Session, *recommend.Recommendation, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsCompleted {
		return nil, nil, &ErrDuplicateCompletion{SessionID: sessionID}
	}

	// Answers and the field catalog are independent reads; load them in parallel.
	var (
		answers []db.AnswerWithQuestion
		fields  []db.Field
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		answers, err = s.db.ListSessionAnswers(gctx, sessionID)
		if err != nil {
			return fmt.Errorf("failed to load session answers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		fields, err = s.db.ListFields(gctx, db.FieldFilters{})
		if err != nil {
			return fmt.Errorf("failed to load field catalog: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	answered, err := parseStoredAnswers(answers)
	if err != nil {
		return nil, nil, err
	}

	scores := scoring.Score(s.scoringConfig, answered)
	matches := matching.Rank(s.matchingConfig, scores, toMatchingFields(fields))
	recommendation := recommend.Assemble(matches)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	locked, err := s.db.LockSessionTx(ctx, tx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock session: %w", err)
	}
	if locked == nil {
		return nil, nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	if locked.IsCompleted {
		return nil, nil, &ErrDuplicateCompletion{SessionID: sessionID}
	}

	scoreMap := make(db.ScoreMap, len(scores))
	for category, score := range scores {
		scoreMap[string(category)] = score
	}

	if err := s.db.MarkSessionCompletedTx(ctx, tx, sessionID, scoreMap); err != nil {
		return nil, nil, fmt.Errorf("failed to mark session completed: %w", err)
	}
	if err := s.db.UpsertRecommendationTx(ctx, tx, sessionID, recommendation.Fields, recommendation.Justification, recommendation.GeneratedAt); err != nil {
		return nil, nil, fmt.Errorf("failed to store recommendation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit completion: %w", err)
	}

	completed, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload completed session: %w", err)
	}
	return completed, &recommendation, nil
}

// GetResult returns the stored recommendation for a completed session.
func (s *OrientationService) GetResult(ctx context.Context, userID, sessionID uuid.UUID) (*db.Session, *db.RecommendationRecord, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !session.IsCompleted {
		return nil, nil, &ErrSessionNotFound{SessionID: sessionID}
	}

	record, err := s.db.GetRecommendation(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load recommendation: %w", err)
	}
	if record == nil {
		return nil, nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	return session, record, nil
}

// ownedSession loads a session and enforces ownership. Sessions belonging to
// other users are reported as not found rather than forbidden, so session IDs
// cannot be probed.
func (s *OrientationService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*db.Session, error) {
	session, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	return session, nil
}

// canonicalAnswerJSON encodes a validated answer in its canonical stored form:
// the declared option spelling for MCQ, an integer for likert scales, and the
// canonical option spellings in submitted order for rankings.
func canonicalAnswerJSON(answerType survey.AnswerType, value survey.Value) (json.RawMessage, error) {
	switch answerType {
	case survey.TypeMCQ:
		return json.Marshal(value.Option)
	case survey.TypeLikert:
		return json.Marshal(value.Scale)
	case survey.TypeRanking:
		return json.Marshal(value.Ranking)
	default:
		return nil, fmt.Errorf("unknown answer type: %s", answerType)
	}
}

// parseStoredAnswers re-parses stored answer values into the typed form the
// scoring engine consumes. Stored values are canonical, so a parse failure
// here indicates question mutation after answers existed.
func parseStoredAnswers(answers []db.AnswerWithQuestion) ([]scoring.AnsweredQuestion, error) {
	answered := make([]scoring.AnsweredQuestion, 0, len(answers))
	for i := range answers {
		question := &answers[i].Question
		value, err := survey.ParseValue(question, answers[i].Answer.Value)
		if err != nil {
			return nil, fmt.Errorf("stored answer for question %s is no longer valid: %w", question.ID, err)
		}
		answered = append(answered, scoring.AnsweredQuestion{
			Question: question,
			Value:    value,
		})
	}
	return answered, nil
}

// toMatchingFields projects catalog rows into the matching engine's view.
func toMatchingFields(fields []db.Field) []matching.Field {
	out := make([]matching.Field, 0, len(fields))
	for i := range fields {
		out = append(out, matching.Field{
			ID:             fields[i].ID,
			Name:           fields[i].Name,
			Description:    fields[i].Description,
			RequiredSkills: fields[i].RequiredSkills,
		})
	}
	return out
}
