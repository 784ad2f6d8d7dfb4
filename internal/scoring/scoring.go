// Package scoring aggregates a completed session's answers into normalized
// per-category scores.
package scoring

import (
	"strings"

	"github.com/amine/orientation-platform/internal/survey"
)

// Default scoring parameters.
const (
	defaultMCQBonus    = 2.0
	defaultMaxRawScore = 5.0
)

// Config holds the tunable scoring parameters. Passing it in explicitly keeps
// the engine testable with alternate keyword lists and weightings.
type Config struct {
	// MCQKeywords maps each category to the option keywords that earn the
	// MCQ bonus when the chosen option text contains one of them.
	MCQKeywords map[survey.Category][]string
	// MCQBonus is the raw contribution of a keyword-matching MCQ answer.
	MCQBonus float64
	// MaxRawScore is the per-category raw total that normalizes to 1.0.
	MaxRawScore float64
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		MCQKeywords: map[survey.Category][]string{
			survey.CategoryAcademicInterests: {"science", "tech"},
			survey.CategoryPerceivedSkills:   {"math", "analysis"},
		},
		MCQBonus:    defaultMCQBonus,
		MaxRawScore: defaultMaxRawScore,
	}
}

// AnsweredQuestion pairs one submitted answer value with its question.
type AnsweredQuestion struct {
	Question *survey.Question
	Value    survey.Value
}

// CategoryScores maps every survey category to a normalized score in [0,1].
// All four categories are always present.
type CategoryScores map[survey.Category]float64

// Score converts the answer set of one session into normalized category
// scores. It is a pure function: the same answers always produce the same
// scores.
func Score(cfg Config, answers []AnsweredQuestion) CategoryScores {
	raw := make(map[survey.Category]float64, len(survey.Categories()))
	for _, c := range survey.Categories() {
		raw[c] = 0
	}

	for _, a := range answers {
		q := a.Question
		if q == nil || !q.Category.Valid() {
			continue
		}
		raw[q.Category] += contribution(cfg, q, a.Value)
	}

	scores := make(CategoryScores, len(raw))
	for c, total := range raw {
		scores[c] = normalize(cfg, total)
	}
	return scores
}

// contribution computes the raw score one answer adds to its category,
// dispatching on the question's answer type.
func contribution(cfg Config, q *survey.Question, v survey.Value) float64 {
	switch q.Type {
	case survey.TypeLikert:
		return float64(v.Scale)
	case survey.TypeMCQ:
		chosen := strings.ToLower(v.Option)
		for _, keyword := range cfg.MCQKeywords[q.Category] {
			if strings.Contains(chosen, strings.ToLower(keyword)) {
				return cfg.MCQBonus
			}
		}
		return 0
	case survey.TypeRanking:
		// Ranking answers are recorded but not scored yet. Known gap,
		// kept explicit here rather than buried in a conditional.
		return 0
	default:
		return 0
	}
}

// normalize divides a raw total by the expected maximum and clamps to [0,1].
func normalize(cfg Config, total float64) float64 {
	maxRaw := cfg.MaxRawScore
	if maxRaw <= 0 {
		maxRaw = defaultMaxRawScore
	}
	normalized := total / maxRaw
	if normalized > 1 {
		return 1
	}
	if normalized < 0 {
		return 0
	}
	return normalized
}
