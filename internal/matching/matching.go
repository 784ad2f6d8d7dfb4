// Package matching scores catalog fields against a user's normalized category
// scores and selects the best matches.
package matching

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/scoring"
	"github.com/amine/orientation-platform/internal/survey"
)

// Default matching parameters.
const (
	defaultInterestWeight      = 0.4
	defaultSkillWeight         = 0.3
	defaultActivationThreshold = 0.5
	defaultTopN                = 5
)

// Config holds the tunable matching parameters.
type Config struct {
	// InterestKeywords activate the academic-interests rule when one of them
	// appears in a field's description.
	InterestKeywords []string
	// SkillKeywords activate the perceived-skills rule when one of them
	// appears in a field's required-skills list.
	SkillKeywords []string
	// InterestWeight and SkillWeight scale the respective category scores.
	InterestWeight float64
	SkillWeight    float64
	// ActivationThreshold is the minimum category score for a rule to fire.
	ActivationThreshold float64
	// TopN caps the ranked result.
	TopN int
}

// DefaultConfig returns the production matching parameters.
func DefaultConfig() Config {
	return Config{
		InterestKeywords:    []string{"science", "tech", "informatique", "ingénierie"},
		SkillKeywords:       []string{"mathématiques", "programmation", "analyse"},
		InterestWeight:      defaultInterestWeight,
		SkillWeight:         defaultSkillWeight,
		ActivationThreshold: defaultActivationThreshold,
		TopN:                defaultTopN,
	}
}

// Field is the catalog view the matcher needs.
type Field struct {
	ID             uuid.UUID
	Name           string
	Description    string
	RequiredSkills []string
}

// Match is one ranked catalog field with its compatibility score on a 0-100
// scale, rounded to two decimals.
type Match struct {
	FieldID uuid.UUID `json:"field_id"`
	Score   float64   `json:"score"`
}

// Rank scores every field against the category scores, sorts descending with
// ties broken by ascending field ID, and returns the top-N matches. Fields
// with zero compatibility stay eligible when fewer than N fields score above
// zero; an empty catalog yields an empty result.
func Rank(cfg Config, scores scoring.CategoryScores, fields []Field) []Match {
	topN := cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	matches := make([]Match, 0, len(fields))
	for _, f := range fields {
		matches = append(matches, Match{
			FieldID: f.ID,
			Score:   toPercent(compatibility(cfg, scores, &f)),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].FieldID.String() < matches[j].FieldID.String()
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// compatibility computes one field's raw compatibility in [0,1].
func compatibility(cfg Config, scores scoring.CategoryScores, f *Field) float64 {
	score := 0.0

	interests := scores[survey.CategoryAcademicInterests]
	if interests > cfg.ActivationThreshold && descriptionMatches(f.Description, cfg.InterestKeywords) {
		score += interests * cfg.InterestWeight
	}

	skills := scores[survey.CategoryPerceivedSkills]
	if skills > cfg.ActivationThreshold && skillsMatch(f.RequiredSkills, cfg.SkillKeywords) {
		score += skills * cfg.SkillWeight
	}

	// professional_values and work_preferences have no matching rules yet.
	// Known gap: additional category rules slot in here.

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// descriptionMatches reports whether the description contains any keyword,
// case-insensitive substring match.
func descriptionMatches(description string, keywords []string) bool {
	haystack := strings.ToLower(description)
	for _, keyword := range keywords {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// skillsMatch reports whether any required skill equals any keyword,
// case-insensitive.
func skillsMatch(requiredSkills, keywords []string) bool {
	for _, skill := range requiredSkills {
		for _, keyword := range keywords {
			if strings.EqualFold(skill, keyword) {
				return true
			}
		}
	}
	return false
}

// toPercent converts a [0,1] compatibility to a 0-100 score with two decimals.
func toPercent(score float64) float64 {
	return math.Round(score*100*100) / 100
}
