package survey

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// InvalidAnswerError reports a submitted value that does not conform to its
// question's declared type or option set. Malformed values are rejected at
// submission time and never reach the scoring engine.
type InvalidAnswerError struct {
	QuestionID uuid.UUID
	Reason     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %s: %s", e.QuestionID, e.Reason)
}

// Value is the decoded form of an answer. Exactly one member is meaningful,
// selected by the question's answer type.
type Value struct {
	Option  string   `json:"option,omitempty"`  // mcq: the chosen option
	Scale   int      `json:"scale,omitempty"`   // likert: 1-5
	Ranking []string `json:"ranking,omitempty"` // ranking: ordered preference
}

// ParseValue validates a raw JSON answer value against the question's declared
// type and option set, and returns its decoded form. It is the single entry
// point for answer validation; there are no side effects.
func ParseValue(q *Question, raw json.RawMessage) (Value, error) {
	switch q.Type {
	case TypeMCQ:
		return parseMCQ(q, raw)
	case TypeLikert:
		return parseLikert(q, raw)
	case TypeRanking:
		return parseRanking(q, raw)
	default:
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: fmt.Sprintf("unknown question type %q", q.Type)}
	}
}

func parseMCQ(q *Question, raw json.RawMessage) (Value, error) {
	var chosen string
	if err := json.Unmarshal(raw, &chosen); err != nil {
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: "mcq answer must be a string"}
	}

	// Match case-insensitively but keep the declared option spelling.
	for _, opt := range q.Options {
		if strings.EqualFold(opt, chosen) {
			return Value{Option: opt}, nil
		}
	}
	return Value{}, &InvalidAnswerError{
		QuestionID: q.ID,
		Reason:     fmt.Sprintf("%q is not one of the declared options", chosen),
	}
}

func parseLikert(q *Question, raw json.RawMessage) (Value, error) {
	var scale float64
	if err := json.Unmarshal(raw, &scale); err != nil {
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: "likert answer must be a number"}
	}
	if scale != math.Trunc(scale) {
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: "likert answer must be an integer"}
	}
	n := int(scale)
	if n < LikertMin || n > LikertMax {
		return Value{}, &InvalidAnswerError{
			QuestionID: q.ID,
			Reason:     fmt.Sprintf("likert answer %d is outside [%d,%d]", n, LikertMin, LikertMax),
		}
	}
	return Value{Scale: n}, nil
}

func parseRanking(q *Question, raw json.RawMessage) (Value, error) {
	var ranked []string
	if err := json.Unmarshal(raw, &ranked); err != nil {
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: "ranking answer must be a list of options"}
	}
	if len(ranked) == 0 {
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: "ranking answer is empty"}
	}
	if len(ranked) > len(q.Options) {
		return Value{}, &InvalidAnswerError{QuestionID: q.ID, Reason: "ranking answer has more entries than declared options"}
	}

	// Every entry must be a declared option, each used at most once. The
	// submitted order is the user's preference and is preserved as-is.
	seen := make(map[string]bool, len(ranked))
	canonical := make([]string, 0, len(ranked))
	for _, entry := range ranked {
		matched := ""
		for _, opt := range q.Options {
			if strings.EqualFold(opt, entry) {
				matched = opt
				break
			}
		}
		if matched == "" {
			return Value{}, &InvalidAnswerError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("%q is not one of the declared options", entry),
			}
		}
		if seen[matched] {
			return Value{}, &InvalidAnswerError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("option %q ranked more than once", matched),
			}
		}
		seen[matched] = true
		canonical = append(canonical, matched)
	}

	return Value{Ranking: canonical}, nil
}
