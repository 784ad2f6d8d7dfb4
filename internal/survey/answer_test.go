package survey

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mcqQuestion(options ...string) *Question {
	return &Question{
		ID:       uuid.New(),
		Text:     "Which subject do you prefer?",
		Category: CategoryAcademicInterests,
		Type:     TypeMCQ,
		Options:  options,
	}
}

func TestParseValue_MCQ_ExactMatch(t *testing.T) {
	q := mcqQuestion("Science et technologie", "Littérature", "Arts")

	v, err := ParseValue(q, json.RawMessage(`"Littérature"`))

	require.NoError(t, err)
	assert.Equal(t, "Littérature", v.Option)
}

func TestParseValue_MCQ_CaseInsensitive(t *testing.T) {
	q := mcqQuestion("Science et technologie", "Arts")

	v, err := ParseValue(q, json.RawMessage(`"science et technologie"`))

	require.NoError(t, err)
	// Canonical spelling from the declared option set is kept.
	assert.Equal(t, "Science et technologie", v.Option)
}

func TestParseValue_MCQ_UnknownOption(t *testing.T) {
	q := mcqQuestion("Science", "Arts")

	_, err := ParseValue(q, json.RawMessage(`"Sports"`))

	var invalid *InvalidAnswerError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, q.ID, invalid.QuestionID)
}

func TestParseValue_MCQ_WrongShape(t *testing.T) {
	q := mcqQuestion("Science", "Arts")

	_, err := ParseValue(q, json.RawMessage(`3`))

	var invalid *InvalidAnswerError
	assert.ErrorAs(t, err, &invalid)
}

func TestParseValue_Likert_Valid(t *testing.T) {
	q := &Question{ID: uuid.New(), Category: CategoryPerceivedSkills, Type: TypeLikert}

	for _, raw := range []string{"1", "3", "5"} {
		v, err := ParseValue(q, json.RawMessage(raw))
		require.NoError(t, err, "value %s", raw)
		assert.GreaterOrEqual(t, v.Scale, LikertMin)
		assert.LessOrEqual(t, v.Scale, LikertMax)
	}
}

func TestParseValue_Likert_OutOfRange(t *testing.T) {
	q := &Question{ID: uuid.New(), Category: CategoryPerceivedSkills, Type: TypeLikert}

	for _, raw := range []string{"0", "6", "-1"} {
		_, err := ParseValue(q, json.RawMessage(raw))
		var invalid *InvalidAnswerError
		assert.ErrorAs(t, err, &invalid, "value %s", raw)
	}
}

func TestParseValue_Likert_NonInteger(t *testing.T) {
	q := &Question{ID: uuid.New(), Category: CategoryWorkPreferences, Type: TypeLikert}

	_, err := ParseValue(q, json.RawMessage(`3.5`))
	var invalid *InvalidAnswerError
	assert.ErrorAs(t, err, &invalid)

	_, err = ParseValue(q, json.RawMessage(`"3"`))
	assert.ErrorAs(t, err, &invalid)
}

func TestParseValue_Ranking_Permutation(t *testing.T) {
	q := &Question{
		ID:       uuid.New(),
		Category: CategoryProfessionalValues,
		Type:     TypeRanking,
		Options:  []string{"Salaire", "Stabilité", "Créativité"},
	}

	v, err := ParseValue(q, json.RawMessage(`["Créativité","Salaire","Stabilité"]`))

	require.NoError(t, err)
	assert.Equal(t, []string{"Créativité", "Salaire", "Stabilité"}, v.Ranking)
}

func TestParseValue_Ranking_SubsetKeepsOrder(t *testing.T) {
	q := &Question{
		ID:      uuid.New(),
		Type:    TypeRanking,
		Options: []string{"Salaire", "Stabilité", "Créativité"},
	}

	v, err := ParseValue(q, json.RawMessage(`["stabilité","salaire"]`))

	require.NoError(t, err)
	assert.Equal(t, []string{"Stabilité", "Salaire"}, v.Ranking)
}

func TestParseValue_Ranking_RejectsDuplicates(t *testing.T) {
	q := &Question{
		ID:      uuid.New(),
		Type:    TypeRanking,
		Options: []string{"Salaire", "Stabilité"},
	}

	_, err := ParseValue(q, json.RawMessage(`["Salaire","salaire"]`))

	var invalid *InvalidAnswerError
	assert.ErrorAs(t, err, &invalid)
}

func TestParseValue_Ranking_RejectsUnknownAndEmpty(t *testing.T) {
	q := &Question{
		ID:      uuid.New(),
		Type:    TypeRanking,
		Options: []string{"Salaire", "Stabilité"},
	}

	var invalid *InvalidAnswerError

	_, err := ParseValue(q, json.RawMessage(`["Aventure"]`))
	assert.ErrorAs(t, err, &invalid)

	_, err = ParseValue(q, json.RawMessage(`[]`))
	assert.ErrorAs(t, err, &invalid)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("hobbies").Valid())
}

func TestAnswerTypeValid(t *testing.T) {
	assert.True(t, TypeMCQ.Valid())
	assert.True(t, TypeLikert.Valid())
	assert.True(t, TypeRanking.Valid())
	assert.False(t, AnswerType("essay").Valid())
}
