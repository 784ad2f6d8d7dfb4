package server

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/survey"
	"github.com/amine/orientation-platform/internal/types"
)

func TestCanonicalAnswerJSON(t *testing.T) {
	tests := []struct {
		name       string
		answerType survey.AnswerType
		value      survey.Value
		want       string
	}{
		{"mcq stores the option string", survey.TypeMCQ, survey.Value{Option: "Physique"}, `"Physique"`},
		{"likert stores the integer", survey.TypeLikert, survey.Value{Scale: 4}, `4`},
		{"ranking stores the ordered list", survey.TypeRanking, survey.Value{Ranking: []string{"B", "A"}}, `["B","A"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := canonicalAnswerJSON(tt.answerType, tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestCanonicalAnswerJSON_UnknownType(t *testing.T) {
	_, err := canonicalAnswerJSON(survey.AnswerType("essay"), survey.Value{})
	assert.Error(t, err)
}

func TestParseStoredAnswers(t *testing.T) {
	likert := survey.Question{
		ID:       uuid.New(),
		Text:     "J'aime les mathématiques",
		Category: survey.CategoryAcademicInterests,
		Type:     survey.TypeLikert,
	}
	mcq := survey.Question{
		ID:       uuid.New(),
		Text:     "Quelle matière préférez-vous ?",
		Category: survey.CategoryPerceivedSkills,
		Type:     survey.TypeMCQ,
		Options:  []string{"Analyse de données", "Littérature"},
	}

	answers := []db.AnswerWithQuestion{
		{Answer: db.SessionAnswer{Value: json.RawMessage(`5`)}, Question: likert},
		{Answer: db.SessionAnswer{Value: json.RawMessage(`"Analyse de données"`)}, Question: mcq},
	}

	answered, err := parseStoredAnswers(answers)
	require.NoError(t, err)
	require.Len(t, answered, 2)
	assert.Equal(t, 5, answered[0].Value.Scale)
	assert.Equal(t, "Analyse de données", answered[1].Value.Option)
}

func TestParseStoredAnswers_StaleValue(t *testing.T) {
	likert := survey.Question{
		ID:       uuid.New(),
		Text:     "J'aime les mathématiques",
		Category: survey.CategoryAcademicInterests,
		Type:     survey.TypeLikert,
	}

	answers := []db.AnswerWithQuestion{
		{Answer: db.SessionAnswer{Value: json.RawMessage(`"cinq"`)}, Question: likert},
	}

	_, err := parseStoredAnswers(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), likert.ID.String())
}

func TestToMatchingFields(t *testing.T) {
	fields := []db.Field{
		{
			ID:             uuid.New(),
			Name:           "Génie Informatique",
			Description:    "Programme d'ingénierie en informatique",
			RequiredSkills: db.StringArray{"Programmation", "Mathématiques"},
			DurationYears:  5,
		},
	}

	projected := toMatchingFields(fields)
	require.Len(t, projected, 1)
	assert.Equal(t, fields[0].ID, projected[0].ID)
	assert.Equal(t, "Génie Informatique", projected[0].Name)
	assert.Equal(t, []string{"Programmation", "Mathématiques"}, projected[0].RequiredSkills)
}

func TestQuestionFromRequest(t *testing.T) {
	question, err := questionFromRequest(&types.CreateQuestionRequest{
		Text:     "Quelle matière préférez-vous ?",
		Category: "academic_interests",
		Type:     "mcq",
		Options:  []string{"Sciences", "Lettres"},
	})
	require.NoError(t, err)
	assert.Equal(t, survey.CategoryAcademicInterests, question.Category)
	assert.Equal(t, survey.TypeMCQ, question.Type)
}

func TestQuestionFromRequest_MCQNeedsTwoOptions(t *testing.T) {
	_, err := questionFromRequest(&types.CreateQuestionRequest{
		Text:     "Question",
		Category: "academic_interests",
		Type:     "mcq",
		Options:  []string{"Seule option"},
	})
	require.Error(t, err)
	var validation *ErrValidation
	assert.ErrorAs(t, err, &validation)
}

func TestQuestionFromRequest_LikertRejectsOptions(t *testing.T) {
	_, err := questionFromRequest(&types.CreateQuestionRequest{
		Text:     "Question",
		Category: "work_preferences",
		Type:     "likert",
		Options:  []string{"1", "2"},
	})
	require.Error(t, err)
}
