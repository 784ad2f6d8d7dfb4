package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func resolvedSchema(t *testing.T, relPath string) string {
	t.Helper()
	path := ResolveSchemaPath(relPath)
	require.NotEmpty(t, path, "schema %s should resolve from the test working directory", relPath)
	return path
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/no_such_schema.json"))
}

func TestValidateJSON_QuestionSeed_Valid(t *testing.T) {
	doc := writeTempJSON(t, `[
		{"text": "J'aime les sciences", "category": "academic_interests", "question_type": "likert"},
		{"text": "Quelle matière préférez-vous ?", "category": "perceived_skills", "question_type": "mcq",
		 "options": ["Mathématiques", "Littérature"]}
	]`)

	err := ValidateJSON(resolvedSchema(t, QuestionSeedSchema), doc)
	assert.NoError(t, err)
}

func TestValidateJSON_QuestionSeed_UnknownCategory(t *testing.T) {
	doc := writeTempJSON(t, `[
		{"text": "Question", "category": "hobbies", "question_type": "likert"}
	]`)

	err := ValidateJSON(resolvedSchema(t, QuestionSeedSchema), doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_QuestionSeed_MCQWithoutOptions(t *testing.T) {
	doc := writeTempJSON(t, `[
		{"text": "Question", "category": "academic_interests", "question_type": "mcq"}
	]`)

	err := ValidateJSON(resolvedSchema(t, QuestionSeedSchema), doc)
	require.Error(t, err)
}

func TestValidateJSON_QuestionSeed_LikertWithOptions(t *testing.T) {
	doc := writeTempJSON(t, `[
		{"text": "Question", "category": "academic_interests", "question_type": "likert",
		 "options": ["1", "2"]}
	]`)

	err := ValidateJSON(resolvedSchema(t, QuestionSeedSchema), doc)
	require.Error(t, err)
}

func TestValidateJSON_InstitutionSeed(t *testing.T) {
	valid := writeTempJSON(t, `[
		{"name": "Université Mohammed V", "city": "Rabat", "type": "public"}
	]`)
	assert.NoError(t, ValidateJSON(resolvedSchema(t, InstitutionSeedSchema), valid))

	invalid := writeTempJSON(t, `[
		{"name": "Université Mohammed V", "city": "Rabat", "type": "communal"}
	]`)
	assert.Error(t, ValidateJSON(resolvedSchema(t, InstitutionSeedSchema), invalid))
}

func TestValidateJSON_FieldSeed(t *testing.T) {
	valid := writeTempJSON(t, `[
		{"name": "Génie Informatique", "description": "Programme d'ingénierie", "duration_years": 5,
		 "required_skills": ["Programmation", "Mathématiques"], "tuition_fees_min": 0}
	]`)
	assert.NoError(t, ValidateJSON(resolvedSchema(t, FieldSeedSchema), valid))

	negativeTuition := writeTempJSON(t, `[
		{"name": "Génie Informatique", "description": "Programme d'ingénierie", "duration_years": 5,
		 "tuition_fees_min": -100}
	]`)
	assert.Error(t, ValidateJSON(resolvedSchema(t, FieldSeedSchema), negativeTuition))
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	doc := writeTempJSON(t, `[]`)
	err := ValidateJSON("testdata/nonexistent_schema.json", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name": "ok"}`))

	err := ValidateJSONString(schema, `{"name": 42}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}
