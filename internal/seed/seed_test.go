package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amine/orientation-platform/internal/schemas"
)

func writeTempSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSeedFile_Questions(t *testing.T) {
	path := writeTempSeed(t, `[
		{"text": "J'aime les sciences", "category": "academic_interests", "question_type": "likert"},
		{"text": "Classez vos préférences", "category": "work_preferences", "question_type": "ranking",
		 "options": ["Bureau", "Terrain", "Laboratoire"]}
	]`)

	var seeds []QuestionSeed
	require.NoError(t, loadSeedFile(path, schemas.QuestionSeedSchema, &seeds))
	require.Len(t, seeds, 2)
	assert.Equal(t, "likert", seeds[0].Type)
	assert.Equal(t, []string{"Bureau", "Terrain", "Laboratoire"}, seeds[1].Options)
}

func TestLoadSeedFile_RejectsInvalidDocument(t *testing.T) {
	path := writeTempSeed(t, `[
		{"text": "Question", "category": "unknown_category", "question_type": "likert"}
	]`)

	var seeds []QuestionSeed
	err := loadSeedFile(path, schemas.QuestionSeedSchema, &seeds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoadSeedFile_Fields(t *testing.T) {
	path := writeTempSeed(t, `[
		{"name": "Génie Informatique", "description": "Programme d'ingénierie en informatique",
		 "duration_years": 5, "required_skills": ["Programmation", "Mathématiques"],
		 "institutions": ["Université Mohammed V"]}
	]`)

	var seeds []FieldSeed
	require.NoError(t, loadSeedFile(path, schemas.FieldSeedSchema, &seeds))
	require.Len(t, seeds, 1)
	assert.Equal(t, 5, seeds[0].DurationYears)
	assert.Equal(t, []string{"Université Mohammed V"}, seeds[0].Institutions)
	assert.Nil(t, seeds[0].TuitionFeesMin)
}

func TestLoadSeedFile_MissingFile(t *testing.T) {
	var seeds []QuestionSeed
	err := loadSeedFile("no/such/file.json", schemas.QuestionSeedSchema, &seeds)
	assert.Error(t, err)
}

func TestLoadSeedFile_MissingSchema(t *testing.T) {
	path := writeTempSeed(t, `[]`)
	var seeds []QuestionSeed
	err := loadSeedFile(path, "schemas/no_such_schema.json", &seeds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema not found")
}
