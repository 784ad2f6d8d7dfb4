package recommend

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/amine/orientation-platform/internal/matching"
)

func TestAssemble_WithMatches(t *testing.T) {
	matches := []matching.Match{
		{FieldID: uuid.New(), Score: 70.0},
		{FieldID: uuid.New(), Score: 32.0},
	}

	rec := Assemble(matches)

	assert.Equal(t, matches, rec.Fields)
	assert.Equal(t, JustificationMatched, rec.Justification)
	assert.WithinDuration(t, time.Now().UTC(), rec.GeneratedAt, 5*time.Second)
}

func TestAssemble_EmptyCatalogAdvisoryMessage(t *testing.T) {
	rec := Assemble(nil)

	assert.NotNil(t, rec.Fields)
	assert.Empty(t, rec.Fields)
	assert.Equal(t, JustificationEmpty, rec.Justification)
}
