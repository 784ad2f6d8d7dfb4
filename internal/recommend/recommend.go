// Package recommend assembles ranked field matches into a persistable
// recommendation.
package recommend

import (
	"time"

	"github.com/amine/orientation-platform/internal/matching"
)

// Justification strings surfaced to students, matching the product copy.
const (
	JustificationMatched = "Cette recommandation est basée sur l'analyse de vos intérêts académiques et compétences perçues. Les filières proposées correspondent le mieux à votre profil."
	JustificationEmpty   = "Nous n'avons pas pu trouver de recommandations précises pour vous. Veuillez réessayer le test ou contacter un conseiller."
)

// Recommendation is the final artifact of a completed session: the ranked
// fields, a justification, and the generation timestamp. It is persisted with
// upsert semantics, one per session.
type Recommendation struct {
	Fields        []matching.Match `json:"recommended_fields"`
	Justification string           `json:"justification"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// Assemble packages the ranked matches into a Recommendation. An empty ranked
// list is a valid terminal state and carries the advisory justification.
func Assemble(matches []matching.Match) Recommendation {
	justification := JustificationMatched
	if len(matches) == 0 {
		justification = JustificationEmpty
	}
	if matches == nil {
		matches = []matching.Match{}
	}
	return Recommendation{
		Fields:        matches,
		Justification: justification,
		GeneratedAt:   time.Now().UTC(),
	}
}
