// Package seed loads the survey question bank and the study catalog from
// JSON seed documents, validating each document against its schema before
// touching the database.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/schemas"
	"github.com/amine/orientation-platform/internal/survey"
)

// QuestionSeed is one entry in the question seed document.
type QuestionSeed struct {
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Type     string   `json:"question_type"`
	Options  []string `json:"options,omitempty"`
}

// InstitutionSeed is one entry in the institution seed document.
type InstitutionSeed struct {
	Name        string `json:"name"`
	City        string `json:"city"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// FieldSeed is one entry in the field seed document. Institutions are
// referenced by name and resolved against the institution catalog.
type FieldSeed struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	DurationYears       int      `json:"duration_years"`
	CareerOpportunities []string `json:"career_opportunities,omitempty"`
	RequiredSkills      []string `json:"required_skills,omitempty"`
	AdmissionCriteria   string   `json:"admission_criteria,omitempty"`
	TuitionFeesMin      *float64 `json:"tuition_fees_min,omitempty"`
	TuitionFeesMax      *float64 `json:"tuition_fees_max,omitempty"`
	Institutions        []string `json:"institutions,omitempty"`
}

// Paths names the seed documents to load. Empty entries are skipped.
type Paths struct {
	Questions    string
	Institutions string
	Fields       string
}

// Seeder inserts seed data, skipping entries that already exist so a seed
// run is repeatable.
type Seeder struct {
	db *db.DB
}

// New creates a Seeder.
func New(database *db.DB) *Seeder {
	return &Seeder{db: database}
}

// Run seeds questions, institutions and fields in that order. Fields go
// last so their institution references can be resolved.
func (s *Seeder) Run(ctx context.Context, paths Paths) error {
	if paths.Questions != "" {
		if err := s.SeedQuestions(ctx, paths.Questions); err != nil {
			return fmt.Errorf("failed to seed questions: %w", err)
		}
	}
	if paths.Institutions != "" {
		if err := s.SeedInstitutions(ctx, paths.Institutions); err != nil {
			return fmt.Errorf("failed to seed institutions: %w", err)
		}
	}
	if paths.Fields != "" {
		if err := s.SeedFields(ctx, paths.Fields); err != nil {
			return fmt.Errorf("failed to seed fields: %w", err)
		}
	}
	return nil
}

// SeedQuestions inserts survey questions, deduplicated by text.
func (s *Seeder) SeedQuestions(ctx context.Context, path string) error {
	var seeds []QuestionSeed
	if err := loadSeedFile(path, schemas.QuestionSeedSchema, &seeds); err != nil {
		return err
	}

	existing, err := s.db.ListQuestions(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, q := range existing {
		known[q.Text] = true
	}

	inserted := 0
	for _, entry := range seeds {
		if known[entry.Text] {
			continue
		}
		question := &survey.Question{
			Text:     entry.Text,
			Category: survey.Category(entry.Category),
			Type:     survey.AnswerType(entry.Type),
			Options:  entry.Options,
		}
		if _, err := s.db.CreateQuestion(ctx, question); err != nil {
			return err
		}
		known[entry.Text] = true
		inserted++
	}

	log.Printf("Seeded %d questions (%d already present)", inserted, len(seeds)-inserted)
	return nil
}

// SeedInstitutions inserts institutions, deduplicated by name.
func (s *Seeder) SeedInstitutions(ctx context.Context, path string) error {
	var seeds []InstitutionSeed
	if err := loadSeedFile(path, schemas.InstitutionSeedSchema, &seeds); err != nil {
		return err
	}

	known, err := s.institutionsByName(ctx)
	if err != nil {
		return err
	}

	inserted := 0
	for _, entry := range seeds {
		if _, ok := known[entry.Name]; ok {
			continue
		}
		inst := &db.Institution{
			Name:        entry.Name,
			City:        entry.City,
			Type:        entry.Type,
			Description: entry.Description,
		}
		id, err := s.db.CreateInstitution(ctx, inst)
		if err != nil {
			return err
		}
		known[entry.Name] = id
		inserted++
	}

	log.Printf("Seeded %d institutions (%d already present)", inserted, len(seeds)-inserted)
	return nil
}

// SeedFields inserts catalog fields, deduplicated by name, resolving
// institution references by name. An unresolvable reference fails the run:
// seeds are expected to be internally consistent.
func (s *Seeder) SeedFields(ctx context.Context, path string) error {
	var seeds []FieldSeed
	if err := loadSeedFile(path, schemas.FieldSeedSchema, &seeds); err != nil {
		return err
	}

	existing, err := s.db.ListFields(ctx, db.FieldFilters{})
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, f := range existing {
		known[f.Name] = true
	}

	institutions, err := s.institutionsByName(ctx)
	if err != nil {
		return err
	}

	inserted := 0
	for _, entry := range seeds {
		if known[entry.Name] {
			continue
		}

		institutionIDs := make([]uuid.UUID, 0, len(entry.Institutions))
		for _, name := range entry.Institutions {
			id, ok := institutions[name]
			if !ok {
				return fmt.Errorf("field %q references unknown institution %q", entry.Name, name)
			}
			institutionIDs = append(institutionIDs, id)
		}

		field := &db.Field{
			Name:                entry.Name,
			Description:         entry.Description,
			DurationYears:       entry.DurationYears,
			CareerOpportunities: entry.CareerOpportunities,
			RequiredSkills:      entry.RequiredSkills,
			AdmissionCriteria:   entry.AdmissionCriteria,
			TuitionFeesMin:      entry.TuitionFeesMin,
			TuitionFeesMax:      entry.TuitionFeesMax,
			InstitutionIDs:      institutionIDs,
		}
		if _, err := s.db.CreateField(ctx, field); err != nil {
			return err
		}
		known[entry.Name] = true
		inserted++
	}

	log.Printf("Seeded %d fields (%d already present)", inserted, len(seeds)-inserted)
	return nil
}

func (s *Seeder) institutionsByName(ctx context.Context) (map[string]uuid.UUID, error) {
	institutions, err := s.db.ListInstitutions(ctx, "", "")
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(institutions))
	for _, inst := range institutions {
		byName[inst.Name] = inst.ID
	}
	return byName, nil
}

// loadSeedFile validates a seed document against its schema and decodes it.
func loadSeedFile(path, schemaRelPath string, out any) error {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		return fmt.Errorf("schema not found: %s", schemaRelPath)
	}

	if err := schemas.ValidateJSON(schemaPath, path); err != nil {
		return fmt.Errorf("seed document %s is invalid: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}
	return nil
}
