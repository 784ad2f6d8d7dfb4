package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amine/orientation-platform/internal/config"
	"github.com/amine/orientation-platform/internal/db"
	"github.com/amine/orientation-platform/internal/seed"
)

var (
	seedConfigPath   string
	seedQuestions    string
	seedInstitutions string
	seedFields       string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load seed data into the database",
	Long: `Validate seed documents against their JSON schemas and insert the
survey question bank, institutions and fields of study. Entries that already
exist are skipped, so the command is safe to re-run.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedConfigPath, "config", "", "Path to a JSON config file")
	seedCmd.Flags().StringVar(&seedQuestions, "questions", "", "Path to the question seed document")
	seedCmd.Flags().StringVar(&seedInstitutions, "institutions", "", "Path to the institution seed document")
	seedCmd.Flags().StringVar(&seedFields, "fields", "", "Path to the field seed document")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	var cfg config.Config
	if seedConfigPath != "" {
		loaded, err := config.LoadConfig(seedConfigPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		QuestionsSeed:    seedQuestions,
		InstitutionsSeed: seedInstitutions,
		FieldsSeed:       seedFields,
	})
	// Flags override the config file
	if seedQuestions != "" {
		cfg.QuestionsSeed = seedQuestions
	}
	if seedInstitutions != "" {
		cfg.InstitutionsSeed = seedInstitutions
	}
	if seedFields != "" {
		cfg.FieldsSeed = seedFields
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.QuestionsSeed == "" && cfg.InstitutionsSeed == "" && cfg.FieldsSeed == "" {
		return fmt.Errorf("nothing to seed: provide --questions, --institutions or --fields")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	return seed.New(database).Run(ctx, seed.Paths{
		Questions:    cfg.QuestionsSeed,
		Institutions: cfg.InstitutionsSeed,
		Fields:       cfg.FieldsSeed,
	})
}
