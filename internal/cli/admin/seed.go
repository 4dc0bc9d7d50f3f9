package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adresponse/adresponse/internal/config"
	"github.com/adresponse/adresponse/internal/database"
	"github.com/adresponse/adresponse/internal/repository"
	"github.com/adresponse/adresponse/internal/seed"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into the database",
		Long:  "Load the sample RFPs, knowledge articles, team members and mailbox emails. Skipped when RFPs already exist.",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.HasDatabase() {
		return fmt.Errorf("ADR_DATABASE_URL is required; the in-memory stores are seeded at serve time with ADR_SEED_ON_START=true")
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return seed.Run(ctx, seed.Stores{
		RFPs:     repository.NewRFPRepository(pool),
		Articles: repository.NewArticleRepository(pool),
		Team:     repository.NewTeamRepository(pool),
		Emails:   repository.NewEmailRepository(pool),
	})
}
