package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/database"
	"github.com/justsurfingit/jobmarket/internal/repository"
	"github.com/justsurfingit/jobmarket/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo jobs that are not already present",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("poster", "", "id of the user the demo jobs are posted by")
	_ = seedCmd.MarkFlagRequired("poster")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	raw, err := cmd.Flags().GetString("poster")
	if err != nil {
		return err
	}
	poster, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("--poster must be a user id: %w", err)
	}

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, cfg.Debug, log)
	if err != nil {
		return err
	}

	jobs := services.NewJobService(repository.NewJobRepository(db), nil, nil, log)
	n, err := jobs.Seed(cmd.Context(), poster)
	if err != nil {
		return err
	}
	log.Info("mock job seeding complete", zap.Int("inserted", n))
	return nil
}
