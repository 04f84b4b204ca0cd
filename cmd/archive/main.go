// Command archive manages the accepted-project archive and runs offline
// similarity checks against the stored corpus.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/config"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

var rootCmd = &cobra.Command{
	Use:           "archive",
	Short:         "Manage the capstone project archive",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml or ./config/config.yaml)")
}

// runtime holds what every subcommand needs.
type runtime struct {
	cfg    *config.Config
	log    *zap.Logger
	repo   *repositories.Repository
	closer func()
}

func setup(cmd *cobra.Command) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	db, err := config.InitDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:  cfg,
		log:  logger,
		repo: repositories.NewRepository(db),
		closer: func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
			logger.Sync()
		},
	}, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
