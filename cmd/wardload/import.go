package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmedina/wardload/internal/db"
	"github.com/nmedina/wardload/internal/exitcode"
	"github.com/nmedina/wardload/internal/importer"
	"github.com/nmedina/wardload/internal/logging"
	"github.com/nmedina/wardload/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Validate a roster, then commit it to the patient store",
	RunE:  runImport,
}

func init() {
	addSourceFlags(importCmd)
	f := importCmd.Flags()
	f.BoolVar(&cfg.Force, "force", false, "Commit even when validation found errors")
	f.DurationVar(&cfg.RowDelay, "row-delay", 150*time.Millisecond, "Pause between committed rows")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file failed to load")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	st := store.NewRetrying(store.NewPG(pool), cfg.StoreAttempts, cfg.StoreRetryDelay, cfg.StoreTimeout)
	report, err := importer.Run(ctx, st, log, &cfg)
	if err != nil {
		exitPipelineError(log, err)
	}

	printValidation(report.Validation)
	if report.Import == nil {
		// Validation failed and --force was not set.
		os.Exit(exitcode.ValidationError)
	}
	printImport(report.Import)
	if !report.Import.Success {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
