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

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Read and validate a roster without writing anything",
	RunE:  runValidate,
}

func init() {
	addSourceFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}

// addSourceFlags registers the flags shared by validate and import.
func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to roster CSV file")
	f.StringVar(&cfg.SourceURL, "url", "", "Roster spreadsheet share or export URL")
	f.StringVar(&cfg.AdmissionDate, "date", "", "Admission date YYYY-MM-DD (default: today)")
	f.StringVar(&cfg.Site, "site", "", "Hospital site tag (default: central)")
	f.DurationVar(&cfg.FetchTimeout, "fetch-timeout", 30*time.Second, "HTTP timeout for remote rosters")
	f.IntVar(&cfg.StoreAttempts, "store-attempts", 3, "Attempts per store operation")
	f.DurationVar(&cfg.StoreRetryDelay, "store-retry-delay", 200*time.Millisecond, "Base backoff delay between store attempts")
	f.DurationVar(&cfg.StoreTimeout, "store-timeout", 10*time.Second, "Per-attempt store timeout")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file failed to load")
		os.Exit(exitcode.UsageError)
	}
	cfg.DryRun = true
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
	if !report.Validation.Valid {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}
