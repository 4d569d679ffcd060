package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/nmedina/wardload/internal/exitcode"
	"github.com/nmedina/wardload/internal/importer"
	"github.com/nmedina/wardload/internal/model"
)

// printValidation writes the validation report to stdout so the operator can
// inspect every issue by source line before choosing to commit.
func printValidation(v *model.ValidationResult) {
	s := v.Summary
	fmt.Printf("Validation: %d rows (%d new, %d updates), %d errors, %d warnings\n",
		s.TotalRows, s.NewCount, s.UpdateCount, s.ErrorCount, s.WarningCount)
	for _, e := range v.Errors {
		if e.RawValue != "" {
			fmt.Printf("  ERROR line %d [%s]: %s (got %q)\n", e.Row, e.Field, e.Message, e.RawValue)
		} else {
			fmt.Printf("  ERROR line %d [%s]: %s\n", e.Row, e.Field, e.Message)
		}
	}
	for _, w := range v.Warnings {
		fmt.Printf("  warn  line %d [%s]: %s\n", w.Row, w.Field, w.Message)
	}
}

// printImport writes the commit outcome, listing failed rows with line
// number and DNI so the operator can correct the source and re-run.
func printImport(r *model.ImportResult) {
	fmt.Printf("Import: %d rows committed, %d failed\n", r.ImportedCount, r.FailedCount)
	for _, e := range r.Errors {
		fmt.Printf("  FAILED line %d (DNI %s): %s\n", e.Row, e.NationalID, e.Message)
	}
}

// exitPipelineError logs a fatal pipeline failure and exits with a code
// matching the phase that failed.
func exitPipelineError(log zerolog.Logger, err error) {
	var pe *importer.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("pipeline failed")
		switch pe.Phase {
		case "read":
			os.Exit(exitcode.SourceError)
		case "validate":
			os.Exit(exitcode.ValidationError)
		default:
			os.Exit(exitcode.ImportError)
		}
	}
	log.Error().Err(err).Msg("pipeline failed")
	os.Exit(exitcode.ImportError)
}
