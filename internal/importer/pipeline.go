package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nmedina/wardload/internal/config"
	"github.com/nmedina/wardload/internal/model"
	"github.com/nmedina/wardload/internal/normalize"
	"github.com/nmedina/wardload/internal/source"
	"github.com/nmedina/wardload/internal/store"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Report is the full outcome of one pipeline run.
type Report struct {
	Meta       source.Meta
	BatchID    uuid.UUID
	Validation *model.ValidationResult
	// Import is nil when commit did not run: dry-run, or validation failed
	// without --force.
	Import  *model.ImportResult
	Summary model.RunSummary
}

// Run executes the import pipeline: read → validate → commit.
//
// Commit only runs when validation passed or cfg.Force is set; the force
// path exists for deliberate operator override and still skips nothing —
// rows carrying errors are attempted as-is. Fatal failures (unreadable
// source, zero rows, store lookup failure) return a phase-tagged
// PipelineError with no partial report.
func Run(ctx context.Context, st store.PatientStore, log zerolog.Logger, cfg *config.Config) (*Report, error) {
	totalStart := time.Now()
	batchID := uuid.New()

	// Phase 1: read
	readStart := time.Now()
	var (
		rr  *source.ReadResult
		err error
	)
	if cfg.SourceURL != "" {
		client := &http.Client{Timeout: cfg.FetchTimeout}
		rr, err = source.FetchURL(ctx, client, cfg.SourceURL)
	} else {
		rr, err = source.ReadFile(cfg.FilePath)
	}
	if err != nil {
		return nil, &PipelineError{Phase: "read", Err: err}
	}
	for _, pe := range rr.ParseErrors {
		log.Warn().Int("line", pe.Line).Str("problem", pe.Message).Msg("unparseable line skipped")
	}
	if len(rr.Rows) == 0 {
		return nil, &PipelineError{Phase: "read", Err: errors.New("no data rows in source")}
	}
	readDur := time.Since(readStart)

	log.Info().
		Str("source", rr.Meta.Source).
		Str("sha256", rr.Meta.SHA256).
		Str("batch_id", batchID.String()).
		Int("rows", len(rr.Rows)).
		Dur("duration", readDur).
		Msg("source read")

	// Phase 2: validate
	validateStart := time.Now()
	date := normalize.AdmissionDate(cfg.AdmissionDate, time.Now().Format("2006-01-02"))
	v := &Validator{Store: st, Log: log}
	vres, err := v.Validate(ctx, rr.Rows, date, cfg.Site)
	if err != nil {
		return nil, &PipelineError{Phase: "validate", Err: err}
	}
	validateDur := time.Since(validateStart)

	report := &Report{
		Meta:       rr.Meta,
		BatchID:    batchID,
		Validation: vres,
		Summary: model.RunSummary{
			Source:           rr.Meta.Source,
			SourceSHA256:     rr.Meta.SHA256,
			BatchID:          batchID.String(),
			RowsRead:         len(rr.Rows),
			NewCount:         vres.Summary.NewCount,
			UpdateCount:      vres.Summary.UpdateCount,
			ErrorCount:       vres.Summary.ErrorCount,
			WarningCount:     vres.Summary.WarningCount,
			DurationRead:     readDur,
			DurationValidate: validateDur,
		},
	}

	if cfg.DryRun {
		report.Summary.DurationTotal = time.Since(totalStart)
		return report, nil
	}

	if !vres.Valid && !cfg.Force {
		log.Warn().Int("errors", vres.Summary.ErrorCount).Msg("validation failed, commit skipped (use --force to override)")
		report.Summary.DurationTotal = time.Since(totalStart)
		return report, nil
	}
	if !vres.Valid {
		log.Warn().Int("errors", vres.Summary.ErrorCount).Msg("committing despite validation errors (--force)")
	}

	// Phase 3: commit
	commitStart := time.Now()
	committer := NewCommitter(st, log, cfg.RowDelay)
	report.Import = committer.Commit(ctx, vres.ParsedRows)
	report.Summary.ImportedCount = report.Import.ImportedCount
	report.Summary.FailedCount = report.Import.FailedCount
	report.Summary.DurationCommit = time.Since(commitStart)
	report.Summary.DurationTotal = time.Since(totalStart)

	log.Info().
		Int("imported", report.Summary.ImportedCount).
		Int("failed", report.Summary.FailedCount).
		Str("total_duration", report.Summary.DurationTotal.String()).
		Msg("import pipeline complete")

	return report, nil
}
