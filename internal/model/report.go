package model

import (
	"time"

	"github.com/google/uuid"
)

// ValidationIssue is one row-scoped problem found during validation.
// Row is the physical line number in the source file.
type ValidationIssue struct {
	Row      int
	Field    string
	Message  string
	RawValue string
}

// ParsedRow is the reconciliation outcome for one raw row. Exactly one
// ParsedRow exists per RawRow, whether or not the row carried issues.
type ParsedRow struct {
	Row       int
	IsUpdate  bool
	MatchedID uuid.UUID // uuid.Nil when no existing record matched
	Payload   ImportPayload
	// Snapshot is the matched record as read at validation time. The
	// committer merges operator-owned fields from it; when absent it
	// re-fetches by MatchedID.
	Snapshot *PatientRecord
}

// ValidationSummary holds the aggregate counts of one validation pass.
// NewCount+UpdateCount always equals TotalRows: classification is computed
// independently of whether rows carried issues.
type ValidationSummary struct {
	TotalRows    int
	NewCount     int
	UpdateCount  int
	ErrorCount   int
	WarningCount int
}

// ValidationResult is the full report of one validation pass.
type ValidationResult struct {
	Valid      bool // len(Errors) == 0; warnings never affect it
	Summary    ValidationSummary
	Errors     []ValidationIssue
	Warnings   []ValidationIssue
	ParsedRows []ParsedRow
}

// RowError records one failed commit row with enough detail for the
// operator to correct the source and re-run.
type RowError struct {
	Row        int
	NationalID string
	Message    string
}

// ImportResult is the outcome of one commit pass.
type ImportResult struct {
	Success       bool // FailedCount == 0
	ImportedCount int
	FailedCount   int
	Errors        []RowError
}

// RunSummary captures metrics from a full validate+commit run.
type RunSummary struct {
	Source           string
	SourceSHA256     string
	BatchID          string
	RowsRead         int
	NewCount         int
	UpdateCount      int
	ErrorCount       int
	WarningCount     int
	ImportedCount    int
	FailedCount      int
	DurationRead     time.Duration
	DurationValidate time.Duration
	DurationCommit   time.Duration
	DurationTotal    time.Duration
}
