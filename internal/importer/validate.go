package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nmedina/wardload/internal/model"
	"github.com/nmedina/wardload/internal/normalize"
	"github.com/nmedina/wardload/internal/store"
)

// Validator checks mapped rows against domain rules and reconciles each one
// against the patient store.
type Validator struct {
	Store store.PatientStore
	Log   zerolog.Logger
}

// Validate maps, checks, and classifies every row in source order.
//
// Row-scoped problems (missing required fields, unknown severity) are
// accumulated into the result and never stop processing. A store lookup
// failure is fatal to the whole call: duplicate detection cannot be trusted
// after it, so no partial result is returned.
//
// Every row yields exactly one ParsedRow, errors or not — validation
// annotates the reconciliation set, it does not filter it. Callers should
// gate committing on Valid; ParsedRows of an invalid result are still
// committable as a deliberate operator-override affordance.
func (v *Validator) Validate(ctx context.Context, rows []model.RawRow, admissionDate, site string) (*model.ValidationResult, error) {
	res := &model.ValidationResult{
		ParsedRows: make([]model.ParsedRow, 0, len(rows)),
	}

	for _, raw := range rows {
		payload := normalize.MapRow(raw, admissionDate, site)

		for _, req := range []struct {
			field, value string
		}{
			{model.ColBed, payload.Bed},
			{model.ColNationalID, payload.NationalID},
			{model.ColFullName, payload.FullName},
		} {
			if req.value == "" {
				res.Errors = append(res.Errors, model.ValidationIssue{
					Row:     raw.Line,
					Field:   req.field,
					Message: "required field is empty",
				})
			}
		}

		// Age is often unknown at triage; flag it but never block on it.
		if payload.Age == "" {
			res.Warnings = append(res.Warnings, model.ValidationIssue{
				Row:     raw.Line,
				Field:   model.ColAge,
				Message: "age is empty",
			})
		}

		// Severity is optional metadata; only a non-empty value outside the
		// accepted grades is an error.
		if payload.Severity != "" && !model.ValidSeverity(payload.Severity) {
			res.Errors = append(res.Errors, model.ValidationIssue{
				Row:      raw.Line,
				Field:    model.ColSeverity,
				Message:  fmt.Sprintf("severity must be one of %s", strings.Join(model.Severities, ", ")),
				RawValue: raw.Field(model.ColSeverity),
			})
		}

		parsed := model.ParsedRow{Row: raw.Line, Payload: payload}

		if payload.NationalID != "" {
			rec, err := v.Store.FindByNaturalKey(ctx, payload.NationalID, site)
			if err != nil {
				return nil, fmt.Errorf("lookup patient dni=%s site=%s: %w", payload.NationalID, site, err)
			}
			if rec != nil {
				parsed.IsUpdate = true
				parsed.MatchedID = rec.ID
				parsed.Snapshot = rec
			}
		}

		if parsed.IsUpdate {
			res.Summary.UpdateCount++
		} else {
			res.Summary.NewCount++
		}
		res.ParsedRows = append(res.ParsedRows, parsed)
	}

	res.Summary.TotalRows = len(rows)
	res.Summary.ErrorCount = len(res.Errors)
	res.Summary.WarningCount = len(res.Warnings)
	res.Valid = len(res.Errors) == 0

	v.Log.Info().
		Int("rows", res.Summary.TotalRows).
		Int("new", res.Summary.NewCount).
		Int("updates", res.Summary.UpdateCount).
		Int("errors", res.Summary.ErrorCount).
		Int("warnings", res.Summary.WarningCount).
		Bool("valid", res.Valid).
		Msg("validation complete")

	return res, nil
}
