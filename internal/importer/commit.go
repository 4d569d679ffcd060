package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nmedina/wardload/internal/model"
	"github.com/nmedina/wardload/internal/store"
)

// Committer writes parsed rows to the patient store, one at a time, in
// source order. Strict sequencing is a functional requirement: row numbers
// in the error report must line up with the source file, and at most one
// store write may be outstanding during an operator-triggered batch.
type Committer struct {
	Store store.PatientStore
	Log   zerolog.Logger
	Delay time.Duration

	sleep func(time.Duration)
}

// NewCommitter returns a Committer with the given inter-row delay.
func NewCommitter(s store.PatientStore, log zerolog.Logger, delay time.Duration) *Committer {
	return &Committer{Store: s, Log: log, Delay: delay, sleep: time.Sleep}
}

// Commit executes insert/update for every row. A failed row is recorded
// with its line number and DNI and the loop moves on — there is no rollback
// of rows already written. The fixed delay runs between rows whether the
// previous row succeeded or failed, bounding the request rate against the
// store.
func (c *Committer) Commit(ctx context.Context, rows []model.ParsedRow) *model.ImportResult {
	res := &model.ImportResult{}

	for i, row := range rows {
		if err := c.commitRow(ctx, row); err != nil {
			res.FailedCount++
			res.Errors = append(res.Errors, model.RowError{
				Row:        row.Row,
				NationalID: row.Payload.NationalID,
				Message:    err.Error(),
			})
			c.Log.Warn().Err(err).
				Int("row", row.Row).
				Str("dni", row.Payload.NationalID).
				Msg("row commit failed")
		} else {
			res.ImportedCount++
		}

		if c.Delay > 0 && i < len(rows)-1 {
			c.sleep(c.Delay)
		}
	}

	res.Success = res.FailedCount == 0

	c.Log.Info().
		Int("imported", res.ImportedCount).
		Int("failed", res.FailedCount).
		Bool("success", res.Success).
		Msg("commit complete")

	return res
}

func (c *Committer) commitRow(ctx context.Context, row model.ParsedRow) error {
	if !row.IsUpdate {
		if _, err := c.Store.Insert(ctx, model.NewPatientDocument(row.Payload)); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		return nil
	}

	// An update row without an identifier must fail here, not fall through
	// to an insert that would duplicate a patient already in the store.
	if row.MatchedID == uuid.Nil {
		return errors.New("update row has no matched record id")
	}

	snapshot := row.Snapshot
	if snapshot == nil {
		rec, err := c.Store.FetchByID(ctx, row.MatchedID)
		if err != nil {
			return fmt.Errorf("refetch snapshot: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("matched record %s no longer exists", row.MatchedID)
		}
		snapshot = rec
	}

	if _, err := c.Store.UpdateByID(ctx, row.MatchedID, model.MergedPatientDocument(row.Payload, snapshot)); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}
