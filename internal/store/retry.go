package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nmedina/wardload/internal/model"
)

// Retrying wraps a PatientStore so every call is timeout-bounded and retried
// with exponential backoff. Interactive imports issue one store call at a
// time, so a transient network blip should not fail a whole batch.
type Retrying struct {
	inner    PatientStore
	attempts int
	base     time.Duration
	timeout  time.Duration
	sleep    func(time.Duration)
}

// NewRetrying wraps inner with up to attempts tries per call, base backoff
// delay doubling per attempt, and a per-attempt timeout.
func NewRetrying(inner PatientStore, attempts int, base, timeout time.Duration) *Retrying {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrying{
		inner:    inner,
		attempts: attempts,
		base:     base,
		timeout:  timeout,
		sleep:    time.Sleep,
	}
}

func (r *Retrying) do(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, r.timeout)
		lastErr = fn(callCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		// Give up immediately when the parent context is done.
		if ctx.Err() != nil {
			return lastErr
		}
		if attempt < r.attempts-1 {
			r.sleep(r.base * time.Duration(1<<uint(attempt)))
		}
	}
	return lastErr
}

func (r *Retrying) FindByNaturalKey(ctx context.Context, nationalID, site string) (*model.PatientRecord, error) {
	var rec *model.PatientRecord
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		rec, err = r.inner.FindByNaturalKey(ctx, nationalID, site)
		return err
	})
	return rec, err
}

func (r *Retrying) FetchByID(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error) {
	var rec *model.PatientRecord
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		rec, err = r.inner.FetchByID(ctx, id)
		return err
	})
	return rec, err
}

func (r *Retrying) Insert(ctx context.Context, doc model.PatientDocument) (*model.PatientRecord, error) {
	var rec *model.PatientRecord
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		rec, err = r.inner.Insert(ctx, doc)
		return err
	})
	return rec, err
}

func (r *Retrying) UpdateByID(ctx context.Context, id uuid.UUID, doc model.PatientDocument) (*model.PatientRecord, error) {
	var rec *model.PatientRecord
	err := r.do(ctx, func(ctx context.Context) error {
		var err error
		rec, err = r.inner.UpdateByID(ctx, id, doc)
		return err
	})
	return rec, err
}

var _ PatientStore = (*Retrying)(nil)
