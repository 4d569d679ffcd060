package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/nmedina/wardload/internal/model"
)

// PatientStore is the persistence capability the import pipeline consumes.
// Lookups return (nil, nil) when no record matches; an error always means
// the store itself failed.
type PatientStore interface {
	// FindByNaturalKey looks a patient up by (nationalID, site).
	FindByNaturalKey(ctx context.Context, nationalID, site string) (*model.PatientRecord, error)
	// FetchByID retrieves a patient by primary key.
	FetchByID(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error)
	// Insert creates a new patient record from the document.
	Insert(ctx context.Context, doc model.PatientDocument) (*model.PatientRecord, error)
	// UpdateByID replaces the writable fields of an existing record.
	UpdateByID(ctx context.Context, id uuid.UUID, doc model.PatientDocument) (*model.PatientRecord, error)
}
