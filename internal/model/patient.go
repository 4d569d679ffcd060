package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientDocument is the writable portion of a patient record: the
// CSV-sourced fields plus the operator-owned fields that only ward staff
// edit. The import pipeline overwrites the former and must never clobber
// the latter on update.
type PatientDocument struct {
	ImportPayload

	PendingItems       string
	ThumbnailRefs      []string
	ImageRefs          []string
	ReportRefs         []string
	AssignedResidentID *string
	DisplayOrder       *int32
}

// NewPatientDocument builds an insert document: the mapped payload with
// every operator-owned field at its empty default.
func NewPatientDocument(p ImportPayload) PatientDocument {
	return PatientDocument{
		ImportPayload: p,
		ThumbnailRefs: []string{},
		ImageRefs:     []string{},
		ReportRefs:    []string{},
	}
}

// MergedPatientDocument builds an update document: CSV-sourced fields from
// the freshly mapped payload, operator-owned fields copied unchanged from
// the snapshot taken at validation time.
func MergedPatientDocument(p ImportPayload, snapshot *PatientRecord) PatientDocument {
	doc := snapshot.PatientDocument
	doc.ImportPayload = p
	return doc
}

// PatientRecord is a persisted patient row.
type PatientRecord struct {
	ID uuid.UUID
	PatientDocument
	CreatedAt time.Time
	UpdatedAt time.Time
}
