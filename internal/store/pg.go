package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmedina/wardload/internal/model"
	embedsql "github.com/nmedina/wardload/internal/sql"
)

// PG is the pgx-backed PatientStore.
type PG struct {
	pool *pgxpool.Pool
}

// NewPG wraps a pgx pool as a PatientStore.
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{pool: pool}
}

func (s *PG) FindByNaturalKey(ctx context.Context, nationalID, site string) (*model.PatientRecord, error) {
	rec, err := scanPatient(s.pool.QueryRow(ctx, embedsql.FindPatient, nationalID, site))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find patient by natural key: %w", err)
	}
	return rec, nil
}

func (s *PG) FetchByID(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error) {
	rec, err := scanPatient(s.pool.QueryRow(ctx, embedsql.FetchPatient, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch patient: %w", err)
	}
	return rec, nil
}

func (s *PG) Insert(ctx context.Context, doc model.PatientDocument) (*model.PatientRecord, error) {
	args := append([]any{uuid.New()}, docArgs(doc)...)
	rec, err := scanPatient(s.pool.QueryRow(ctx, embedsql.InsertPatient, args...))
	if err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return rec, nil
}

func (s *PG) UpdateByID(ctx context.Context, id uuid.UUID, doc model.PatientDocument) (*model.PatientRecord, error) {
	args := append([]any{id}, docArgs(doc)...)
	rec, err := scanPatient(s.pool.QueryRow(ctx, embedsql.UpdatePatient, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("update patient: no record with id %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return rec, nil
}

// docArgs returns the writable columns in query parameter order ($2..$20).
func docArgs(doc model.PatientDocument) []any {
	return []any{
		doc.Bed,
		doc.NationalID,
		doc.FullName,
		doc.Age,
		doc.History,
		doc.ChiefComplaint,
		doc.PhysicalExam,
		doc.Studies,
		doc.Severity,
		doc.Diagnosis,
		doc.Plan,
		doc.AdmissionDate,
		doc.Site,
		doc.PendingItems,
		doc.ThumbnailRefs,
		doc.ImageRefs,
		doc.ReportRefs,
		doc.AssignedResidentID,
		doc.DisplayOrder,
	}
}

func scanPatient(row pgx.Row) (*model.PatientRecord, error) {
	var rec model.PatientRecord
	err := row.Scan(
		&rec.ID,
		&rec.Bed,
		&rec.NationalID,
		&rec.FullName,
		&rec.Age,
		&rec.History,
		&rec.ChiefComplaint,
		&rec.PhysicalExam,
		&rec.Studies,
		&rec.Severity,
		&rec.Diagnosis,
		&rec.Plan,
		&rec.AdmissionDate,
		&rec.Site,
		&rec.PendingItems,
		&rec.ThumbnailRefs,
		&rec.ImageRefs,
		&rec.ReportRefs,
		&rec.AssignedResidentID,
		&rec.DisplayOrder,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Compile-time check.
var _ PatientStore = (*PG)(nil)
