package importer

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nmedina/wardload/internal/model"
)

func testCommitter(f *fakeStore) *Committer {
	c := NewCommitter(f, zerolog.Nop(), 0)
	c.sleep = func(time.Duration) {}
	return c
}

func payload(bed, dni, name string) model.ImportPayload {
	return model.ImportPayload{
		Bed: bed, NationalID: dni, FullName: name,
		AdmissionDate: "2026-08-28", Site: "central",
	}
}

func TestCommit_InsertDefaultsOperatorFields(t *testing.T) {
	f := newFakeStore()
	rows := []model.ParsedRow{
		{Row: 5, Payload: payload("1", "100", "Juan Perez")},
	}

	res := testCommitter(f).Commit(context.Background(), rows)

	if !res.Success || res.ImportedCount != 1 {
		t.Fatalf("result: %+v", res)
	}
	if len(f.inserts) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(f.inserts))
	}
	doc := f.inserts[0]
	if doc.PendingItems != "" || doc.AssignedResidentID != nil || doc.DisplayOrder != nil {
		t.Errorf("operator fields must default empty: %+v", doc)
	}
	if len(doc.ThumbnailRefs) != 0 || len(doc.ImageRefs) != 0 || len(doc.ReportRefs) != 0 {
		t.Errorf("ref arrays must default empty: %+v", doc)
	}
	if doc.FullName != "Juan Perez" {
		t.Errorf("payload fields must come through: %+v", doc)
	}
}

func TestCommit_UpdateMergesSnapshot(t *testing.T) {
	f := newFakeStore()
	resident := "res-42"
	order := int32(3)
	existing := f.seed(model.PatientDocument{
		ImportPayload: model.ImportPayload{
			NationalID: "87654321", Site: "central",
			Diagnosis: "old dx", Plan: "old plan", Bed: "9",
		},
		PendingItems:       "pedir RMN",
		ThumbnailRefs:      []string{"thumb-1"},
		ImageRefs:          []string{"img-1", "img-2"},
		ReportRefs:         []string{"rep-1"},
		AssignedResidentID: &resident,
		DisplayOrder:       &order,
	})

	p := payload("2", "87654321", "Ana Gómez")
	p.Diagnosis = "ACV isquémico"
	p.Plan = "TAC control"
	snap := *existing
	rows := []model.ParsedRow{
		{Row: 5, IsUpdate: true, MatchedID: existing.ID, Payload: p, Snapshot: &snap},
	}

	res := testCommitter(f).Commit(context.Background(), rows)
	if !res.Success {
		t.Fatalf("result: %+v", res)
	}

	doc, ok := f.updates[existing.ID]
	if !ok {
		t.Fatal("expected an update against the matched id")
	}

	// CSV-sourced fields come from the fresh payload.
	if doc.Diagnosis != "ACV isquémico" || doc.Plan != "TAC control" || doc.Bed != "2" {
		t.Errorf("csv fields must be overwritten: %+v", doc.ImportPayload)
	}
	// Operator-owned fields come from the snapshot, unchanged.
	if doc.PendingItems != "pedir RMN" ||
		!reflect.DeepEqual(doc.ThumbnailRefs, []string{"thumb-1"}) ||
		!reflect.DeepEqual(doc.ImageRefs, []string{"img-1", "img-2"}) ||
		!reflect.DeepEqual(doc.ReportRefs, []string{"rep-1"}) ||
		doc.AssignedResidentID == nil || *doc.AssignedResidentID != "res-42" ||
		doc.DisplayOrder == nil || *doc.DisplayOrder != 3 {
		t.Errorf("operator fields must be preserved: %+v", doc)
	}
}

func TestCommit_UpdateRefetchesWhenSnapshotMissing(t *testing.T) {
	f := newFakeStore()
	existing := f.seed(model.PatientDocument{
		ImportPayload: model.ImportPayload{NationalID: "100", Site: "central"},
		PendingItems:  "control TA",
	})

	rows := []model.ParsedRow{
		{Row: 5, IsUpdate: true, MatchedID: existing.ID, Payload: payload("1", "100", "X")},
	}

	res := testCommitter(f).Commit(context.Background(), rows)
	if !res.Success {
		t.Fatalf("result: %+v", res)
	}
	if doc := f.updates[existing.ID]; doc.PendingItems != "control TA" {
		t.Errorf("re-fetched snapshot must drive the merge: %+v", doc)
	}
}

func TestCommit_RefetchFailureIsRowScoped(t *testing.T) {
	f := newFakeStore()
	existing := f.seed(model.PatientDocument{
		ImportPayload: model.ImportPayload{NationalID: "100", Site: "central"},
	})
	f.fetchErr = errors.New("timeout")

	rows := []model.ParsedRow{
		{Row: 5, IsUpdate: true, MatchedID: existing.ID, Payload: payload("1", "100", "X")},
		{Row: 6, Payload: payload("2", "200", "Y")},
	}

	res := testCommitter(f).Commit(context.Background(), rows)

	if res.Success || res.FailedCount != 1 || res.ImportedCount != 1 {
		t.Fatalf("refetch failure must not stop the batch: %+v", res)
	}
	if res.Errors[0].Row != 5 {
		t.Errorf("error row: got %d, want 5", res.Errors[0].Row)
	}
}

func TestCommit_UpdateWithoutMatchedIDFails(t *testing.T) {
	f := newFakeStore()
	rows := []model.ParsedRow{
		{Row: 5, IsUpdate: true, MatchedID: uuid.Nil, Payload: payload("1", "100", "X")},
	}

	res := testCommitter(f).Commit(context.Background(), rows)

	if res.Success || res.FailedCount != 1 {
		t.Fatalf("result: %+v", res)
	}
	// It must not fall through to an insert and duplicate the patient.
	if len(f.inserts) != 0 {
		t.Error("update row without id must never insert")
	}
	if res.Errors[0].NationalID != "100" {
		t.Errorf("row error must carry the DNI: %+v", res.Errors[0])
	}
}

func TestCommit_PartialFailureIsolation(t *testing.T) {
	f := newFakeStore()
	f.insertErr = func(doc model.PatientDocument) error {
		if doc.NationalID == "200" {
			return errors.New("unique constraint violation")
		}
		return nil
	}

	rows := []model.ParsedRow{
		{Row: 5, Payload: payload("1", "100", "A")},
		{Row: 6, Payload: payload("2", "200", "B")},
		{Row: 7, Payload: payload("3", "300", "C")},
	}

	res := testCommitter(f).Commit(context.Background(), rows)

	if res.Success {
		t.Error("expected partial failure")
	}
	if res.ImportedCount != 2 || res.FailedCount != 1 {
		t.Errorf("counts: %+v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Row != 6 || res.Errors[0].NationalID != "200" {
		t.Errorf("errors: %+v", res.Errors)
	}
	// Rows after the failure were still attempted, in order.
	if len(f.inserts) != 2 || f.inserts[0].NationalID != "100" || f.inserts[1].NationalID != "300" {
		t.Errorf("inserts: %+v", f.inserts)
	}
}

func TestCommit_ThrottlesBetweenRows(t *testing.T) {
	f := newFakeStore()
	c := NewCommitter(f, zerolog.Nop(), 50*time.Millisecond)
	var sleeps []time.Duration
	c.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	rows := []model.ParsedRow{
		{Row: 5, Payload: payload("1", "100", "A")},
		{Row: 6, Payload: payload("2", "200", "B")},
		{Row: 7, Payload: payload("3", "300", "C")},
	}
	c.Commit(context.Background(), rows)

	// One pause between each pair of consecutive rows.
	if len(sleeps) != 2 {
		t.Fatalf("expected 2 pauses, got %d", len(sleeps))
	}
	for _, d := range sleeps {
		if d != 50*time.Millisecond {
			t.Errorf("pause duration: got %v", d)
		}
	}
}

func TestCommit_EmptyBatch(t *testing.T) {
	f := newFakeStore()
	res := testCommitter(f).Commit(context.Background(), nil)
	if !res.Success || res.ImportedCount != 0 || res.FailedCount != 0 {
		t.Errorf("empty batch: %+v", res)
	}
}
