package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmedina/wardload/internal/model"
	"github.com/nmedina/wardload/internal/store"
)

// fakeStore is an in-memory PatientStore for unit tests. Error hooks let a
// test fail specific operations or specific rows.
type fakeStore struct {
	records map[uuid.UUID]*model.PatientRecord

	findErr   error
	fetchErr  error
	insertErr func(doc model.PatientDocument) error
	updateErr func(id uuid.UUID) error

	findCalls   int
	inserts     []model.PatientDocument
	updates     map[uuid.UUID]model.PatientDocument
	updateOrder []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: make(map[uuid.UUID]*model.PatientRecord),
		updates: make(map[uuid.UUID]model.PatientDocument),
	}
}

// seed adds an existing record and returns it.
func (f *fakeStore) seed(doc model.PatientDocument) *model.PatientRecord {
	rec := &model.PatientRecord{ID: uuid.New(), PatientDocument: doc}
	f.records[rec.ID] = rec
	return rec
}

func (f *fakeStore) FindByNaturalKey(ctx context.Context, nationalID, site string) (*model.PatientRecord, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, rec := range f.records {
		if rec.NationalID == nationalID && rec.Site == site {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FetchByID(ctx context.Context, id uuid.UUID) (*model.PatientRecord, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) Insert(ctx context.Context, doc model.PatientDocument) (*model.PatientRecord, error) {
	if f.insertErr != nil {
		if err := f.insertErr(doc); err != nil {
			return nil, err
		}
	}
	f.inserts = append(f.inserts, doc)
	rec := &model.PatientRecord{ID: uuid.New(), PatientDocument: doc}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeStore) UpdateByID(ctx context.Context, id uuid.UUID, doc model.PatientDocument) (*model.PatientRecord, error) {
	if f.updateErr != nil {
		if err := f.updateErr(id); err != nil {
			return nil, err
		}
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("no record with id %s", id)
	}
	f.updates[id] = doc
	f.updateOrder = append(f.updateOrder, id)
	rec.PatientDocument = doc
	return rec, nil
}

var _ store.PatientStore = (*fakeStore)(nil)
