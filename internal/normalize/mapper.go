package normalize

import (
	"strings"

	"github.com/nmedina/wardload/internal/model"
)

// MapRow projects one raw roster row into the fixed import payload.
// Lookup is by exact header name; absent columns yield "". The severity
// grade is uppercased here but not validated — membership in the accepted
// set is the validator's job. Pure: no I/O, deterministic.
func MapRow(row model.RawRow, admissionDate, site string) model.ImportPayload {
	return model.ImportPayload{
		Bed:            row.Field(model.ColBed),
		NationalID:     row.Field(model.ColNationalID),
		FullName:       row.Field(model.ColFullName),
		Age:            row.Field(model.ColAge),
		History:        row.Field(model.ColHistory),
		ChiefComplaint: row.Field(model.ColComplaint),
		PhysicalExam:   row.Field(model.ColPhysicalExam),
		Studies:        row.Field(model.ColStudies),
		Severity:       strings.ToUpper(row.Field(model.ColSeverity)),
		Diagnosis:      row.Field(model.ColDiagnosis),
		Plan:           row.Field(model.ColPlan),
		AdmissionDate:  admissionDate,
		Site:           site,
	}
}
