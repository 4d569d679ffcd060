package model

// Roster column headers as they appear on line four of the export.
// Additional columns are ignored; missing columns read as empty.
const (
	ColBed          = "CAMA"
	ColNationalID   = "DNI"
	ColFullName     = "NOMBRE"
	ColAge          = "EDAD"
	ColHistory      = "ANT"
	ColComplaint    = "MC"
	ColPhysicalExam = "EF/NIHSS/ABCD2"
	ColStudies      = "EC"
	ColSeverity     = "SEV"
	ColDiagnosis    = "DX"
	ColPlan         = "PLAN"
)

// RawRow is one data row of the roster export, keyed by column header.
// Line is the row's physical line number in the source file so issues can be
// correlated with what the operator sees in the spreadsheet.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// Field returns the cell under the given header, or "" when the column is
// absent. Values are already trimmed by the source reader.
func (r RawRow) Field(name string) string {
	return r.Fields[name]
}

// ImportPayload is the fixed domain shape projected from one RawRow.
// Every field is a plain string and defaults to "" when the source column is
// missing, so downstream comparisons never deal with absent values.
type ImportPayload struct {
	Bed            string
	NationalID     string
	FullName       string
	Age            string
	History        string
	ChiefComplaint string
	PhysicalExam   string
	Studies        string
	Severity       string
	Diagnosis      string
	Plan           string
	AdmissionDate  string
	Site           string
}
