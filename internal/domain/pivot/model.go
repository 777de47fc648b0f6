package pivot

import (
	"time"

	"github.com/google/uuid"
)

// Dimension identifies which kind of extracted mention a pivot is built over.
type Dimension string

const (
	DimensionSymptom   Dimension = "symptom"
	DimensionDiagnosis Dimension = "diagnosis"
	DimensionCategory  Dimension = "diagnostic-category"
	DimensionHRSN      Dimension = "hrsn"
)

var validDimensions = map[Dimension]bool{
	DimensionSymptom:   true,
	DimensionDiagnosis: true,
	DimensionCategory:  true,
	DimensionHRSN:      true,
}

// ParseDimension validates a dimension type from a URL segment.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !validDimensions[d] {
		return "", &ValidationError{Msg: "invalid dimension type: " + s}
	}
	return d, nil
}

// Mention maps to the extracted_mention table. Rows are produced by the
// external extraction pipeline and are append-only. DateOfService is nil
// when the source note carried no parsable service date; such rows are
// stored but never enter a pivot matrix.
type Mention struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	NoteID        uuid.UUID  `db:"note_id" json:"note_id"`
	DimensionType Dimension  `db:"dimension_type" json:"dimension_type"`
	Value         string     `db:"value" json:"value"`
	DateOfService *time.Time `db:"date_of_service" json:"date_of_service,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// Matrix is the derived dimension-value x date-of-service grid. It is never
// persisted; each request rebuilds it from fact rows.
type Matrix struct {
	Rows     []string
	Columns  []string
	Data     map[string]map[string]int
	MaxValue int
}

// Response is the wire contract consumed by every chart view. Cell values
// are integers; several consumers parse them unconditionally as numbers.
type Response struct {
	Rows     []string                  `json:"rows"`
	Columns  []string                  `json:"columns"`
	Data     map[string]map[string]int `json:"data"`
	MaxValue int                       `json:"maxValue"`
}

// Response shapes the matrix for JSON serialization. Empty matrices encode
// as empty arrays and an empty object, never null.
func (m Matrix) Response() *Response {
	r := &Response{
		Rows:     m.Rows,
		Columns:  m.Columns,
		Data:     m.Data,
		MaxValue: m.MaxValue,
	}
	if r.Rows == nil {
		r.Rows = []string{}
	}
	if r.Columns == nil {
		r.Columns = []string{}
	}
	if r.Data == nil {
		r.Data = map[string]map[string]int{}
	}
	return r
}

// RowTotals returns the sum of each row's cells.
func (m Matrix) RowTotals() map[string]int {
	totals := make(map[string]int, len(m.Rows))
	for _, row := range m.Rows {
		for _, col := range m.Columns {
			totals[row] += m.Data[row][col]
		}
	}
	return totals
}
