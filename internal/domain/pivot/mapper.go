package pivot

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RawRow is one extracted record as delivered by the extraction pipeline.
// Historical extraction runs used inconsistent column names, so lookups go
// through the alias table instead of assuming a fixed shape.
type RawRow map[string]interface{}

// fieldAliases maps each canonical field name to the legacy names still
// found in older extraction output, in fallback order. The canonical name
// always wins when both are present.
var fieldAliases = map[string][]string{
	"patient_id":           {"patientId", "patient"},
	"note_id":              {"noteId", "note"},
	"dimension_type":       {"dimensionType", "type"},
	"date_of_service":      {"dos_date", "service_date"},
	"symptom_segment":      {"symptom_text", "segment"},
	"diagnosis":            {"diagnosis_name", "dx"},
	"diagnostic_category":  {"diagnosis_category", "dx_category"},
	"hrsn_indicator":       {"hrsn_factor"},
	"financial_status":     {"financial_strain"},
	"housing_status":       {"housing_insecurity"},
	"transportation_needs": {"access_to_transportation"},
}

// dimensionValueFields names the canonical field that carries the mention
// value for each dimension type.
var dimensionValueFields = map[Dimension]string{
	DimensionSymptom:   "symptom_segment",
	DimensionDiagnosis: "diagnosis",
	DimensionCategory:  "diagnostic_category",
	DimensionHRSN:      "hrsn_indicator",
}

// MappedFieldValue resolves a canonical field against a raw row. The exact
// canonical key is preferred; otherwise the first present alias is used.
// The second return is false only when neither the canonical name nor any
// alias exists in the row — a present-but-falsy value (empty string, zero)
// still reports true, and callers must treat the two cases differently.
func MappedFieldValue(row RawRow, field string) (interface{}, bool) {
	if v, ok := row[field]; ok {
		return v, true
	}
	for _, alias := range fieldAliases[field] {
		if v, ok := row[alias]; ok {
			return v, true
		}
	}
	return nil, false
}

// mappedString resolves a field and coerces it to a trimmed string.
func mappedString(row RawRow, field string) (string, bool) {
	v, ok := MappedFieldValue(row, field)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// dateLayouts are the service-date formats seen across extraction runs.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "01/02/2006"}

// parseServiceDate parses a raw date-of-service value, truncated to the
// calendar date. A missing or unparsable date yields nil: the mention is
// still stored, but BuildMatrix will exclude it.
func parseServiceDate(v interface{}) *time.Time {
	switch d := v.(type) {
	case time.Time:
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		return &day
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
				return &day
			}
		}
	}
	return nil
}

// NormalizeRow maps one raw extraction row to a Mention, resolving legacy
// field names once per row. It returns a ValidationError when the row lacks
// a usable patient id, note id, dimension type, or value; a bad date is not
// an error (the mention is kept with a nil date).
func NormalizeRow(row RawRow) (*Mention, error) {
	pidStr, ok := mappedString(row, "patient_id")
	if !ok || pidStr == "" {
		return nil, &ValidationError{Msg: "row missing patient_id"}
	}
	pid, err := uuid.Parse(pidStr)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid patient_id: " + pidStr}
	}

	nidStr, ok := mappedString(row, "note_id")
	if !ok || nidStr == "" {
		return nil, &ValidationError{Msg: "row missing note_id"}
	}
	nid, err := uuid.Parse(nidStr)
	if err != nil {
		return nil, &ValidationError{Msg: "invalid note_id: " + nidStr}
	}

	dimStr, ok := mappedString(row, "dimension_type")
	if !ok {
		return nil, &ValidationError{Msg: "row missing dimension_type"}
	}
	dim, err := ParseDimension(dimStr)
	if err != nil {
		return nil, err
	}

	value, ok := mappedString(row, dimensionValueFields[dim])
	if !ok || value == "" {
		return nil, &ValidationError{Msg: "row missing value for dimension " + dimStr}
	}

	m := &Mention{
		PatientID:     pid,
		NoteID:        nid,
		DimensionType: dim,
		Value:         value,
	}
	if raw, ok := MappedFieldValue(row, "date_of_service"); ok {
		m.DateOfService = parseServiceDate(raw)
	}
	return m, nil
}
