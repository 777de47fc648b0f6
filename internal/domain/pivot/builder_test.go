package pivot

import (
	"reflect"
	"testing"
	"time"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func mention(value string, date *time.Time) Mention {
	return Mention{DimensionType: DimensionSymptom, Value: value, DateOfService: date}
}

func TestBuildMatrix_Scenario(t *testing.T) {
	mentions := []Mention{
		mention("Anxiety", day("2024-01-01")),
		mention("Anxiety", day("2024-01-01")),
		mention("Insomnia", day("2024-01-02")),
	}
	m := BuildMatrix(mentions)

	if !reflect.DeepEqual(m.Rows, []string{"Anxiety", "Insomnia"}) {
		t.Errorf("rows = %v", m.Rows)
	}
	if !reflect.DeepEqual(m.Columns, []string{"2024-01-01", "2024-01-02"}) {
		t.Errorf("columns = %v", m.Columns)
	}
	want := map[string]map[string]int{
		"Anxiety":  {"2024-01-01": 2, "2024-01-02": 0},
		"Insomnia": {"2024-01-01": 0, "2024-01-02": 1},
	}
	if !reflect.DeepEqual(m.Data, want) {
		t.Errorf("data = %v", m.Data)
	}
	if m.MaxValue != 2 {
		t.Errorf("maxValue = %d, want 2", m.MaxValue)
	}
}

func TestBuildMatrix_Empty(t *testing.T) {
	m := BuildMatrix(nil)
	if len(m.Rows) != 0 || len(m.Columns) != 0 || len(m.Data) != 0 {
		t.Errorf("expected empty matrix, got %+v", m)
	}
	if m.MaxValue != 1 {
		t.Errorf("maxValue = %d, want 1 for empty matrix", m.MaxValue)
	}
}

func TestBuildMatrix_DuplicatesIncrementOneCell(t *testing.T) {
	// A symptom mentioned twice in one session counts as 2, not as a new row.
	m := BuildMatrix([]Mention{
		mention("Anxiety", day("2024-03-05")),
		mention("Anxiety", day("2024-03-05")),
	})
	if len(m.Rows) != 1 {
		t.Fatalf("rows = %v, want a single row", m.Rows)
	}
	if m.Data["Anxiety"]["2024-03-05"] != 2 {
		t.Errorf("cell = %d, want 2", m.Data["Anxiety"]["2024-03-05"])
	}
}

func TestBuildMatrix_NilDateExcluded(t *testing.T) {
	m := BuildMatrix([]Mention{
		mention("Anxiety", day("2024-01-01")),
		mention("Panic", nil),
	})
	if len(m.Rows) != 1 || m.Rows[0] != "Anxiety" {
		t.Errorf("rows = %v, undated mention must not create a row", m.Rows)
	}
	if len(m.Columns) != 1 {
		t.Errorf("columns = %v, undated mention must not create a column", m.Columns)
	}
	if m.MaxValue != 1 {
		t.Errorf("maxValue = %d", m.MaxValue)
	}
}

func TestBuildMatrix_AllUndatedIsEmpty(t *testing.T) {
	m := BuildMatrix([]Mention{mention("Anxiety", nil), mention("Panic", nil)})
	if len(m.Rows) != 0 || m.MaxValue != 1 {
		t.Errorf("expected empty matrix, got %+v", m)
	}
}

func TestBuildMatrix_CellSumEqualsDatedMentions(t *testing.T) {
	mentions := []Mention{
		mention("Anxiety", day("2024-01-01")),
		mention("Anxiety", day("2024-01-03")),
		mention("Insomnia", day("2024-01-01")),
		mention("Insomnia", nil),
		mention("Fatigue", day("2024-02-10")),
		mention("Fatigue", day("2024-02-10")),
	}
	dated := 0
	for _, m := range mentions {
		if m.DateOfService != nil {
			dated++
		}
	}

	m := BuildMatrix(mentions)
	sum := 0
	for _, row := range m.Rows {
		for _, col := range m.Columns {
			sum += m.Data[row][col]
		}
	}
	if sum != dated {
		t.Errorf("cell sum = %d, want %d (dated mentions only)", sum, dated)
	}
}

func TestBuildMatrix_ValuesTrimmed(t *testing.T) {
	m := BuildMatrix([]Mention{
		mention("  Anxiety ", day("2024-01-01")),
		mention("Anxiety", day("2024-01-01")),
	})
	if len(m.Rows) != 1 || m.Data["Anxiety"]["2024-01-01"] != 2 {
		t.Errorf("trimmed values must share a row: %+v", m)
	}
}

func TestBuildMatrix_CaseSensitiveValues(t *testing.T) {
	m := BuildMatrix([]Mention{
		mention("anxiety", day("2024-01-01")),
		mention("Anxiety", day("2024-01-01")),
	})
	if len(m.Rows) != 2 {
		t.Errorf("rows = %v, values differing in case are distinct", m.Rows)
	}
}

func TestBuildMatrix_ColumnsChronological(t *testing.T) {
	m := BuildMatrix([]Mention{
		mention("Anxiety", day("2024-02-01")),
		mention("Anxiety", day("2023-12-15")),
		mention("Anxiety", day("2024-01-10")),
	})
	want := []string{"2023-12-15", "2024-01-10", "2024-02-01"}
	if !reflect.DeepEqual(m.Columns, want) {
		t.Errorf("columns = %v, want %v", m.Columns, want)
	}
}

func TestBuildMatrix_Deterministic(t *testing.T) {
	mentions := []Mention{
		mention("Anxiety", day("2024-01-01")),
		mention("Insomnia", day("2024-01-02")),
		mention("Fatigue", day("2024-01-01")),
		mention("Anxiety", day("2024-01-03")),
	}
	first := BuildMatrix(mentions)
	second := BuildMatrix(mentions)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("BuildMatrix is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestMatrix_RowTotals(t *testing.T) {
	m := BuildMatrix([]Mention{
		mention("Anxiety", day("2024-01-01")),
		mention("Anxiety", day("2024-01-02")),
		mention("Insomnia", day("2024-01-01")),
	})
	totals := m.RowTotals()
	if totals["Anxiety"] != 2 || totals["Insomnia"] != 1 {
		t.Errorf("totals = %v", totals)
	}
}

func TestMatrix_TopRows(t *testing.T) {
	m := BuildMatrix([]Mention{
		mention("Anxiety", day("2024-01-01")),
		mention("Anxiety", day("2024-01-02")),
		mention("Anxiety", day("2024-01-03")),
		mention("Insomnia", day("2024-01-01")),
		mention("Fatigue", day("2024-01-01")),
		mention("Fatigue", day("2024-01-02")),
	})
	top := m.TopRows(2)
	if !reflect.DeepEqual(top.Rows, []string{"Anxiety", "Fatigue"}) {
		t.Errorf("top rows = %v", top.Rows)
	}
	if top.MaxValue != 1 {
		t.Errorf("maxValue = %d, want 1 (one mention per cell)", top.MaxValue)
	}
	// The original matrix keeps all rows for full-data export.
	if len(m.Rows) != 3 {
		t.Errorf("TopRows must not mutate the receiver: %v", m.Rows)
	}
}

func TestMatrix_TopRowsEmpty(t *testing.T) {
	top := BuildMatrix(nil).TopRows(5)
	if len(top.Rows) != 0 || top.MaxValue != 1 {
		t.Errorf("expected empty matrix, got %+v", top)
	}
}
