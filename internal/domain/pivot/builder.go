package pivot

import (
	"sort"
	"strings"
)

// columnDateLayout is the calendar-date format used for matrix columns.
// Columns bucket by date of service, not time of day.
const columnDateLayout = "2006-01-02"

// BuildMatrix aggregates mentions into a value x service-date counting grid.
//
// Rows are distinct trimmed mention values (case-sensitive), in order of
// first appearance in the input. Columns are distinct calendar dates sorted
// ascending. Every (row, column) cell is present in Data, zero when no
// mention matches, so duplicate mentions at the same (value, date) increment
// one cell instead of growing the grid.
//
// Mentions without a date of service are dropped entirely: they contribute
// no row, no column, and do not affect MaxValue. MaxValue is the largest
// cell count, or 1 for an empty matrix so that intensity scaling never
// divides by zero.
func BuildMatrix(mentions []Mention) Matrix {
	var rows []string
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)
	counts := make(map[string]map[string]int)

	for _, m := range mentions {
		if m.DateOfService == nil {
			continue
		}
		value := strings.TrimSpace(m.Value)
		date := m.DateOfService.Format(columnDateLayout)

		if !rowSeen[value] {
			rowSeen[value] = true
			rows = append(rows, value)
			counts[value] = make(map[string]int)
		}
		colSeen[date] = true
		counts[value][date]++
	}

	if len(rows) == 0 {
		return Matrix{MaxValue: 1}
	}

	columns := make([]string, 0, len(colSeen))
	for date := range colSeen {
		columns = append(columns, date)
	}
	sort.Strings(columns)

	// Zero-fill the full grid and track the maximum cell.
	maxValue := 0
	data := make(map[string]map[string]int, len(rows))
	for _, row := range rows {
		cells := make(map[string]int, len(columns))
		for _, col := range columns {
			n := counts[row][col]
			cells[col] = n
			if n > maxValue {
				maxValue = n
			}
		}
		data[row] = cells
	}

	return Matrix{
		Rows:     rows,
		Columns:  columns,
		Data:     data,
		MaxValue: maxValue,
	}
}

// TopRows returns a copy of the matrix restricted to the n rows with the
// highest totals, descending. Rows whose cells are all zero are excluded;
// ties keep the original row order. The receiver is unchanged, so full-data
// exports can still render every row.
func (m Matrix) TopRows(n int) Matrix {
	if n <= 0 || len(m.Rows) == 0 {
		return Matrix{MaxValue: 1}
	}

	totals := m.RowTotals()
	ordered := make([]string, 0, len(m.Rows))
	for _, row := range m.Rows {
		if totals[row] > 0 {
			ordered = append(ordered, row)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return totals[ordered[i]] > totals[ordered[j]]
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	if len(ordered) == 0 {
		return Matrix{MaxValue: 1}
	}

	maxValue := 0
	data := make(map[string]map[string]int, len(ordered))
	for _, row := range ordered {
		cells := make(map[string]int, len(m.Columns))
		for _, col := range m.Columns {
			v := m.Data[row][col]
			cells[col] = v
			if v > maxValue {
				maxValue = v
			}
		}
		data[row] = cells
	}

	return Matrix{
		Rows:     ordered,
		Columns:  append([]string(nil), m.Columns...),
		Data:     data,
		MaxValue: maxValue,
	}
}
