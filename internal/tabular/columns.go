package tabular

import "strings"

// header indexes a CSV header row by a case-insensitive, whitespace-trimmed
// column name, the way the survey/roster input columns are matched (§6).
type header struct {
	index map[string]int
}

func newHeader(row []string) header {
	idx := make(map[string]int, len(row))
	for i, col := range row {
		idx[normalizeColumn(col)] = i
	}
	return header{index: idx}
}

func normalizeColumn(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// col returns the value of the named column for this row, or "" if the
// column is absent or the row is short.
func (h header) col(row []string, name string) string {
	i, ok := h.index[normalizeColumn(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// has returns the required column names that are absent from the header
// (nil when every one is present).
func (h header) has(names ...string) (missing []string) {
	for _, n := range names {
		if _, ok := h.index[normalizeColumn(n)]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}
