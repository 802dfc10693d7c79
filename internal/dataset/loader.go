// Package dataset loads the flat CSV input files into ordered in-memory
// tables. A missing or unreadable file is never an error: the loader
// logs and returns nil, which downstream import pipelines treat as
// "skip this source".
package dataset

import (
	"encoding/csv"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Table is an ordered-column, ordered-row view of one source file.
// Cell values are raw strings; the empty string means missing.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// Load reads a CSV file. Column names are trimmed of surrounding
// whitespace. Returns nil when the file is absent, empty, or malformed.
func Load(path string, logger *zap.SugaredLogger) *Table {
	f, err := os.Open(path)
	if err != nil {
		logger.Warnw("dataset file not found, skipping", "path", path)
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // source files have ragged rows
	records, err := r.ReadAll()
	if err != nil {
		logger.Errorw("failed to parse dataset, skipping", "path", path, "error", err)
		return nil
	}
	if len(records) == 0 {
		logger.Warnw("dataset is empty, skipping", "path", path)
		return nil
	}

	cols := make([]string, len(records[0]))
	index := make(map[string]int, len(cols))
	for i, h := range records[0] {
		cols[i] = strings.TrimSpace(h)
		index[cols[i]] = i
	}
	t := &Table{cols: cols, index: index, rows: records[1:]}
	logger.Infow("loaded dataset", "path", path, "rows", t.Len())
	return t
}

// Columns returns the trimmed column names in file order.
func (t *Table) Columns() []string {
	return t.cols
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the cell at (row, col), or "" when the column does not
// exist or the row is short.
func (t *Table) Get(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}
