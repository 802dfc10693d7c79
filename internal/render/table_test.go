package render

import (
	"strings"
	"testing"
)

func TestFormatResultsEmpty(t *testing.T) {
	got := FormatResults([]string{"A", "B"}, nil)
	if got != "No data found for this query." {
		t.Errorf("FormatResults(empty) = %q", got)
	}
}

func TestFormatResultsTable(t *testing.T) {
	headers := []string{"A", "BB"}
	rows := [][]string{
		{"x", "y"},
		{"longer", "z"},
	}
	want := strings.Join([]string{
		"+--------+----+",
		"| A      | BB |",
		"+--------+----+",
		"| x      | y  |",
		"| longer | z  |",
		"+--------+----+",
	}, "\n")
	if got := FormatResults(headers, rows); got != want {
		t.Errorf("FormatResults() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatResultsHeaderWiderThanData(t *testing.T) {
	got := FormatResults([]string{"Player Name"}, [][]string{{"x"}})
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("line count = %d, want 5", len(lines))
	}
	width := len(lines[0])
	for i, line := range lines {
		if len(line) != width {
			t.Errorf("line %d width = %d, want %d", i, len(line), width)
		}
	}
	if !strings.HasPrefix(lines[0], "+-") || !strings.HasSuffix(lines[0], "-+") {
		t.Errorf("border line = %q", lines[0])
	}
	if lines[3] != "| x           |" {
		t.Errorf("data row = %q", lines[3])
	}
}
