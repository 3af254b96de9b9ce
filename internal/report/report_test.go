package report_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/voltrack/voltrack/internal/report"
)

func sampleRows() []report.Row {
	return []report.Row{
		{FullName: "Alice Mertens", Date: "2024-01-01", Event: "Food drive", Start: "09:00", End: "17:00", Hours: 8},
		{FullName: "Alice Mertens", Date: "2024-01-02", Event: "Intake", Start: "08:00", End: "12:00", Hours: 4},
		{FullName: "Ben Okafor", Date: "2024-01-01", Event: "Food drive", Start: "10:00", End: "14:30", Hours: 4.5},
	}
}

func TestTotalsByPerson(t *testing.T) {
	totals := report.TotalsByPerson(sampleRows())
	if len(totals) != 2 {
		t.Fatalf("got %d buckets, want 2", len(totals))
	}
	if totals["Alice Mertens"] != 12 {
		t.Errorf("Alice Mertens = %v, want 12", totals["Alice Mertens"])
	}
	if totals["Ben Okafor"] != 4.5 {
		t.Errorf("Ben Okafor = %v, want 4.5", totals["Ben Okafor"])
	}
}

func TestTotalsByPersonEmpty(t *testing.T) {
	totals := report.TotalsByPerson(nil)
	if len(totals) != 0 {
		t.Errorf("got %d buckets for empty input, want 0", len(totals))
	}
}

func TestTotalsByPersonOrderIndependent(t *testing.T) {
	rows := sampleRows()
	want := report.TotalsByPerson(rows)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(rows), func(a, b int) { rows[a], rows[b] = rows[b], rows[a] })
		got := report.TotalsByPerson(rows)
		if len(got) != len(want) {
			t.Fatalf("shuffle %d: got %d buckets, want %d", i, len(got), len(want))
		}
		for name, h := range want {
			if got[name] != h {
				t.Errorf("shuffle %d: %s = %v, want %v", i, name, got[name], h)
			}
		}
	}
}

func TestGroupKeyCollapsesSharedNames(t *testing.T) {
	rows := []report.Row{
		{FullName: "Sam Lee", Hours: 2},
		{FullName: "Sam Lee", Hours: 3},
	}
	totals := report.TotalsByPerson(rows)
	if len(totals) != 1 || totals["Sam Lee"] != 5 {
		t.Errorf("totals = %v, want one bucket of 5", totals)
	}
}

func TestSortedTotals(t *testing.T) {
	out := report.SortedTotals(map[string]float64{
		"Zoe": 1, "Ada": 2, "Mel": 3,
	})
	wantOrder := []string{"Ada", "Mel", "Zoe"}
	if len(out) != 3 {
		t.Fatalf("got %d totals, want 3", len(out))
	}
	for i, name := range wantOrder {
		if out[i].FullName != name {
			t.Errorf("position %d = %q, want %q", i, out[i].FullName, name)
		}
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid range", "2024-01-01", "2024-01-31", false},
		{"single day", "2024-01-01", "2024-01-01", false},
		{"inverted", "2024-02-01", "2024-01-01", true},
		{"bad start", "jan 1", "2024-01-31", true},
		{"bad end", "2024-01-01", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := report.ValidateRange(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%q, %q) = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, report.ErrInvalidRange) {
				t.Errorf("error %v is not ErrInvalidRange", err)
			}
		})
	}
}

func TestInRangeInclusiveBounds(t *testing.T) {
	start, end := "2024-01-10", "2024-01-20"
	tests := []struct {
		date string
		want bool
	}{
		{"2024-01-10", true},
		{"2024-01-20", true},
		{"2024-01-15", true},
		{"2024-01-09", false},
		{"2024-01-21", false},
	}
	for _, tt := range tests {
		if got := report.InRange(tt.date, start, end); got != tt.want {
			t.Errorf("InRange(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}
