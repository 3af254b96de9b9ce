package hours_test

import (
	"testing"

	"github.com/voltrack/voltrack/internal/hours"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		start string
		end   string
		want  float64
		ok    bool
	}{
		{"full day shift", "2024-01-01", "09:00", "17:00", 8, true},
		{"morning shift", "2024-01-02", "08:00", "12:00", 4, true},
		{"quarter hour", "2024-03-10", "10:00", "10:15", 0.25, true},
		{"one minute", "2024-03-10", "10:00", "10:01", 0.02, true},
		{"rounds to two decimals", "2024-03-10", "09:00", "09:50", 0.83, true},
		{"ten minutes", "2024-03-10", "09:00", "09:10", 0.17, true},
		{"end equals start", "2024-01-01", "09:00", "09:00", 0, false},
		{"end before start", "2024-01-01", "17:00", "09:00", 0, false},
		{"bad date", "01/01/2024", "09:00", "17:00", 0, false},
		{"empty date", "", "09:00", "17:00", 0, false},
		{"bad start", "2024-01-01", "9am", "17:00", 0, false},
		{"bad end", "2024-01-01", "09:00", "25:00", 0, false},
		{"empty times", "2024-01-01", "", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := hours.Compute(tt.date, tt.start, tt.end)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Compute(%q, %q, %q) = (%v, %v), want (%v, %v)",
					tt.date, tt.start, tt.end, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-01-01", true},
		{"2024-12-31", true},
		{"2024-13-01", false},
		{"2024-1-1", false},
		{"yesterday", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := hours.ValidDate(tt.input); got != tt.want {
			t.Errorf("ValidDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidClock(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := hours.ValidClock(tt.input); got != tt.want {
			t.Errorf("ValidClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
