package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	result := MustParseTime(DateLayout, "2025-01-15")
	if result.Format(DateLayout) != "2025-01-15" {
		t.Errorf("MustParseTime() = %s, expected 2025-01-15", result.Format(DateLayout))
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
		wantErr  bool
	}{
		{name: "Plain date", date: "2025-03-01", expected: "2025-03-01"},
		{name: "Padded", date: " 2025-03-01 ", expected: "2025-03-01"},
		{name: "Timestamp", date: "2025-03-01T22:30:00+02:00", expected: "2025-03-01"},
		{name: "Month only", date: "2025-03", wantErr: true},
		{name: "Garbage", date: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.date)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate() error = %v", err)
			}
			if got.Format(DateLayout) != tt.expected {
				t.Errorf("ParseDate() = %s, expected %s", got.Format(DateLayout), tt.expected)
			}
		})
	}
}

func TestDueDate(t *testing.T) {
	base := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		months   int
		expected string
	}{
		{0, "2025-01-15"},
		{1, "2025-02-15"},
		{12, "2026-01-15"},
		{30, "2027-07-15"},
	}

	for _, tt := range tests {
		if got := DueDate(base, tt.months); got != tt.expected {
			t.Errorf("DueDate(+%d) = %s, expected %s", tt.months, got, tt.expected)
		}
	}

	endOfMonth := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	if got := DueDate(endOfMonth, 1); got != "2025-03-03" {
		t.Errorf("DueDate(Jan 31 +1) = %s, expected 2025-03-03", got)
	}
}
