package services

import (
	"testing"
	"time"
)

func TestDefaultAvatar(t *testing.T) {
	got := DefaultAvatar("Ada Lovelace")
	if got != "https://api.dicebear.com/7.x/avataaars/svg?seed=Ada+Lovelace" {
		t.Errorf("DefaultAvatar() = %q", got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"go, react ,, sql", []string{"go", "react", "sql"}},
		{" , ", []string{}},
	}
	for _, tt := range tests {
		got := splitList(tt.in)
		if got == nil {
			t.Errorf("splitList(%q) returned nil", tt.in)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v, expected %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q)[%d] = %q", tt.in, i, got[i])
			}
		}
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("dedupe() = %v", got)
	}
}

func TestNullable(t *testing.T) {
	if nullable("  ") != nil {
		t.Error("blank should be nil")
	}
	if v := nullable(" x "); v == nil || *v != "x" {
		t.Errorf("nullable() = %v", v)
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2024-03-05")
	if err != nil || d == nil || !d.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("parseDate(date) = %v, %v", d, err)
	}

	d, err = parseDate("2024-03-05T10:00:00Z")
	if err != nil || d == nil || d.Hour() != 10 {
		t.Errorf("parseDate(rfc3339) = %v, %v", d, err)
	}

	if d, err := parseDate(""); d != nil || err != nil {
		t.Errorf("parseDate(empty) = %v, %v", d, err)
	}
	if _, err := parseDate("05/03/2024"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestMonthYear(t *testing.T) {
	if got := monthYear(time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)); got != "NOV 2023" {
		t.Errorf("monthYear() = %q", got)
	}
}
