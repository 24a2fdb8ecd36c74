package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateMath(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.January, 11)

	if got := start.DaysUntil(end); got != 10 {
		t.Fatalf("DaysUntil = %d, want 10", got)
	}
	if got := end.DaysUntil(start); got != -10 {
		t.Fatalf("reverse DaysUntil = %d, want -10", got)
	}
	if got := start.DaysUntil(start); got != 0 {
		t.Fatalf("same day DaysUntil = %d, want 0", got)
	}

	if !start.AddDays(10).Equal(end) {
		t.Fatalf("AddDays(10) = %s, want %s", start.AddDays(10), end)
	}
	if !start.Before(end) || !end.After(start) {
		t.Fatal("ordering comparisons failed")
	}
}

func TestDateOfTruncates(t *testing.T) {
	late := time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC)
	if got := DateOf(late); !got.Equal(NewDate(2024, time.March, 5)) {
		t.Fatalf("DateOf = %s, want 2024-03-05", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.String() != "2024-06-15" {
		t.Fatalf("round trip = %q", d.String())
	}

	if _, err := ParseDate("15/06/2024"); err == nil {
		t.Fatal("slash format should not parse")
	}
	if _, err := ParseDate(""); err == nil {
		t.Fatal("empty string should not parse")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.June, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-06-15"` {
		t.Fatalf("marshal = %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip = %s, want %s", back, d)
	}

	var zero Date
	if err := json.Unmarshal([]byte("null"), &zero); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !zero.IsZero() {
		t.Fatal("null should yield zero date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2024-06-15"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2024-06-15" {
		t.Fatalf("scanned = %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Fatal("nil should reset to zero")
	}

	if err := d.Scan(time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2024-06-15" {
		t.Fatalf("scanned time = %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Fatal("scanning an int should fail")
	}
}
