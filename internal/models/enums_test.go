package models

import (
	"errors"
	"testing"
)

func TestParseTaskStatus(t *testing.T) {
	cases := map[string]TaskStatus{
		"TODO":        StatusTodo,
		"todo":        StatusTodo,
		"in_progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"Review":      StatusReview,
		"DONE":        StatusDone,
	}
	for input, want := range cases {
		got, err := ParseTaskStatus(input)
		if err != nil {
			t.Fatalf("ParseTaskStatus(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseTaskStatus(%q) = %q, want %q", input, got, want)
		}
	}

	_, err := ParseTaskStatus("SHIPPED")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status error = %v, want invalid input", err)
	}
}

func TestParsePriority(t *testing.T) {
	if got, err := ParsePriority("urgent"); err != nil || got != PriorityUrgent {
		t.Fatalf("ParsePriority(urgent) = %q, %v", got, err)
	}
	if _, err := ParsePriority("whenever"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown priority error = %v", err)
	}
}

func TestParseProjectTemplate(t *testing.T) {
	if got, err := ParseProjectTemplate("web-dev"); err != nil || got != TemplateWebDev {
		t.Fatalf("ParseProjectTemplate(web-dev) = %q, %v", got, err)
	}
	if _, err := ParseProjectTemplate("gamedev"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown template error = %v", err)
	}
}

func TestParseTimeEntryStatus(t *testing.T) {
	if got, err := ParseTimeEntryStatus("submitted"); err != nil || got != TimeEntrySubmitted {
		t.Fatalf("ParseTimeEntryStatus(submitted) = %q, %v", got, err)
	}
	if _, err := ParseTimeEntryStatus("pending"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown entry status error = %v", err)
	}
}

func TestEntityErrorsMatchSentinels(t *testing.T) {
	for _, err := range []error{
		ErrUserNotFound, ErrProjectNotFound, ErrTaskNotFound,
		ErrTimeEntryNotFound, ErrMemberNotFound, ErrAttachmentNotFound,
	} {
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("%v should match ErrNotFound", err)
		}
	}
}

func TestUserFullName(t *testing.T) {
	u := User{Username: "jdoe", FirstName: "Jane", LastName: "Doe"}
	if got := u.FullName(); got != "Jane Doe" {
		t.Fatalf("FullName = %q", got)
	}

	bare := User{Username: "jdoe"}
	if got := bare.FullName(); got != "jdoe" {
		t.Fatalf("FullName fallback = %q", got)
	}

	partial := User{Username: "jdoe", FirstName: "Jane"}
	if got := partial.FullName(); got != "Jane" {
		t.Fatalf("FullName partial = %q", got)
	}
}
