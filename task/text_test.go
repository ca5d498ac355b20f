package task

import (
	"errors"
	"strings"
	"testing"
)

func TestIsExpanded(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		selected bool
		want     bool
	}{
		{"plain", Task{}, false, false},
		{"plain selected", Task{}, true, false},
		{"working", Task{CurrentlyWorking: true}, false, true},
		{"locked", Task{TextLocked: true}, false, true},
		{"expanded but not selected", Task{TextExpanded: true}, false, false},
		{"expanded and selected", Task{TextExpanded: true}, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsExpanded(tc.task, tc.selected); got != tc.want {
				t.Fatalf("IsExpanded = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestIsTruncated(t *testing.T) {
	title := func(n int) string { return strings.Repeat("a", n) }

	tests := []struct {
		name      string
		task      Task
		threshold int
		selected  bool
		want      bool
	}{
		{"overflow 10", Task{Title: title(70)}, 60, false, true},
		{"locked never truncates", Task{Title: title(70), TextLocked: true}, 60, false, false},
		{"working never truncates", Task{Title: title(500), CurrentlyWorking: true}, 60, false, false},
		{"overflow exactly 5 stays full", Task{Title: title(65)}, 60, false, false},
		{"overflow 6 truncates", Task{Title: title(66)}, 60, false, true},
		{"short title", Task{Title: title(10)}, 60, false, false},
		{"expanded while selected", Task{Title: title(70), TextExpanded: true}, 60, true, false},
		{"expanded but deselected", Task{Title: title(70), TextExpanded: true}, 60, false, true},
		{"counts runes not bytes", Task{Title: strings.Repeat("é", 65)}, 60, false, false},
		{"zero threshold uses default", Task{Title: title(70)}, 0, false, true},
		{"custom threshold", Task{Title: title(20)}, 10, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTruncated(tc.task, tc.threshold, tc.selected); got != tc.want {
				t.Fatalf("IsTruncated = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	long := Task{Title: "The quick brown fox jumps over the lazy dog"}

	got := DisplayTitle(long, 10, false)
	if got != "The qui..." {
		t.Fatalf("DisplayTitle = %q, expected %q", got, "The qui...")
	}

	long.TextLocked = true
	if got := DisplayTitle(long, 10, false); got != long.Title {
		t.Fatalf("locked DisplayTitle = %q, expected full title", got)
	}

	short := Task{Title: "Near the limit!"}
	if got := DisplayTitle(short, 10, false); got != short.Title {
		t.Fatalf("near-threshold DisplayTitle = %q, expected full title", got)
	}
}

func TestToggleLock(t *testing.T) {
	s := newTestStore(t)
	ids := mustCreate(t, s, "A")
	changes := recordChanges(s)

	locked, err := s.ToggleLock(ids[0])
	if err != nil || !locked {
		t.Fatalf("first toggle = %v, %v; expected true, nil", locked, err)
	}
	locked, err = s.ToggleLock(ids[0])
	if err != nil || locked {
		t.Fatalf("second toggle = %v, %v; expected false, nil", locked, err)
	}
	if len(*changes) != 2 {
		t.Fatalf("expected 2 changes, got %v", *changes)
	}

	if _, err := s.ToggleLock(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleLock_RejectedWhileWorking(t *testing.T) {
	s := newTestStore(t)
	ids := mustCreate(t, s, "A")
	if _, err := s.ToggleLock(ids[0]); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.SetWorking(ids[0]); err != nil {
		t.Fatalf("set working: %v", err)
	}
	changes := recordChanges(s)

	locked, err := s.ToggleLock(ids[0])
	if !errors.Is(err, ErrLockWhileWorking) {
		t.Fatalf("expected ErrLockWhileWorking, got %v", err)
	}
	if !locked {
		t.Fatalf("expected unchanged locked state true")
	}
	if !mustTask(t, s, ids[0]).TextLocked {
		t.Fatalf("text lock changed")
	}
	if len(*changes) != 0 {
		t.Fatalf("rejected toggle emitted changes: %v", *changes)
	}
}

func TestExpandCollapse(t *testing.T) {
	s := newTestStore(t)
	ids := mustCreate(t, s, strings.Repeat("x", 80))
	changes := recordChanges(s)

	if err := s.Expand(ids[0]); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if err := s.Expand(ids[0]); err != nil {
		t.Fatalf("expand again: %v", err)
	}
	got := mustTask(t, s, ids[0])
	if !got.TextExpanded || IsTruncated(got, 60, true) {
		t.Fatalf("expected expanded, untruncated title while selected")
	}

	if err := s.Collapse(ids[0]); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	if got := mustTask(t, s, ids[0]); got.TextExpanded {
		t.Fatalf("expected collapsed")
	}
	if len(*changes) != 2 {
		t.Fatalf("expected 2 effective changes, got %v", *changes)
	}

	if err := s.Expand(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
