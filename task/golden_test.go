package task

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWorkingTaskPath_NoWorkingTask(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, "A", "B")

	got := WorkingTaskPath(s)
	want := WorkingPath{AncestorPath: []int{}, DirectChildren: []ChildState{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkingTaskPath_AncestorChain(t *testing.T) {
	s := newTestStore(t)
	ids := mustCreate(t, s, "1", "2", "3")
	mustSetParent(t, s, ids[1], ids[0])
	mustSetParent(t, s, ids[2], ids[1])
	if err := s.SetWorking(ids[2]); err != nil {
		t.Fatalf("set working: %v", err)
	}

	got, err := ResolveWorkingPath(s)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := WorkingPath{
		WorkingTaskID:  IDPtr(ids[2]),
		AncestorPath:   []int{ids[2], ids[1], ids[0]},
		DirectChildren: []ChildState{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}

	for _, id := range ids {
		if !got.OnPath(id) {
			t.Errorf("expected %d on path", id)
		}
	}
}

func TestWorkingTaskPath_DirectChildren(t *testing.T) {
	s := newTestStore(t)
	ids := mustCreate(t, s, "Root", "Working", "Child A", "Child B", "Grandchild", "Sibling")
	root, working, childA, childB, grandchild, sibling := ids[0], ids[1], ids[2], ids[3], ids[4], ids[5]
	mustSetParent(t, s, working, root)
	mustSetParent(t, s, sibling, root)
	mustSetParent(t, s, childB, working)
	mustSetParent(t, s, childA, working)
	mustSetParent(t, s, grandchild, childA)
	done := StatusDone
	if _, err := s.Update(childB, UpdateOptions{Status: &done}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.SetWorking(working); err != nil {
		t.Fatalf("set working: %v", err)
	}

	got := WorkingTaskPath(s)
	wantChildren := []ChildState{{ID: childB, IsDone: true}, {ID: childA, IsDone: false}}
	if diff := cmp.Diff(wantChildren, got.DirectChildren); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{working, root}, got.AncestorPath); diff != "" {
		t.Fatalf("ancestors mismatch (-want +got):\n%s", diff)
	}
	if got.OnPath(sibling) || got.IsChild(sibling) {
		t.Errorf("sibling should not be highlighted")
	}
	if got.IsChild(grandchild) {
		t.Errorf("grandchild should not be a direct child")
	}
	if !got.IsChild(childA) {
		t.Errorf("expected child A to be a direct child")
	}
}

// rawReader serves literal records so broken invariants can be modeled.
type rawReader []Task

func (r rawReader) GetTask(id int) (Task, error) {
	for _, t := range r {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return Task{}, ErrNotFound
}

func (r rawReader) AllTasks() []Task {
	return []Task(r)
}

func TestResolveWorkingPath_DanglingChild(t *testing.T) {
	r := rawReader{
		{ID: 1, Title: "W", Status: StatusTodo, CurrentlyWorking: true, Children: []int{2, 9}},
		{ID: 2, Title: "C", Status: StatusDone, MainParent: IDPtr(1)},
	}

	got, err := ResolveWorkingPath(r)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := []ChildState{{ID: 2, IsDone: true}, {ID: 9, IsDone: false}}
	if diff := cmp.Diff(want, got.DirectChildren); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWorkingPath_MissingAncestorStops(t *testing.T) {
	r := rawReader{
		{ID: 1, Title: "W", Status: StatusTodo, CurrentlyWorking: true, MainParent: IDPtr(5)},
	}

	got, err := ResolveWorkingPath(r)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]int{1, 5}, got.AncestorPath); diff != "" {
		t.Fatalf("ancestors mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWorkingPath_InvariantViolations(t *testing.T) {
	tests := []struct {
		name string
		r    rawReader
	}{
		{
			name: "two working tasks",
			r: rawReader{
				{ID: 1, Title: "A", Status: StatusTodo, CurrentlyWorking: true},
				{ID: 2, Title: "B", Status: StatusTodo, CurrentlyWorking: true},
			},
		},
		{
			name: "parent loop",
			r: rawReader{
				{ID: 1, Title: "A", Status: StatusTodo, CurrentlyWorking: true, MainParent: IDPtr(2)},
				{ID: 2, Title: "B", Status: StatusTodo, MainParent: IDPtr(3)},
				{ID: 3, Title: "C", Status: StatusTodo, MainParent: IDPtr(2)},
			},
		},
		{
			name: "self parent",
			r: rawReader{
				{ID: 1, Title: "A", Status: StatusTodo, CurrentlyWorking: true, MainParent: IDPtr(1)},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveWorkingPath(tc.r)
			if !errors.Is(err, ErrInvariantViolation) {
				t.Fatalf("expected ErrInvariantViolation, got %v", err)
			}
			if got.WorkingTaskID != nil || len(got.AncestorPath) != 0 || len(got.DirectChildren) != 0 {
				t.Fatalf("expected empty sentinel, got %+v", got)
			}
			if soft := WorkingTaskPath(tc.r); soft.WorkingTaskID != nil {
				t.Fatalf("expected fail-soft empty path, got %+v", soft)
			}
		})
	}
}
