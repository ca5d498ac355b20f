package task

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()
	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return s
}

// mustCreate creates one task per title and returns their IDs.
func mustCreate(t *testing.T, s *Store, titles ...string) []int {
	t.Helper()

	ids := make([]int, 0, len(titles))
	for _, title := range titles {
		created, err := s.Create(title, CreateOptions{})
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		ids = append(ids, created.ID)
	}
	return ids
}

func mustTask(t *testing.T, s *Store, id int) Task {
	t.Helper()

	got, err := s.GetTask(id)
	if err != nil {
		t.Fatalf("get task %d: %v", id, err)
	}
	return got
}

func mustSetParent(t *testing.T, s *Store, id, parentID int) {
	t.Helper()
	if err := s.SetParent(id, parentID); err != nil {
		t.Fatalf("set parent %d -> %d: %v", id, parentID, err)
	}
}

func mustAddDep(t *testing.T, s *Store, from, to int) {
	t.Helper()
	if err := s.AddDependencyEdge(from, to); err != nil {
		t.Fatalf("add dependency %d -> %d: %v", from, to, err)
	}
}

// recordChanges subscribes to s and returns the collected changes.
func recordChanges(s *Store) *[]Change {
	var changes []Change
	s.Subscribe(func(c Change) {
		changes = append(changes, c)
	})
	return &changes
}
