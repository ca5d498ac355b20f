package task

import (
	"fmt"
	"testing"
)

// graphReader is a Reader over a literal dependency map, so dangling ids
// can be modeled directly.
type graphReader map[int][]int

func (g graphReader) GetTask(id int) (Task, error) {
	deps, ok := g[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return Task{ID: id, Title: fmt.Sprint(id), Status: StatusTodo, Dependencies: deps}, nil
}

func (g graphReader) AllTasks() []Task {
	var out []Task
	for id := range g {
		t, _ := g.GetTask(id)
		out = append(out, t)
	}
	return out
}

func TestWouldCreateCycle(t *testing.T) {
	tests := []struct {
		name  string
		graph graphReader
		from  int
		to    int
		want  bool
	}{
		{"reverse of existing edge", graphReader{1: nil, 2: {1}}, 1, 2, true},
		{"target has no outgoing deps", graphReader{1: nil, 2: {1}, 3: nil}, 3, 1, false},
		{"self loop", graphReader{1: nil}, 1, 1, true},
		{"self loop on missing task", graphReader{}, 5, 5, true},
		{"transitive", graphReader{1: nil, 2: {1}, 3: {2}, 4: {3}}, 1, 4, true},
		{"parallel edge is fine", graphReader{1: nil, 2: {1}, 3: {2}}, 3, 1, false},
		{"diamond", graphReader{1: nil, 2: {1}, 3: {1}, 4: {2, 3}}, 4, 1, false},
		{"diamond closing", graphReader{1: nil, 2: {1}, 3: {1}, 4: {2, 3}}, 1, 4, true},
		{"dangling id is a dead end", graphReader{1: nil, 2: {99}}, 1, 2, false},
		{"dangling target", graphReader{1: nil}, 1, 42, false},
		{"existing cycle elsewhere terminates", graphReader{1: nil, 2: {3}, 3: {2}}, 1, 2, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WouldCreateCycle(tc.graph, tc.from, tc.to); got != tc.want {
				t.Fatalf("WouldCreateCycle(%d, %d) = %v, expected %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestWouldCreateCycle_MatchesReachability(t *testing.T) {
	graph := graphReader{
		1: {2, 3},
		2: {4},
		3: {4, 5},
		4: {6},
		5: nil,
		6: nil,
		7: {1},
	}

	reaches := func(from, to int) bool {
		seen := map[int]bool{}
		var walk func(int) bool
		walk = func(id int) bool {
			if id == to {
				return true
			}
			if seen[id] {
				return false
			}
			seen[id] = true
			for _, next := range graph[id] {
				if walk(next) {
					return true
				}
			}
			return false
		}
		return walk(from)
	}

	for from := 1; from <= 7; from++ {
		for to := 1; to <= 7; to++ {
			want := from == to || reaches(to, from)
			if got := WouldCreateCycle(graph, from, to); got != want {
				t.Errorf("WouldCreateCycle(%d, %d) = %v, expected %v", from, to, got, want)
			}
		}
	}
}

func TestWouldCreateCycle_IsPure(t *testing.T) {
	s := newTestStore(t)
	ids := mustCreate(t, s, "1", "2", "3")
	mustAddDep(t, s, ids[1], ids[0])
	changes := recordChanges(s)

	before := s.AllTasks()
	for i := 0; i < 3; i++ {
		if !WouldCreateCycle(s, ids[0], ids[1]) {
			t.Fatalf("call %d: expected cycle", i)
		}
		if WouldCreateCycle(s, ids[2], ids[0]) {
			t.Fatalf("call %d: expected no cycle", i)
		}
	}

	after := s.AllTasks()
	for i := range before {
		if len(before[i].Dependencies) != len(after[i].Dependencies) {
			t.Fatalf("task %d dependencies changed", before[i].ID)
		}
	}
	if len(*changes) != 0 {
		t.Fatalf("query emitted changes: %v", *changes)
	}
}

func TestWouldCreateCycle_LongChain(t *testing.T) {
	const n = 5000
	graph := make(graphReader, n)
	for id := 1; id <= n; id++ {
		if id > 1 {
			graph[id] = []int{id - 1}
		} else {
			graph[id] = nil
		}
	}

	if !WouldCreateCycle(graph, 1, n) {
		t.Fatal("expected chain end to reach start")
	}
	if WouldCreateCycle(graph, n, 1) {
		t.Fatal("start should not reach chain end")
	}
}
