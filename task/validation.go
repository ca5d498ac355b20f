package task

import (
	"errors"
	"fmt"

	internalstrings "github.com/amonks/tasktree/internal/strings"
	"github.com/amonks/tasktree/internal/validation"
)

var (
	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNotFound is returned when a task with the given ID doesn't exist.
	ErrNotFound = errors.New("task not found")

	// ErrCycle is returned when a dependency edge or reparent would
	// introduce a cycle. The store is left unchanged.
	ErrCycle = errors.New("would create a cycle")

	// ErrLockWhileWorking is returned when toggling the text lock of the
	// working task. Working tasks are always expanded.
	ErrLockWhileWorking = errors.New("cannot toggle text lock on the working task")

	// ErrInvariantViolation is returned when task records break the forest,
	// DAG or single-working-task invariants.
	ErrInvariantViolation = errors.New("task invariant violated")
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// NormalizeTitle collapses whitespace in a title and validates it.
func NormalizeTitle(title string) (string, error) {
	title = internalstrings.NormalizeWhitespace(title)
	if err := ValidateTitle(title); err != nil {
		return "", err
	}
	return title, nil
}

// ParseStatus normalizes user input into a Status.
func ParseStatus(input string) (Status, error) {
	status := Status(internalstrings.NormalizeLowerTrimSpace(input))
	if !status.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidStatus, Status(input), ValidStatuses())
	}
	return status, nil
}

// ValidateTask checks a single task's own fields.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return fmt.Errorf("task %d: %w", t.ID, err)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("task %d: %w: %q", t.ID, ErrInvalidStatus, t.Status)
	}
	return nil
}

// ValidateTasks checks a flat collection of task records against the
// forest, DAG and single-working-task invariants.
func ValidateTasks(tasks []Task) error {
	byID := make(map[int]*Task, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if err := ValidateTask(t); err != nil {
			return err
		}
		if _, dup := byID[t.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvariantViolation, t.ID)
		}
		byID[t.ID] = t
	}

	working := 0
	for i := range tasks {
		t := &tasks[i]
		if t.CurrentlyWorking {
			working++
		}
		if t.MainParent != nil {
			parent, ok := byID[*t.MainParent]
			if !ok {
				return fmt.Errorf("%w: task %d has missing parent %d", ErrInvariantViolation, t.ID, *t.MainParent)
			}
			if countOf(parent.Children, t.ID) != 1 {
				return fmt.Errorf("%w: parent %d does not list child %d exactly once", ErrInvariantViolation, parent.ID, t.ID)
			}
		}
		for _, childID := range t.Children {
			child, ok := byID[childID]
			if !ok {
				return fmt.Errorf("%w: task %d has missing child %d", ErrInvariantViolation, t.ID, childID)
			}
			if child.MainParent == nil || *child.MainParent != t.ID {
				return fmt.Errorf("%w: child %d does not point back to parent %d", ErrInvariantViolation, childID, t.ID)
			}
		}
		seen := make(map[int]struct{}, len(t.Dependencies))
		for _, depID := range t.Dependencies {
			if _, ok := byID[depID]; !ok {
				return fmt.Errorf("%w: task %d depends on missing task %d", ErrInvariantViolation, t.ID, depID)
			}
			if _, dup := seen[depID]; dup {
				return fmt.Errorf("%w: task %d lists dependency %d twice", ErrInvariantViolation, t.ID, depID)
			}
			seen[depID] = struct{}{}
		}
	}
	if working > 1 {
		return fmt.Errorf("%w: %d working tasks", ErrInvariantViolation, working)
	}

	for i := range tasks {
		if err := checkParentChain(byID, tasks[i].ID); err != nil {
			return err
		}
	}
	if cycle := findDependencyCycle(tasks, byID); cycle != nil {
		return fmt.Errorf("%w: dependency cycle %v", ErrInvariantViolation, cycle)
	}
	return nil
}

func countOf(ids []int, id int) int {
	n := 0
	for _, candidate := range ids {
		if candidate == id {
			n++
		}
	}
	return n
}

func checkParentChain(byID map[int]*Task, id int) error {
	visited := make(map[int]struct{})
	for current, ok := byID[id]; ok; {
		if _, loop := visited[current.ID]; loop {
			return fmt.Errorf("%w: parent loop through task %d", ErrInvariantViolation, current.ID)
		}
		visited[current.ID] = struct{}{}
		if current.MainParent == nil {
			return nil
		}
		current, ok = byID[*current.MainParent]
	}
	return nil
}

// findDependencyCycle returns one dependency cycle, or nil when the
// dependency graph is acyclic. DFS with white/gray/black coloring.
func findDependencyCycle(tasks []Task, byID map[int]*Task) []int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, len(tasks))
	parent := make(map[int]int)

	var dfs func(id int) []int
	dfs = func(id int) []int {
		color[id] = gray
		for _, next := range byID[id].Dependencies {
			if _, ok := byID[next]; !ok {
				continue
			}
			switch color[next] {
			case gray:
				cycle := []int{next, id}
				for cur := id; cur != next; {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			case white:
				parent[next] = id
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[id] = black
		return nil
	}

	for i := range tasks {
		if color[tasks[i].ID] == white {
			if cycle := dfs(tasks[i].ID); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
