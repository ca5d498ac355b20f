package task

import (
	"fmt"
	"slices"
	"time"
)

// Reader is the read-only view of task state used by the derivations.
type Reader interface {
	// GetTask returns a copy of the task, or ErrNotFound.
	GetTask(id int) (Task, error)

	// AllTasks returns copies of every task in creation order.
	AllTasks() []Task
}

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeCreated      ChangeKind = "created"
	ChangeUpdated      ChangeKind = "updated"
	ChangeDeleted      ChangeKind = "deleted"
	ChangeDependencies ChangeKind = "dependencies"
	ChangeParent       ChangeKind = "parent"
	ChangeWorking      ChangeKind = "working"
	ChangeText         ChangeKind = "text"
)

// Change describes a successful store mutation.
type Change struct {
	Kind ChangeKind

	// TaskID is the task the mutation was applied to. It is zero for
	// ClearWorking when no task was working.
	TaskID int
}

// Store owns the canonical set of tasks and both edge sets.
//
// A Store is not safe for concurrent use. Every mutation either applies
// completely or leaves the store untouched.
type Store struct {
	tasks       map[int]*Task
	order       []int
	nextID      int
	now         func() time.Time
	subscribers map[int]func(Change)
	nextSub     int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		tasks:       make(map[int]*Task),
		nextID:      1,
		now:         time.Now,
		subscribers: make(map[int]func(Change)),
	}
}

// Restore builds a store from external task records after checking them
// with ValidateTasks. Session-local state is reset.
func Restore(tasks []Task) (*Store, error) {
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}

	s := NewStore()
	for _, t := range tasks {
		t = t.Clone()
		t.TextExpanded = false
		s.tasks[t.ID] = &t
		s.order = append(s.order, t.ID)
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s, nil
}

// Subscribe registers fn to be called after every successful mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

func (s *Store) notify(kind ChangeKind, id int) {
	change := Change{Kind: kind, TaskID: id}
	keys := make([]int, 0, len(s.subscribers))
	for key := range s.subscribers {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		s.subscribers[key](change)
	}
}

// GetTask returns a copy of the task with the given ID.
func (s *Store) GetTask(id int) (Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return Task{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return t.Clone(), nil
}

// AllTasks returns copies of every task in creation order.
func (s *Store) AllTasks() []Task {
	out := make([]Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.order)
}

func (s *Store) lookup(id int) (*Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return t, nil
}

// CreateOptions configures a new task.
type CreateOptions struct {
	// Description provides additional context.
	Description string
}

// Create adds a root task with status todo and no dependencies.
func (s *Store) Create(title string, opts CreateOptions) (Task, error) {
	title, err := NormalizeTitle(title)
	if err != nil {
		return Task{}, err
	}

	now := s.now()
	t := &Task{
		ID:          s.nextID,
		Title:       title,
		Description: opts.Description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)

	s.notify(ChangeCreated, t.ID)
	return t.Clone(), nil
}

// UpdateOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Title       *string
	Description *string
	Status      *Status
}

// Update applies opts to the task with the given ID.
func (s *Store) Update(id int, opts UpdateOptions) (Task, error) {
	t, err := s.lookup(id)
	if err != nil {
		return Task{}, err
	}

	var title string
	if opts.Title != nil {
		title, err = NormalizeTitle(*opts.Title)
		if err != nil {
			return Task{}, err
		}
	}
	if opts.Status != nil && !opts.Status.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *opts.Status)
	}

	if opts.Title != nil {
		t.Title = title
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.Status != nil {
		t.Status = *opts.Status
	}
	t.UpdatedAt = s.now()

	s.notify(ChangeUpdated, id)
	return t.Clone(), nil
}

// AddDependencyEdge records that from depends on to. It fails with ErrCycle
// when to can already reach from, and is a no-op when the edge exists.
func (s *Store) AddDependencyEdge(from, to int) error {
	t, err := s.lookup(from)
	if err != nil {
		return err
	}
	if _, err := s.lookup(to); err != nil {
		return err
	}
	if WouldCreateCycle(s, from, to) {
		return fmt.Errorf("%w: dependency %d -> %d", ErrCycle, from, to)
	}
	if t.DependsOn(to) {
		return nil
	}

	t.Dependencies = append(t.Dependencies, to)
	t.UpdatedAt = s.now()
	s.notify(ChangeDependencies, from)
	return nil
}

// RemoveDependencyEdge removes the edge from -> to if present.
func (s *Store) RemoveDependencyEdge(from, to int) error {
	t, err := s.lookup(from)
	if err != nil {
		return err
	}
	idx := slices.Index(t.Dependencies, to)
	if idx < 0 {
		return nil
	}

	t.Dependencies = slices.Delete(t.Dependencies, idx, idx+1)
	t.UpdatedAt = s.now()
	s.notify(ChangeDependencies, from)
	return nil
}

// SetParent moves id under parentID. It fails with ErrCycle when parentID
// is id itself or one of its descendants.
func (s *Store) SetParent(id, parentID int) error {
	t, err := s.lookup(id)
	if err != nil {
		return err
	}
	parent, err := s.lookup(parentID)
	if err != nil {
		return err
	}
	if parentID == id || s.isDescendant(parentID, id) {
		return fmt.Errorf("%w: cannot move %d under %d", ErrCycle, id, parentID)
	}
	if t.MainParent != nil && *t.MainParent == parentID {
		return nil
	}

	s.detach(t)
	t.MainParent = IDPtr(parentID)
	parent.Children = append(parent.Children, id)

	now := s.now()
	t.UpdatedAt = now
	parent.UpdatedAt = now
	s.notify(ChangeParent, id)
	return nil
}

// ClearParent turns id into a root.
func (s *Store) ClearParent(id int) error {
	t, err := s.lookup(id)
	if err != nil {
		return err
	}
	if t.MainParent == nil {
		return nil
	}

	s.detach(t)
	t.UpdatedAt = s.now()
	s.notify(ChangeParent, id)
	return nil
}

// isDescendant reports whether candidate sits below ancestor in the tree.
func (s *Store) isDescendant(candidate, ancestor int) bool {
	visited := make(map[int]struct{})
	for current, ok := s.tasks[candidate]; ok && current.MainParent != nil; {
		if *current.MainParent == ancestor {
			return true
		}
		if _, loop := visited[current.ID]; loop {
			return false
		}
		visited[current.ID] = struct{}{}
		current, ok = s.tasks[*current.MainParent]
	}
	return false
}

func (s *Store) detach(t *Task) {
	if t.MainParent == nil {
		return
	}
	if parent, ok := s.tasks[*t.MainParent]; ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(child int) bool {
			return child == t.ID
		})
		parent.UpdatedAt = s.now()
	}
	t.MainParent = nil
}

// DeleteTask removes the task, detaches it from its parent, drops it from
// every other task's dependencies and promotes its children to roots.
// Deleting a missing task is a no-op.
func (s *Store) DeleteTask(id int) {
	t, ok := s.tasks[id]
	if !ok {
		return
	}

	s.detach(t)
	for _, childID := range t.Children {
		if child, ok := s.tasks[childID]; ok {
			child.MainParent = nil
		}
	}
	for _, other := range s.tasks {
		if other.ID == id {
			continue
		}
		other.Dependencies = slices.DeleteFunc(other.Dependencies, func(dep int) bool {
			return dep == id
		})
	}

	delete(s.tasks, id)
	s.order = slices.DeleteFunc(s.order, func(candidate int) bool {
		return candidate == id
	})
	s.notify(ChangeDeleted, id)
}

// SetWorking makes id the only working task.
func (s *Store) SetWorking(id int) error {
	t, err := s.lookup(id)
	if err != nil {
		return err
	}

	for _, other := range s.tasks {
		other.CurrentlyWorking = false
	}
	t.CurrentlyWorking = true
	t.UpdatedAt = s.now()
	s.notify(ChangeWorking, id)
	return nil
}

// ClearWorking leaves no task working.
func (s *Store) ClearWorking() {
	cleared := 0
	for _, t := range s.tasks {
		if t.CurrentlyWorking {
			t.CurrentlyWorking = false
			cleared = t.ID
		}
	}
	s.notify(ChangeWorking, cleared)
}

// ToggleLock flips the task's text lock and returns the new state. The
// working task is rejected with ErrLockWhileWorking and its current state.
func (s *Store) ToggleLock(id int) (bool, error) {
	t, err := s.lookup(id)
	if err != nil {
		return false, err
	}
	if t.CurrentlyWorking {
		return t.TextLocked, fmt.Errorf("%w: %d", ErrLockWhileWorking, id)
	}

	t.TextLocked = !t.TextLocked
	t.UpdatedAt = s.now()
	s.notify(ChangeText, id)
	return t.TextLocked, nil
}

// Expand marks the task's title as expanded for this session.
func (s *Store) Expand(id int) error {
	return s.setExpanded(id, true)
}

// Collapse clears the task's session expansion.
func (s *Store) Collapse(id int) error {
	return s.setExpanded(id, false)
}

func (s *Store) setExpanded(id int, expanded bool) error {
	t, err := s.lookup(id)
	if err != nil {
		return err
	}
	if t.TextExpanded == expanded {
		return nil
	}

	t.TextExpanded = expanded
	s.notify(ChangeText, id)
	return nil
}
