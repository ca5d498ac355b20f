package task

import (
	"slices"
	"time"
)

// Task is a single node of the task forest.
type Task struct {
	// ID is a unique identifier assigned by the store. It never changes.
	ID int `json:"id" yaml:"id"`

	// Title is the short summary of the task (max 500 bytes).
	Title string `json:"title" yaml:"title"`

	// Description provides additional context, rendered as markdown.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Status is the current state of the task.
	Status Status `json:"status" yaml:"status"`

	// MainParent is the single tree edge (nil for roots).
	MainParent *int `json:"main_parent,omitempty" yaml:"main_parent,omitempty"`

	// Children lists the tasks whose MainParent is this task, in order.
	Children []int `json:"children,omitempty" yaml:"children,omitempty"`

	// Dependencies lists the tasks this task depends on.
	Dependencies []int `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// CurrentlyWorking marks the single in-focus task.
	CurrentlyWorking bool `json:"currently_working,omitempty" yaml:"currently_working,omitempty"`

	// TextExpanded is session-local and cleared on deselection.
	TextExpanded bool `json:"-" yaml:"-"`

	// TextLocked forces the title to always render in full.
	TextLocked bool `json:"text_locked,omitempty" yaml:"text_locked,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	if t.MainParent != nil {
		parent := *t.MainParent
		t.MainParent = &parent
	}
	t.Children = slices.Clone(t.Children)
	t.Dependencies = slices.Clone(t.Dependencies)
	return t
}

// HasParent reports whether the task has a tree parent.
func (t Task) HasParent() bool {
	return t.MainParent != nil
}

// DependsOn reports whether id is one of the task's dependencies.
func (t Task) DependsOn(id int) bool {
	return slices.Contains(t.Dependencies, id)
}

// IDPtr returns a pointer to the provided id.
func IDPtr(id int) *int {
	return &id
}
