package task

import (
	"fmt"
	"slices"
)

// ChildState is a direct child of the working task.
type ChildState struct {
	ID     int  `json:"id" yaml:"id"`
	IsDone bool `json:"is_done" yaml:"is_done"`
}

// WorkingPath is the golden path: the working task, its ancestors up to
// the root, and its direct children.
type WorkingPath struct {
	// WorkingTaskID is nil when no task is working.
	WorkingTaskID *int `json:"working_task_id" yaml:"working_task_id"`

	// AncestorPath starts with the working task and ends at its root.
	AncestorPath []int `json:"ancestor_path" yaml:"ancestor_path"`

	// DirectChildren follows the working task's Children order.
	DirectChildren []ChildState `json:"direct_children" yaml:"direct_children"`
}

func emptyWorkingPath() WorkingPath {
	return WorkingPath{AncestorPath: []int{}, DirectChildren: []ChildState{}}
}

// OnPath reports whether id is the working task or one of its ancestors.
func (p WorkingPath) OnPath(id int) bool {
	return slices.Contains(p.AncestorPath, id)
}

// IsChild reports whether id is a direct child of the working task.
func (p WorkingPath) IsChild(id int) bool {
	for _, child := range p.DirectChildren {
		if child.ID == id {
			return true
		}
	}
	return false
}

// ResolveWorkingPath derives the golden path from r. When the records
// break an invariant (several working tasks, a parent loop) it returns the
// empty path together with ErrInvariantViolation.
func ResolveWorkingPath(r Reader) (WorkingPath, error) {
	var working *Task
	for _, t := range r.AllTasks() {
		if !t.CurrentlyWorking {
			continue
		}
		if working != nil {
			return emptyWorkingPath(), fmt.Errorf("%w: tasks %d and %d are both working", ErrInvariantViolation, working.ID, t.ID)
		}
		working = &t
	}
	if working == nil {
		return emptyWorkingPath(), nil
	}

	path := WorkingPath{
		WorkingTaskID: IDPtr(working.ID),
		AncestorPath:  []int{working.ID},
	}
	visited := map[int]bool{working.ID: true}
	for parentID := working.MainParent; parentID != nil; {
		if visited[*parentID] {
			return emptyWorkingPath(), fmt.Errorf("%w: parent loop through task %d", ErrInvariantViolation, *parentID)
		}
		visited[*parentID] = true
		path.AncestorPath = append(path.AncestorPath, *parentID)

		parent, err := r.GetTask(*parentID)
		if err != nil {
			break
		}
		parentID = parent.MainParent
	}

	path.DirectChildren = make([]ChildState, 0, len(working.Children))
	for _, childID := range working.Children {
		child, err := r.GetTask(childID)
		path.DirectChildren = append(path.DirectChildren, ChildState{
			ID:     childID,
			IsDone: err == nil && child.Status.IsDone(),
		})
	}
	return path, nil
}

// WorkingTaskPath is ResolveWorkingPath for render passes: an invariant
// violation yields the empty path.
func WorkingTaskPath(r Reader) WorkingPath {
	path, err := ResolveWorkingPath(r)
	if err != nil {
		return emptyWorkingPath()
	}
	return path
}
