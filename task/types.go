// Package task implements the graph engine behind the task tree.
//
// Tasks form a forest through MainParent/Children and a second directed
// acyclic graph through Dependencies. The Store owns both edge sets and
// rejects any mutation that would introduce a cycle. Derived state is
// computed by pure functions over a Reader:
//   - WouldCreateCycle guards dependency edges
//   - ResolveWorkingPath and WorkingTaskPath compute the golden path
//   - IsExpanded, IsTruncated and DisplayTitle decide how a title is shown
package task

// Status represents the state of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusDoing indicates the task is underway.
	StatusDoing Status = "doing"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsDone returns true when the status counts as complete.
func (s Status) IsDone() bool {
	return s == StatusDone
}

// MaxTitleLength is the maximum allowed length for a task title.
const MaxTitleLength = 500

// DefaultTextLengthThreshold is the title length past which titles are
// abbreviated unless expanded.
const DefaultTextLengthThreshold = 60

// truncationSlack is how far past the threshold a title may run before it
// is abbreviated.
const truncationSlack = 5
