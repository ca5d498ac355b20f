// Package listflags holds the filter flags shared by task listing commands.
package listflags

import (
	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

// Filter selects which tasks a listing shows. Done tasks are hidden unless
// All is set or Status asks for them.
type Filter struct {
	All     bool
	Status  string
	Working bool
}

// Add registers --all, --status and --working on cmd.
func Add(cmd *cobra.Command, filter *Filter) {
	cmd.Flags().BoolVar(&filter.All, "all", false, "Include done tasks")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Only show tasks with this status (todo, doing, done)")
	cmd.Flags().BoolVar(&filter.Working, "working", false, "Only show the task being worked on")
}

// Apply returns the tasks matching filter, keeping their order.
func (filter Filter) Apply(tasks []task.Task) ([]task.Task, error) {
	var status task.Status
	if filter.Status != "" {
		parsed, err := task.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		switch {
		case status != "" && t.Status != status:
			continue
		case status == "" && !filter.All && t.Status.IsDone():
			continue
		case filter.Working && !t.CurrentlyWorking:
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
