package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/tasktree/internal/taskfile"
	"github.com/amonks/tasktree/task"
)

// loadStore reads the task file for a read-only command.
func loadStore() (*task.Store, error) {
	store, err := taskfile.Load(app.storePath)
	if err != nil {
		return nil, err
	}
	app.logger.Debug("loaded tasks", "store", app.storePath, "count", store.Len())
	return store, nil
}

// mutateStore applies fn to the task file under its lock. Every change the
// store reports is logged.
func mutateStore(fn func(*task.Store) error) error {
	return taskfile.Update(app.storePath, func(store *task.Store) error {
		unsubscribe := store.Subscribe(func(change task.Change) {
			app.logger.Debug("task changed", "kind", change.Kind, "task", change.TaskID)
		})
		defer unsubscribe()
		return fn(store)
	})
}

// parseTaskID accepts "12" or "#12".
func parseTaskID(arg string) (int, error) {
	value := strings.TrimPrefix(strings.TrimSpace(arg), "#")
	id, err := strconv.Atoi(value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func parseTaskIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseTaskID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatTaskRef(t task.Task) string {
	return fmt.Sprintf("#%d %s", t.ID, t.Title)
}
