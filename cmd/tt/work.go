package main

import (
	"fmt"

	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Choose the task being worked on",
}

// work start
var workStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Mark a task as the one being worked on",
	Long: `Mark a task as the one being worked on.

Any previously working task is released. A todo task moves to doing.`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkStart,
}

// work stop
var workStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop working on the current task",
	Args:  cobra.NoArgs,
	RunE:  runWorkStop,
}

func init() {
	rootCmd.AddCommand(workCmd)
	workCmd.AddCommand(workStartCmd, workStopCmd)
}

func runWorkStart(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	var started task.Task
	err = mutateStore(func(store *task.Store) error {
		if err := store.SetWorking(id); err != nil {
			return err
		}
		started, err = store.GetTask(id)
		if err != nil {
			return err
		}
		if started.Status == task.StatusTodo {
			doing := task.StatusDoing
			started, err = store.Update(id, task.UpdateOptions{Status: &doing})
		}
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Working on %s\n", formatTaskRef(started))
	return nil
}

func runWorkStop(cmd *cobra.Command, args []string) error {
	var stopped *task.Task
	err := mutateStore(func(store *task.Store) error {
		path, err := task.ResolveWorkingPath(store)
		if err != nil {
			app.logger.Warn("working path", "error", err)
		} else if path.WorkingTaskID != nil {
			t, err := store.GetTask(*path.WorkingTaskID)
			if err != nil {
				return err
			}
			stopped = &t
		}
		store.ClearWorking()
		return nil
	})
	if err != nil {
		return err
	}

	if stopped == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No task is being worked on.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped working on %s\n", formatTaskRef(*stopped))
	return nil
}
