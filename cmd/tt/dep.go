package main

import (
	"errors"
	"fmt"

	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage task dependencies",
}

// dep add
var depAddCmd = &cobra.Command{
	Use:   "add <task-id> <depends-on-id>",
	Short: "Add a dependency between tasks",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepAdd,
}

// dep rm
var depRemoveCmd = &cobra.Command{
	Use:     "rm <task-id> <depends-on-id>",
	Aliases: []string{"remove"},
	Short:   "Remove a dependency between tasks",
	Args:    cobra.ExactArgs(2),
	RunE:    runDepRemove,
}

// dep check
var depCheckCmd = &cobra.Command{
	Use:   "check <task-id> <depends-on-id>",
	Short: "Report whether adding a dependency would create a cycle",
	Long: `Report whether adding a dependency would create a cycle.

Exits with status 1 when the edge would close a cycle.`,
	Args: cobra.ExactArgs(2),
	RunE: runDepCheck,
}

func init() {
	rootCmd.AddCommand(depCmd)
	depCmd.AddCommand(depAddCmd, depRemoveCmd, depCheckCmd)
}

func parseEdgeArgs(args []string) (from, to int, err error) {
	if from, err = parseTaskID(args[0]); err != nil {
		return 0, 0, err
	}
	if to, err = parseTaskID(args[1]); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	from, to, err := parseEdgeArgs(args)
	if err != nil {
		return err
	}

	err = mutateStore(func(store *task.Store) error {
		return store.AddDependencyEdge(from, to)
	})
	if errors.Is(err, task.ErrCycle) {
		return fmt.Errorf("cannot add dependency #%d -> #%d: %w", from, to, err)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added dependency #%d -> #%d\n", from, to)
	return nil
}

func runDepRemove(cmd *cobra.Command, args []string) error {
	from, to, err := parseEdgeArgs(args)
	if err != nil {
		return err
	}

	err = mutateStore(func(store *task.Store) error {
		return store.RemoveDependencyEdge(from, to)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed dependency #%d -> #%d\n", from, to)
	return nil
}

func runDepCheck(cmd *cobra.Command, args []string) error {
	from, to, err := parseEdgeArgs(args)
	if err != nil {
		return err
	}
	store, err := loadStore()
	if err != nil {
		return err
	}

	if task.WouldCreateCycle(store, from, to) {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d -> #%d would create a cycle\n", from, to)
		return &exitError{code: 1}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "#%d -> #%d is safe\n", from, to)
	return nil
}
