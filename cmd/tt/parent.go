package main

import (
	"fmt"

	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

var parentCmd = &cobra.Command{
	Use:   "parent",
	Short: "Move tasks within the tree",
}

// parent set
var parentSetCmd = &cobra.Command{
	Use:   "set <id> <parent-id>",
	Short: "Move a task under a new parent",
	Args:  cobra.ExactArgs(2),
	RunE:  runParentSet,
}

// parent clear
var parentClearCmd = &cobra.Command{
	Use:   "clear <id>...",
	Short: "Make tasks roots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParentClear,
}

func init() {
	rootCmd.AddCommand(parentCmd)
	parentCmd.AddCommand(parentSetCmd, parentClearCmd)
}

func runParentSet(cmd *cobra.Command, args []string) error {
	id, parentID, err := parseEdgeArgs(args)
	if err != nil {
		return err
	}

	err = mutateStore(func(store *task.Store) error {
		return store.SetParent(id, parentID)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Moved #%d under #%d\n", id, parentID)
	return nil
}

func runParentClear(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	err = mutateStore(func(store *task.Store) error {
		for _, id := range ids {
			if err := store.ClearParent(id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d is now a root\n", id)
	}
	return nil
}
