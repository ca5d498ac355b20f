package main

import (
	"errors"
	"fmt"

	"github.com/amonks/tasktree/internal/ui"
	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Draw the task forest",
	Long: `Draw the task forest.

The working task is marked with '>', its ancestors with '^' and its direct
children with '+'. Long titles are abbreviated unless the task is working,
locked, or selected and expanded for this invocation.`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

var (
	treeSelect    []string
	treeExpand    []string
	treeThreshold int
)

// lock
var lockCmd = &cobra.Command{
	Use:   "lock <id>",
	Short: "Toggle whether a task's title is always shown in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runLock,
}

func init() {
	rootCmd.AddCommand(treeCmd, lockCmd)

	treeCmd.Flags().StringArrayVarP(&treeSelect, "select", "s", nil, "Select a task (repeatable)")
	treeCmd.Flags().StringArrayVarP(&treeExpand, "expand", "e", nil, "Select and expand a task's title (repeatable)")
	treeCmd.Flags().IntVar(&treeThreshold, "threshold", 0, "Title length threshold (default from config)")
}

func runTree(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	selection, err := applyTreeSelection(store, treeSelect, treeExpand)
	if err != nil {
		return err
	}

	threshold := app.threshold
	if cmd.Flags().Changed("threshold") {
		threshold = treeThreshold
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTree(store, selection, threshold))
	return nil
}

// applyTreeSelection selects every id in selected and expanded, and expands
// the titles of the latter. Expansion lives only in the loaded store.
func applyTreeSelection(store *task.Store, selected, expanded []string) (*task.Selection, error) {
	selection := task.NewSelection(store)

	selectIDs, err := parseTaskIDs(selected)
	if err != nil {
		return nil, err
	}
	expandIDs, err := parseTaskIDs(expanded)
	if err != nil {
		return nil, err
	}

	for _, id := range append(selectIDs, expandIDs...) {
		if err := selection.Select(id); err != nil {
			return nil, err
		}
	}
	for _, id := range expandIDs {
		if err := store.Expand(id); err != nil {
			return nil, err
		}
	}
	return selection, nil
}

func renderTree(store *task.Store, selection *task.Selection, threshold int) string {
	if store.Len() == 0 {
		return "No tasks found.\n"
	}
	opts := ui.TreeOptions{
		Threshold: threshold,
		Styles:    app.styles,
	}
	if selection != nil {
		opts.Selected = selection.IsSelected
	}
	return ui.RenderForest(store, opts)
}

func runLock(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	var locked bool
	err = mutateStore(func(store *task.Store) error {
		locked, err = store.ToggleLock(id)
		return err
	})
	if errors.Is(err, task.ErrLockWhileWorking) {
		return fmt.Errorf("#%d is being worked on and is always shown in full: %w", id, err)
	}
	if err != nil {
		return err
	}

	if locked {
		fmt.Fprintf(cmd.OutOrStdout(), "Locked #%d\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Unlocked #%d\n", id)
	}
	return nil
}
