package main

import (
	"fmt"
	"io"

	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the working task, its ancestors and its direct children",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

var pathFormat = newOutputFormat("text", "text", "json", "yaml")

func init() {
	rootCmd.AddCommand(pathCmd)
	addFormatFlag(pathCmd, pathFormat)
}

func runPath(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	path, err := task.ResolveWorkingPath(store)
	if err != nil {
		app.logger.Warn("working path unavailable", "error", err)
	}

	out := cmd.OutOrStdout()
	if ok, err := encodeStructured(out, pathFormat.String(), path); ok {
		return err
	}
	writeWorkingPath(out, store, path)
	return nil
}

func writeWorkingPath(w io.Writer, r task.Reader, path task.WorkingPath) {
	if path.WorkingTaskID == nil {
		fmt.Fprintln(w, "No task is being worked on.")
		return
	}

	describe := func(id int) string {
		t, err := r.GetTask(id)
		if err != nil {
			return fmt.Sprintf("#%d (missing)", id)
		}
		return formatTaskRef(t)
	}

	fmt.Fprintf(w, "Working: %s\n", describe(*path.WorkingTaskID))
	for _, id := range path.AncestorPath[1:] {
		fmt.Fprintf(w, "  ^ %s\n", describe(id))
	}
	for _, child := range path.DirectChildren {
		icon := "[ ]"
		if child.IsDone {
			icon = "[x]"
		}
		fmt.Fprintf(w, "  + %s %s\n", icon, describe(child.ID))
	}
}
