package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/tasktree/internal/listflags"
	"github.com/amonks/tasktree/internal/markdown"
	"github.com/amonks/tasktree/internal/ui"
	"github.com/amonks/tasktree/task"
	"github.com/spf13/cobra"
)

const showWidth = 80

// create
var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Long: `Create a new task.

The task starts as a root with status todo. Use --parent to place it in the
tree and --dep to add dependencies; if any of them fail nothing is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	createParent      string
	createDescription string
	createDeps        []string
)

// update
var updateCmd = &cobra.Command{
	Use:   "update <id>...",
	Short: "Update one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updateStatus      string
)

// delete
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Long: `Delete one or more tasks.

Children of a deleted task become roots and every dependency on it is
removed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

// list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var (
	listFormat = newOutputFormat("table", "table", "json", "yaml")
	listFilter listflags.Filter
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(createCmd, updateCmd, deleteCmd, listCmd, showCmd)

	createCmd.Flags().StringVarP(&createParent, "parent", "p", "", "Parent task id")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	createCmd.Flags().StringArrayVar(&createDeps, "dep", nil, "Task id this task depends on (repeatable)")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description (use '-' to read from stdin)")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status (todo, doing, done)")

	addFormatFlag(listCmd, listFormat)
	listflags.Add(listCmd, &listFilter)

	aliasFlags(map[string]string{"desc": "description"}, createCmd, updateCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	description, err := readDescription(createDescription, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var parentID int
	if createParent != "" {
		if parentID, err = parseTaskID(createParent); err != nil {
			return err
		}
	}
	deps, err := parseTaskIDs(createDeps)
	if err != nil {
		return err
	}

	var created task.Task
	err = mutateStore(func(store *task.Store) error {
		created, err = store.Create(args[0], task.CreateOptions{Description: description})
		if err != nil {
			return err
		}
		if parentID != 0 {
			if err := store.SetParent(created.ID, parentID); err != nil {
				return fmt.Errorf("set parent: %w", err)
			}
		}
		for _, dep := range deps {
			if err := store.AddDependencyEdge(created.ID, dep); err != nil {
				return fmt.Errorf("add dependency: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", formatTaskRef(created))
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	var opts task.UpdateOptions
	flags := cmd.Flags()
	if flags.Changed("title") {
		opts.Title = &updateTitle
	}
	if flags.Changed("description") {
		description, err := readDescription(updateDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		opts.Description = &description
	}
	if flags.Changed("status") {
		status, err := task.ParseStatus(updateStatus)
		if err != nil {
			return err
		}
		opts.Status = &status
	}
	if opts.Title == nil && opts.Description == nil && opts.Status == nil {
		return errors.New("nothing to update (use --title, --description or --status)")
	}

	updated := make([]task.Task, 0, len(ids))
	err = mutateStore(func(store *task.Store) error {
		for _, id := range ids {
			t, err := store.Update(id, opts)
			if err != nil {
				return err
			}
			updated = append(updated, t)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, t := range updated {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", formatTaskRef(t))
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	deleted := make([]task.Task, 0, len(ids))
	err = mutateStore(func(store *task.Store) error {
		for _, id := range ids {
			t, err := store.GetTask(id)
			if err != nil {
				return err
			}
			store.DeleteTask(id)
			deleted = append(deleted, t)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, t := range deleted {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", formatTaskRef(t))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	tasks, err := listFilter.Apply(store.AllTasks())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if ok, err := encodeStructured(out, listFormat.String(), tasks); ok {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return nil
	}
	fmt.Fprint(out, formatTaskTable(tasks, time.Now()))
	return nil
}

func formatTaskTable(tasks []task.Task, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "STATUS", "TITLE", "PARENT", "DEPS", "AGE"}, len(tasks))
	for _, t := range tasks {
		parent := "-"
		if t.MainParent != nil {
			parent = fmt.Sprintf("#%d", *t.MainParent)
		}
		status := string(t.Status)
		if t.CurrentlyWorking {
			status += "*"
		}
		builder.AddRow(
			fmt.Sprintf("#%d", t.ID),
			status,
			ui.TruncateTableCell(t.Title),
			parent,
			formatIDList(t.Dependencies),
			ui.FormatTimeAgo(t.CreatedAt, now),
		)
	}
	return builder.String()
}

func formatIDList(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(refs, ", ")
}

func runShow(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}
	store, err := loadStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	now := time.Now()
	for i, id := range ids {
		t, err := store.GetTask(id)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprint(out, formatTaskDetail(t, now))
	}
	return nil
}

func formatTaskDetail(t task.Task, now time.Time) string {
	var b strings.Builder
	header := app.styles.Header
	fmt.Fprintf(&b, "%s %s\n", header.Render(fmt.Sprintf("#%d", t.ID)), t.Title)
	fmt.Fprintf(&b, "Status:       %s\n", t.Status)
	if t.MainParent != nil {
		fmt.Fprintf(&b, "Parent:       #%d\n", *t.MainParent)
	}
	fmt.Fprintf(&b, "Children:     %s\n", formatIDList(t.Children))
	fmt.Fprintf(&b, "Dependencies: %s\n", formatIDList(t.Dependencies))
	if t.CurrentlyWorking {
		b.WriteString("Working:      yes\n")
	}
	if t.TextLocked {
		b.WriteString("Locked:       yes\n")
	}
	fmt.Fprintf(&b, "Created:      %s\n", ui.FormatTimeAgo(t.CreatedAt, now))
	fmt.Fprintf(&b, "Updated:      %s\n", ui.FormatTimeAgo(t.UpdatedAt, now))

	if description := markdown.Render(showWidth, 2, t.Description); description != "" {
		b.WriteString("\n")
		b.WriteString(description)
		b.WriteString("\n")
	}
	return b.String()
}
