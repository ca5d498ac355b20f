package ui

import (
	"fmt"
	"strings"

	"github.com/amonks/tasktree/task"
)

// TreeOptions configures RenderForest.
type TreeOptions struct {
	// Threshold is the title length threshold passed to task.DisplayTitle.
	Threshold int

	// Selected reports whether a task is selected. Nil means nothing is.
	Selected func(id int) bool

	Styles Styles
}

// Golden path markers, printed before the status icon.
const (
	markWorking  = ">"
	markAncestor = "^"
	markChild    = "+"
	markNone     = " "
)

// Row is one line of a rendered forest.
type Row struct {
	ID int

	// Prefix holds the box connectors leading up to Line.
	Prefix string
	Line   string
}

func (row Row) String() string {
	return row.Prefix + row.Line
}

// RenderForest draws every tree of r with box connectors, highlighting the
// golden path and abbreviating titles per the text visibility rules.
func RenderForest(r task.Reader, opts TreeOptions) string {
	var b strings.Builder
	for _, row := range ForestRows(r, opts) {
		b.WriteString(row.String())
		b.WriteString("\n")
	}
	return b.String()
}

// ForestRows returns the lines RenderForest draws, roots in creation order
// and each task followed by its subtree.
func ForestRows(r task.Reader, opts TreeOptions) []Row {
	tasks := r.AllTasks()
	byID := make(map[int]task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	renderer := forestRenderer{
		byID:    byID,
		path:    task.WorkingTaskPath(r),
		opts:    opts,
		visited: make(map[int]bool, len(tasks)),
		rows:    make([]Row, 0, len(tasks)),
	}
	if renderer.opts.Selected == nil {
		renderer.opts.Selected = func(int) bool { return false }
	}

	for _, t := range tasks {
		if t.MainParent != nil {
			if _, ok := byID[*t.MainParent]; ok {
				continue
			}
		}
		renderer.node(t, "", true, true)
	}
	return renderer.rows
}

type forestRenderer struct {
	byID    map[int]task.Task
	path    task.WorkingPath
	opts    TreeOptions
	visited map[int]bool
	rows    []Row
}

func (fr *forestRenderer) node(t task.Task, prefix string, isLast, isRoot bool) {
	if fr.visited[t.ID] {
		return
	}
	fr.visited[t.ID] = true

	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if isRoot {
		connector = ""
	}

	fr.rows = append(fr.rows, Row{ID: t.ID, Prefix: prefix + connector, Line: fr.line(t)})

	childPrefix := prefix
	if !isRoot {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	children := make([]task.Task, 0, len(t.Children))
	for _, id := range t.Children {
		if child, ok := fr.byID[id]; ok && !fr.visited[id] {
			children = append(children, child)
		}
	}
	for i, child := range children {
		fr.node(child, childPrefix, i == len(children)-1, false)
	}
}

func (fr *forestRenderer) line(t task.Task) string {
	styles := fr.opts.Styles
	title := task.DisplayTitle(t, fr.opts.Threshold, fr.opts.Selected(t.ID))

	mark := markNone
	switch {
	case t.CurrentlyWorking:
		mark = markWorking
		title = styles.Working.Render(title)
	case fr.path.OnPath(t.ID):
		mark = markAncestor
		title = styles.Ancestor.Render(title)
	case fr.path.IsChild(t.ID):
		mark = markChild
		if t.Status.IsDone() {
			title = styles.Done.Render(title)
		} else {
			title = styles.Child.Render(title)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s", mark, StatusIcon(t.Status), title, styles.Muted.Render(fmt.Sprintf("#%d", t.ID)))
	if t.TextLocked {
		b.WriteString(styles.Muted.Render(" [locked]"))
	}
	if len(t.Dependencies) > 0 {
		deps := make([]string, len(t.Dependencies))
		for i, dep := range t.Dependencies {
			deps[i] = fmt.Sprintf("#%d", dep)
		}
		b.WriteString(styles.Muted.Render(" -> " + strings.Join(deps, ", ")))
	}
	return b.String()
}

// StatusIcon returns an icon for the status.
func StatusIcon(s task.Status) string {
	switch s {
	case task.StatusTodo:
		return "[ ]"
	case task.StatusDoing:
		return "[~]"
	case task.StatusDone:
		return "[x]"
	default:
		return "[?]"
	}
}
