// Package browse is an interactive terminal view of the task forest. It
// keeps a session selection, so titles can be expanded while browsing
// without changing the task file.
package browse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/tasktree/internal/markdown"
	"github.com/amonks/tasktree/internal/ui"
	"github.com/amonks/tasktree/task"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a browsing session.
type Options struct {
	// Threshold is the title length threshold.
	Threshold int

	Styles ui.Styles

	// Mutate applies a persistent change to the task file. The same change
	// is then applied to the session's store. Nil keeps changes in memory.
	Mutate func(fn func(*task.Store) error) error

	// Reload reads the task file again. Nil disables reloading.
	Reload func() (*task.Store, error)
}

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type model struct {
	store       *task.Store
	selection   *task.Selection
	opts        Options
	width       int
	height      int
	rows        list.Model
	detail      viewport.Model
	currentID   int
	showHelp    bool
	status      string
	statusLevel statusLevel
}

// Run browses store until the user quits or ctx is done.
func Run(ctx context.Context, store *task.Store, opts Options) error {
	if store == nil {
		return errors.New("task store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func newModel(store *task.Store, opts Options) model {
	rows := list.New(nil, rowDelegate{}, 0, 0)
	rows.Title = "Tasks"
	rows.SetShowStatusBar(false)
	rows.SetFilteringEnabled(false)
	rows.SetShowHelp(false)
	rows.SetShowPagination(false)

	m := model{
		store:     store,
		selection: task.NewSelection(store),
		opts:      opts,
		rows:      rows,
		detail:    viewport.New(0, 0),
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		updated, cmd := m.handleKey(msg.String())
		return updated, cmd
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m model) handleKey(key string) (model, tea.Cmd) {
	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "home", "g":
		m.moveCursor(-len(m.rows.Items()))
	case "end", "G":
		m.moveCursor(len(m.rows.Items()))
	case "s":
		m.toggleSelected()
	case "e":
		m.toggleExpanded()
	case "l":
		m.toggleLock()
	case "w":
		m.startWork()
	case "W":
		m.stopWork()
	case "esc":
		m.selection.Clear()
		m.setStatus("Selection cleared", statusInfo)
		m.refresh()
	case "r":
		m.reload()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(tea.KeyMsg(tea.Key{Type: keyType(key)}))
		return m, cmd
	}
	return m, nil
}

func keyType(key string) tea.KeyType {
	if key == "pgup" {
		return tea.KeyPgUp
	}
	return tea.KeyPgDown
}

func (m *model) moveCursor(delta int) {
	items := m.rows.Items()
	if len(items) == 0 {
		return
	}
	next := min(max(m.rows.Index()+delta, 0), len(items)-1)
	m.rows.Select(next)
	if item, ok := items[next].(rowItem); ok {
		m.currentID = item.row.ID
	}
	m.refreshDetail()
}

func (m *model) toggleSelected() {
	id := m.currentID
	if id == 0 {
		return
	}
	if m.selection.IsSelected(id) {
		m.selection.Deselect(id)
	} else if err := m.selection.Select(id); err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.refresh()
}

// toggleExpanded selects the current task when needed, since expansion only
// shows on selected tasks.
func (m *model) toggleExpanded() {
	id := m.currentID
	if id == 0 {
		return
	}
	t, err := m.store.GetTask(id)
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}

	if t.TextExpanded && m.selection.IsSelected(id) {
		err = m.store.Collapse(id)
	} else {
		if err = m.selection.Select(id); err == nil {
			err = m.store.Expand(id)
		}
	}
	if err != nil {
		m.setStatus(err.Error(), statusError)
		return
	}
	m.refresh()
}

func (m *model) toggleLock() {
	id := m.currentID
	if id == 0 {
		return
	}
	var locked bool
	err := m.apply(func(store *task.Store) error {
		var err error
		locked, err = store.ToggleLock(id)
		return err
	})
	switch {
	case errors.Is(err, task.ErrLockWhileWorking):
		m.setStatus(fmt.Sprintf("#%d is being worked on and is always shown in full", id), statusError)
	case err != nil:
		m.setStatus(err.Error(), statusError)
	case locked:
		m.setStatus(fmt.Sprintf("Locked #%d", id), statusInfo)
	default:
		m.setStatus(fmt.Sprintf("Unlocked #%d", id), statusInfo)
	}
	m.refresh()
}

func (m *model) startWork() {
	id := m.currentID
	if id == 0 {
		return
	}
	err := m.apply(func(store *task.Store) error {
		return store.SetWorking(id)
	})
	if err != nil {
		m.setStatus(err.Error(), statusError)
	} else {
		m.setStatus(fmt.Sprintf("Working on #%d", id), statusInfo)
	}
	m.refresh()
}

func (m *model) stopWork() {
	err := m.apply(func(store *task.Store) error {
		store.ClearWorking()
		return nil
	})
	if err != nil {
		m.setStatus(err.Error(), statusError)
	} else {
		m.setStatus("Stopped working", statusInfo)
	}
	m.refresh()
}

// apply runs fn against the task file and then against the session store.
// When the two disagree the session store is reloaded.
func (m *model) apply(fn func(*task.Store) error) error {
	if m.opts.Mutate != nil {
		if err := m.opts.Mutate(fn); err != nil {
			return err
		}
	}
	if err := fn(m.store); err != nil {
		if m.opts.Mutate == nil {
			return err
		}
		m.reload()
	}
	return nil
}

// reload replaces the session store, keeping the selection and expansion
// of tasks that still exist.
func (m *model) reload() {
	if m.opts.Reload == nil {
		return
	}
	store, err := m.opts.Reload()
	if err != nil {
		m.setStatus(fmt.Sprintf("Reload failed: %v", err), statusError)
		return
	}

	selection := task.NewSelection(store)
	for _, id := range m.selection.IDs() {
		if selection.Select(id) != nil {
			continue
		}
		if previous, err := m.store.GetTask(id); err == nil && previous.TextExpanded {
			_ = store.Expand(id)
		}
	}
	m.store = store
	m.selection = selection
	m.setStatus(fmt.Sprintf("Reloaded %d tasks", store.Len()), statusInfo)
	m.refresh()
}

func (m *model) refresh() {
	forest := ui.ForestRows(m.store, ui.TreeOptions{
		Threshold: m.opts.Threshold,
		Selected:  m.selection.IsSelected,
		Styles:    m.opts.Styles,
	})

	items := make([]list.Item, 0, len(forest))
	cursor := 0
	for i, row := range forest {
		items = append(items, rowItem{row: row, selected: m.selection.IsSelected(row.ID)})
		if row.ID == m.currentID {
			cursor = i
		}
	}
	m.rows.SetItems(items)
	if len(items) == 0 {
		m.currentID = 0
	} else {
		m.rows.Select(cursor)
		m.currentID = forest[cursor].ID
	}
	m.refreshDetail()
}

func (m *model) refreshDetail() {
	t, err := m.store.GetTask(m.currentID)
	if err != nil {
		m.detail.SetContent(valueMuted.Render("No task selected."))
		return
	}
	m.detail.SetContent(m.formatDetail(t))
	m.detail.GotoTop()
}

func (m model) formatDetail(t task.Task) string {
	path := task.WorkingTaskPath(m.store)
	selected := m.selection.IsSelected(t.ID)

	lines := []string{
		labelStyle.Render(fmt.Sprintf("#%d", t.ID)) + " " + t.Title,
		"",
		field("Status", string(t.Status)),
		field("Parent", formatParent(t.MainParent)),
		field("Children", formatIDs(t.Children)),
		field("Dependencies", formatIDs(t.Dependencies)),
		field("Golden path", goldenPathRole(path, t.ID)),
		field("Title", titleVisibility(t, m.opts.Threshold, selected)),
	}

	width := m.detail.Width
	if width <= 0 {
		width = 60
	}
	if description := markdown.Render(width, 0, t.Description); description != "" {
		lines = append(lines, "", description)
	}
	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return labelStyle.Render(label+":") + " " + value
}

func formatParent(parent *int) string {
	if parent == nil {
		return "-"
	}
	return fmt.Sprintf("#%d", *parent)
}

func formatIDs(ids []int) string {
	if len(ids) == 0 {
		return "-"
	}
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(refs, ", ")
}

func goldenPathRole(path task.WorkingPath, id int) string {
	switch {
	case path.WorkingTaskID != nil && *path.WorkingTaskID == id:
		return "working"
	case path.OnPath(id):
		return "ancestor"
	case path.IsChild(id):
		return "child"
	default:
		return "-"
	}
}

func titleVisibility(t task.Task, threshold int, selected bool) string {
	switch {
	case t.CurrentlyWorking:
		return "full (working)"
	case t.TextLocked:
		return "full (locked)"
	case task.IsExpanded(t, selected):
		return "full (expanded)"
	case task.IsTruncated(t, threshold, selected):
		return "abbreviated"
	default:
		return "full"
	}
}

func (m *model) resize() {
	contentHeight := max(m.height-2, 1)
	leftWidth, rightWidth := splitWidths(m.width)
	m.rows.SetSize(max(leftWidth-4, 1), max(contentHeight-2, 1))
	m.detail.Width = max(rightWidth-4, 1)
	m.detail.Height = max(contentHeight-2, 1)
	m.refreshDetail()
}

func splitWidths(width int) (int, int) {
	left := width * 3 / 5
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading tasks..."
	}
	if m.showHelp {
		modal := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2).Render(helpContent())
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	contentHeight := max(m.height-2, 1)
	leftWidth, rightWidth := splitWidths(m.width)
	content := lipgloss.JoinHorizontal(lipgloss.Top,
		paneActiveStyle.Width(max(leftWidth-2, 0)).Height(max(contentHeight-2, 0)).Render(m.rowsView()),
		paneStyle.Width(max(rightWidth-2, 0)).Height(max(contentHeight-2, 0)).Render(m.detail.View()),
	)
	return strings.Join([]string{m.renderHeader(), content, m.renderStatusLine()}, "\n")
}

func (m model) rowsView() string {
	if len(m.rows.Items()) == 0 {
		return valueMuted.Render("No tasks found.")
	}
	return m.rows.View()
}

func (m model) renderHeader() string {
	title := titleStyle.Render("tasktree")
	hint := valueMuted.Render("Press ? for help")
	spacer := strings.Repeat(" ", max(m.width-lipgloss.Width(title)-lipgloss.Width(hint), 1))
	return headerStyle.Width(m.width).Render(title + spacer + hint)
}

func (m model) renderStatusLine() string {
	switch m.statusLevel {
	case statusError:
		return statusErrorStyle.Render(m.status)
	case statusInfo:
		return statusSuccessStyle.Render(m.status)
	default:
		return valueMuted.Render(m.status)
	}
}

func helpContent() string {
	sections := []string{
		labelStyle.Render("Navigation"),
		"up/down or j/k: move",
		"home/end or g/G: first/last task",
		"pgup/pgdown: scroll detail",
		"",
		labelStyle.Render("Session"),
		"s: select or deselect",
		"e: expand or collapse the title",
		"esc: clear selection",
		"r: reload the task file",
		"",
		labelStyle.Render("Task file"),
		"l: lock or unlock the title",
		"w: work on task",
		"W: stop working",
		"",
		"q or ctrl+c: quit, ? or esc: close help",
	}
	return strings.Join(sections, "\n")
}
