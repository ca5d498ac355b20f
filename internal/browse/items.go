package browse

import (
	"fmt"
	"io"

	"github.com/amonks/tasktree/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

const (
	selectedMark   = "*"
	unselectedMark = " "
)

type rowItem struct {
	row      ui.Row
	selected bool
}

func (item rowItem) FilterValue() string {
	return item.row.Line
}

type rowDelegate struct{}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rowItem)
	if !ok {
		return
	}

	line := formatRow(item, m.Width())
	if index == m.Index() {
		line = cursorStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

func formatRow(item rowItem, width int) string {
	mark := unselectedMark
	if item.selected {
		mark = selectedMark
	}
	line := mark + " " + item.row.String()
	if width <= 0 {
		return line
	}
	return truncate.String(line, uint(width))
}
