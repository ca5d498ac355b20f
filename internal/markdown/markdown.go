// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/tasktree/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

type termRenderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]termRenderer{}
)

// Render formats markdown text for terminal output, wrapped to width and
// indented by indentBy spaces. Blank input renders as "".
func Render(width, indentBy int, input string) string {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(input))
	if strings.TrimSpace(value) == "" {
		return ""
	}
	indentBy = max(indentBy, 0)
	renderWidth := max(width-indentBy, 1)

	rendered, ok := safeRender(markdownRenderer(renderWidth), value)
	if !ok {
		rendered = wordwrap.String(value, renderWidth)
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return ""
	}
	if indentBy == 0 {
		return rendered
	}
	return indent.String(rendered, uint(indentBy))
}

func safeRender(renderer termRenderer, value string) (out string, ok bool) {
	if renderer == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	formatted, err := renderer.Render(value)
	if err != nil {
		return "", false
	}
	return formatted, true
}

func markdownRenderer(width int) termRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}
