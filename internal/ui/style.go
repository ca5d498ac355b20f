package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode name.
func ParseColorMode(value string) (ColorMode, error) {
	switch mode := ColorMode(value); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (valid: auto, always, never)", value)
	}
}

// Styles holds the lipgloss styles used for task output.
type Styles struct {
	Working  lipgloss.Style
	Ancestor lipgloss.Style
	Child    lipgloss.Style
	Done     lipgloss.Style
	Muted    lipgloss.Style
	Header   lipgloss.Style
	Error    lipgloss.Style
}

// NewStyles builds styles rendering to w under mode.
func NewStyles(mode ColorMode, w io.Writer) Styles {
	renderer := lipgloss.NewRenderer(w)
	switch mode {
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI256)
	default:
		if !ansiEnabled(w) {
			renderer.SetColorProfile(termenv.Ascii)
		}
	}

	return Styles{
		Working:  renderer.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Bold(true),
		Ancestor: renderer.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		Child:    renderer.NewStyle().Foreground(lipgloss.Color("214")),
		Done:     renderer.NewStyle().Foreground(lipgloss.Color("2")),
		Muted:    renderer.NewStyle().Foreground(lipgloss.Color("244")),
		Header:   renderer.NewStyle().Bold(true),
		Error:    renderer.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// PlainStyles returns styles that never emit escape codes.
func PlainStyles() Styles {
	return NewStyles(ColorNever, io.Discard)
}

func ansiEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
