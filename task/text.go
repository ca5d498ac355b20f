package task

import (
	"unicode/utf8"

	"github.com/muesli/reflow/truncate"
)

const titleEllipsis = "..."

// IsExpanded reports whether the task's title is shown in full regardless
// of its length. Working and locked tasks are always expanded; a session
// expansion only counts while the task is selected.
func IsExpanded(t Task, selected bool) bool {
	return t.CurrentlyWorking || t.TextLocked || (t.TextExpanded && selected)
}

// IsTruncated reports whether the task's title is abbreviated. Titles
// within truncationSlack characters of the threshold are never cut.
func IsTruncated(t Task, threshold int, selected bool) bool {
	if IsExpanded(t, selected) {
		return false
	}
	return utf8.RuneCountInString(t.Title)-normalizeThreshold(threshold) > truncationSlack
}

// DisplayTitle returns the title as it should be rendered.
func DisplayTitle(t Task, threshold int, selected bool) string {
	if !IsTruncated(t, threshold, selected) {
		return t.Title
	}
	return truncate.StringWithTail(t.Title, uint(normalizeThreshold(threshold)), titleEllipsis)
}

func normalizeThreshold(threshold int) int {
	if threshold < 1 {
		return DefaultTextLengthThreshold
	}
	return threshold
}
