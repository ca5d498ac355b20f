package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/amonks/tasktree/internal/ui"
	"github.com/amonks/tasktree/task"
)

const longTitle = "Refactor the storage layer so that every write goes through one locked code path"

func newTreeStore(t *testing.T) *task.Store {
	t.Helper()

	store := task.NewStore()
	for _, title := range []string{longTitle, "Short title"} {
		if _, err := store.Create(title, task.CreateOptions{}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	return store
}

func TestApplyTreeSelection_ExpandSelects(t *testing.T) {
	store := newTreeStore(t)

	selection, err := applyTreeSelection(store, []string{"2"}, []string{"#1"})
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	if !selection.IsSelected(1) || !selection.IsSelected(2) {
		t.Fatalf("expected both tasks selected, got %v", selection.IDs())
	}

	expanded, err := store.GetTask(1)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if !expanded.TextExpanded {
		t.Fatal("expected task 1 expanded")
	}
	plain, _ := store.GetTask(2)
	if plain.TextExpanded {
		t.Fatal("expected task 2 not expanded")
	}
}

func TestApplyTreeSelection_MissingTask(t *testing.T) {
	store := newTreeStore(t)

	_, err := applyTreeSelection(store, nil, []string{"9"})
	if !errors.Is(err, task.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRenderTree_ExpansionRequiresSelection(t *testing.T) {
	app.styles = ui.PlainStyles()
	store := newTreeStore(t)

	out := renderTree(store, nil, 0)
	if strings.Contains(out, longTitle) {
		t.Fatalf("expected truncated title, got:\n%s", out)
	}
	if !strings.Contains(out, "goes throu... #1") {
		t.Fatalf("expected ellipsis, got:\n%s", out)
	}

	selection, err := applyTreeSelection(store, nil, []string{"1"})
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	out = renderTree(store, selection, 0)
	if !strings.Contains(out, longTitle+" #1") {
		t.Fatalf("expected full title, got:\n%s", out)
	}

	selection.Deselect(1)
	out = renderTree(store, selection, 0)
	if strings.Contains(out, longTitle) {
		t.Fatalf("expected deselection to collapse title, got:\n%s", out)
	}
}

func TestRenderTree_Empty(t *testing.T) {
	app.styles = ui.PlainStyles()
	if got := renderTree(task.NewStore(), nil, 0); got != "No tasks found.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
