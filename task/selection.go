package task

import "slices"

// Selection tracks the selected task IDs. Deselecting a task clears its
// session expansion on the store.
type Selection struct {
	store    *Store
	selected map[int]struct{}
}

// NewSelection returns an empty selection bound to store.
func NewSelection(store *Store) *Selection {
	return &Selection{store: store, selected: make(map[int]struct{})}
}

// Select adds id to the selection.
func (sel *Selection) Select(id int) error {
	if _, err := sel.store.lookup(id); err != nil {
		return err
	}
	sel.selected[id] = struct{}{}
	return nil
}

// Deselect removes id from the selection and collapses its title.
func (sel *Selection) Deselect(id int) {
	if _, ok := sel.selected[id]; !ok {
		return
	}
	delete(sel.selected, id)
	// The task may have been deleted while selected.
	_ = sel.store.Collapse(id)
}

// Clear deselects everything.
func (sel *Selection) Clear() {
	for _, id := range sel.IDs() {
		sel.Deselect(id)
	}
}

// IsSelected reports whether id is selected.
func (sel *Selection) IsSelected(id int) bool {
	_, ok := sel.selected[id]
	return ok
}

// IDs returns the selected IDs in ascending order.
func (sel *Selection) IDs() []int {
	ids := make([]int, 0, len(sel.selected))
	for id := range sel.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
