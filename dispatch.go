package main

// ---------------------------------------------------------------------------
// Shared dispatch table: single source of truth for overlay priority
// ---------------------------------------------------------------------------
//
// Two consumers read this table:
//   - Update (update.go)       — finds the active handler for a tea.KeyMsg
//   - footerScope (render.go)  — finds the active scope for footer hints
//
// Adding a new overlay/modal: add one entry in the correct priority
// position and both consumers stay in sync.

import tea "github.com/charmbracelet/bubbletea"

// overlayEntry defines one level in the overlay precedence chain.
// Guard returns true when this overlay is active. Scope is the
// keybinding scope while it is. Handler dispatches tea.KeyMsg to the
// overlay's update function.
type overlayEntry struct {
	name    string
	guard   func(m model) bool
	scope   func(m model) string
	handler func(m model, msg tea.KeyMsg) (tea.Model, tea.Cmd)
}

// overlayPrecedence returns the authoritative overlay priority table,
// ordered highest to lowest. The first matching guard wins. This is a
// function (not a package var) to avoid Go initialization cycles.
func overlayPrecedence() []overlayEntry {
	return []overlayEntry{
		{
			name:    "command",
			guard:   func(m model) bool { return m.commandOpen },
			scope:   func(m model) string { return scopeCommandPalette },
			handler: func(m model, msg tea.KeyMsg) (tea.Model, tea.Cmd) { return m.updateCommandPalette(msg) },
		},
		{
			name:    "bookmarkSave",
			guard:   func(m model) bool { return m.saveOpen },
			scope:   func(m model) string { return scopeBookmarkSave },
			handler: func(m model, msg tea.KeyMsg) (tea.Model, tea.Cmd) { return m.updateBookmarkSave(msg) },
		},
		{
			name:    "bookmarkPicker",
			guard:   func(m model) bool { return m.pickerOpen },
			scope:   func(m model) string { return scopeBookmarkPicker },
			handler: func(m model, msg tea.KeyMsg) (tea.Model, tea.Cmd) { return m.updateBookmarkPicker(msg) },
		},
	}
}

// activeOverlay returns the highest-priority active overlay, or nil.
func activeOverlay(m model) *overlayEntry {
	entries := overlayPrecedence()
	for i := range entries {
		if entries[i].guard(m) {
			return &entries[i]
		}
	}
	return nil
}

// footerScope resolves the scope whose bindings the footer shows.
func footerScope(m model) string {
	if e := activeOverlay(m); e != nil {
		return e.scope(m)
	}
	return scopeFigure
}
