package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/plotnav/internal/config"
	"github.com/jask/plotnav/nav"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		m.picker.SetSize(min(msg.Width-8, 48), min(msg.Height-8, 14))
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case bookmarkSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(fmt.Sprintf("bookmark %q saved", msg.name))
		}
		return m, nil

	case bookmarksLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.items))
		for _, b := range msg.items {
			items = append(items, bookmarkItem{id: b.ID, name: b.Name, created: b.CreatedAt})
		}
		m.picker.SetItems(items)
		m.pickerOpen = true
		return m, nil

	case bookmarkLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.applyBookmark(msg.bookmark)
		m.setStatus(fmt.Sprintf("bookmark %q applied", msg.bookmark.Name))
		return m, nil

	case bookmarkDeletedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		return m, m.loadBookmarksCmd()

	case configSavedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("settings saved")
		}
		return m, nil
	}

	return m, nil
}

// ---------------------------------------------------------------------------
// Keyboard
// ---------------------------------------------------------------------------

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if e := activeOverlay(m); e != nil {
		return e.handler(m, msg)
	}
	return m.updateFigureKey(msg)
}

func (m model) updateFigureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyName := normalizeKeyName(msg.String())
	b := m.keys.Lookup(keyName, scopeFigure)
	if b == nil {
		return m, nil
	}

	switch b.Action {
	case actionQuit:
		return m, tea.Quit
	case actionCommandPalette:
		m.openCommandPalette()
	case actionZoomTool:
		m.triggerTool("zoom", nav.Event{Key: keyName})
	case actionPanTool:
		m.triggerTool("pan", nav.Event{Key: keyName})
	case actionHome:
		m.triggerTool("home", nav.Event{Key: keyName})
	case actionBack:
		m.triggerTool("back", nav.Event{Key: keyName})
	case actionForward:
		m.triggerTool("forward", nav.Event{Key: keyName})
	case actionNavAll:
		m.triggerTool("nav_all", nav.Event{Key: keyName})
	case actionNavOne:
		m.triggerTool("nav_one", nav.Event{Key: keyName})
	case actionConstrainX:
		m.toggleConstraint("x")
	case actionConstrainY:
		m.toggleConstraint("y")
	case actionSaveBookmark:
		m.openBookmarkSave()
	case actionOpenBookmarks:
		return m, m.loadBookmarksCmd()
	}
	return m, nil
}

// toggleConstraint flips a held axis-constraint key. Terminals deliver
// no key-release events, so the second press of the same key stands in
// for releasing it.
func (m *model) toggleConstraint(axis string) {
	if m.constraint == axis {
		m.constraint = ""
		m.ctrl.HandleEvent(nav.Event{Type: nav.EventKeyRelease, Key: axis})
		m.setStatus("")
		return
	}
	m.constraint = axis
	m.ctrl.HandleEvent(nav.Event{Type: nav.EventKeyPress, Key: axis})
	m.setStatus(strings.ToUpper(axis) + " axis only")
}

// ---------------------------------------------------------------------------
// Mouse
// ---------------------------------------------------------------------------

func (m model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Overlays own the screen; the figure ignores pointer input while
	// one is open.
	if activeOverlay(m) != nil {
		return m, nil
	}

	ev := nav.Event{
		Button: mouseButton(msg.Button),
		Key:    m.constraint,
		X:      msg.X,
		Y:      msg.Y,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Type = nav.EventPress
	case tea.MouseActionRelease:
		ev.Type = nav.EventRelease
	case tea.MouseActionMotion:
		ev.Type = nav.EventMove
	default:
		return m, nil
	}

	m.ctrl.HandleEvent(ev)
	return m, nil
}

func mouseButton(b tea.MouseButton) nav.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return nav.Button1
	case tea.MouseButtonMiddle:
		return nav.Button2
	case tea.MouseButtonRight:
		return nav.Button3
	default:
		return nav.ButtonNone
	}
}

// ---------------------------------------------------------------------------
// Bookmark save modal
// ---------------------------------------------------------------------------

func (m *model) openBookmarkSave() {
	m.saveOpen = true
	m.saveInput.SetValue("")
	m.saveInput.Focus()
}

func (m model) updateBookmarkSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyName := normalizeKeyName(msg.String())
	if b := m.keys.Lookup(keyName, scopeBookmarkSave); b != nil {
		switch b.Action {
		case actionClose:
			m.saveOpen = false
			m.saveInput.Blur()
			return m, nil
		case actionSelect:
			name := strings.TrimSpace(m.saveInput.Value())
			m.saveOpen = false
			m.saveInput.Blur()
			if name == "" {
				m.setError(fmt.Errorf("bookmark name is required"))
				return m, nil
			}
			return m, m.saveBookmarkCmd(name)
		}
	}

	var cmd tea.Cmd
	m.saveInput, cmd = m.saveInput.Update(msg)
	return m, cmd
}

// ---------------------------------------------------------------------------
// Bookmark picker
// ---------------------------------------------------------------------------

func (m model) updateBookmarkPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyName := normalizeKeyName(msg.String())
	if b := m.keys.Lookup(keyName, scopeBookmarkPicker); b != nil {
		switch b.Action {
		case actionClose:
			m.pickerOpen = false
			return m, nil
		case actionSelect:
			item, ok := m.picker.SelectedItem().(bookmarkItem)
			if !ok {
				m.pickerOpen = false
				return m, nil
			}
			m.pickerOpen = false
			return m, m.loadBookmarkCmd(item.id)
		case actionDelete:
			item, ok := m.picker.SelectedItem().(bookmarkItem)
			if !ok {
				return m, nil
			}
			return m, m.deleteBookmarkCmd(item.id)
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// ---------------------------------------------------------------------------
// Session store commands
// ---------------------------------------------------------------------------

func (m *model) saveBookmarkCmd(name string) tea.Cmd {
	store := m.store
	views := m.paneViews()
	return func() tea.Msg {
		if store == nil {
			return bookmarkSavedMsg{name: name, err: fmt.Errorf("session store unavailable")}
		}
		_, err := store.SaveBookmark(name, views)
		return bookmarkSavedMsg{name: name, err: err}
	}
}

func (m *model) loadBookmarksCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return bookmarksLoadedMsg{err: fmt.Errorf("session store unavailable")}
		}
		items, err := store.ListBookmarks()
		return bookmarksLoadedMsg{items: items, err: err}
	}
}

func (m *model) loadBookmarkCmd(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return bookmarkLoadedMsg{err: fmt.Errorf("session store unavailable")}
		}
		b, err := store.LoadBookmark(id)
		return bookmarkLoadedMsg{bookmark: b, err: err}
	}
}

func (m *model) deleteBookmarkCmd(id string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return bookmarkDeletedMsg{err: fmt.Errorf("session store unavailable")}
		}
		return bookmarkDeletedMsg{err: store.DeleteBookmark(id)}
	}
}

func (m *model) saveConfigCmd() tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		return configSavedMsg{err: config.Save(cfg)}
	}
}
