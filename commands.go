package main

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/plotnav/nav"
)

// ---------------------------------------------------------------------------
// Command palette
// ---------------------------------------------------------------------------

type commandEntry struct {
	name string
	desc string
	run  func(m *model) tea.Cmd
}

// commandCatalog lists every palette command: one per registered tool,
// plus bookmark and app commands.
func commandCatalog(m *model) []commandEntry {
	var out []commandEntry
	for _, t := range m.ctrl.Tools() {
		tool := t
		out = append(out, commandEntry{
			name: tool.Name(),
			desc: tool.Description(),
			run: func(m *model) tea.Cmd {
				m.triggerTool(tool.Name(), nav.Event{})
				return nil
			},
		})
	}
	out = append(out,
		commandEntry{
			name: "bookmark save",
			desc: "Save current view as a bookmark",
			run: func(m *model) tea.Cmd {
				m.openBookmarkSave()
				return nil
			},
		},
		commandEntry{
			name: "bookmark open",
			desc: "Open the bookmark picker",
			run: func(m *model) tea.Cmd {
				return m.loadBookmarksCmd()
			},
		},
		commandEntry{
			name: "config save",
			desc: "Write current settings to the config file",
			run: func(m *model) tea.Cmd {
				return m.saveConfigCmd()
			},
		},
		commandEntry{
			name: "quit",
			desc: "Exit " + appName,
			run: func(m *model) tea.Cmd {
				return tea.Quit
			},
		},
	)
	return out
}

// rankCommands orders the catalog against a query: prefix matches
// first, then substring matches, then near misses by edit distance.
// With an empty query the catalog order is kept.
func rankCommands(entries []commandEntry, query string) []commandEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	type scored struct {
		entry commandEntry
		rank  int
		dist  int
	}
	var matches []scored
	for _, e := range entries {
		name := strings.ToLower(e.name)
		dist := levenshtein.ComputeDistance(name, query)
		switch {
		case strings.HasPrefix(name, query):
			matches = append(matches, scored{entry: e, rank: 0, dist: dist})
		case strings.Contains(name, query):
			matches = append(matches, scored{entry: e, rank: 1, dist: dist})
		case dist <= len(query)/2+1:
			matches = append(matches, scored{entry: e, rank: 2, dist: dist})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].dist < matches[j].dist
	})

	out := make([]commandEntry, 0, len(matches))
	for _, s := range matches {
		out = append(out, s.entry)
	}
	return out
}

func (m *model) openCommandPalette() {
	m.commandOpen = true
	m.commandQuery = ""
	m.commandSel = 0
	m.commandMatches = rankCommands(commandCatalog(m), "")
}

func (m *model) closeCommandPalette() {
	m.commandOpen = false
	m.commandQuery = ""
	m.commandMatches = nil
	m.commandSel = 0
}

func (m *model) refreshCommandMatches() {
	m.commandMatches = rankCommands(commandCatalog(m), m.commandQuery)
	if m.commandSel >= len(m.commandMatches) {
		m.commandSel = len(m.commandMatches) - 1
	}
	if m.commandSel < 0 {
		m.commandSel = 0
	}
}

func (m model) updateCommandPalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyName := normalizeKeyName(msg.String())
	if b := m.keys.Lookup(keyName, scopeCommandPalette); b != nil {
		switch b.Action {
		case actionClose:
			m.closeCommandPalette()
			return m, nil
		case actionSelect:
			if len(m.commandMatches) == 0 {
				m.closeCommandPalette()
				return m, nil
			}
			entry := m.commandMatches[m.commandSel]
			m.closeCommandPalette()
			cmd := entry.run(&m)
			return m, cmd
		case actionNavigate:
			switch keyName {
			case "up", "ctrl+p":
				if m.commandSel > 0 {
					m.commandSel--
				}
			case "down", "ctrl+n":
				if m.commandSel < len(m.commandMatches)-1 {
					m.commandSel++
				}
			}
			return m, nil
		}
	}

	switch keyName {
	case "backspace":
		if m.commandQuery != "" {
			m.commandQuery = m.commandQuery[:len(m.commandQuery)-1]
			m.refreshCommandMatches()
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.commandQuery += string(msg.Runes)
		m.refreshCommandMatches()
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Tool triggering
// ---------------------------------------------------------------------------

// triggerTool runs a tool through the controller and reports the result
// on the status line.
func (m *model) triggerTool(name string, ev nav.Event) {
	if err := m.ctrl.Trigger(name, ev); err != nil {
		m.setError(err)
		return
	}
	if active := m.ctrl.ActiveToggle(); active != nil {
		m.setStatus(active.Description())
	} else {
		m.setStatus("")
	}
}
