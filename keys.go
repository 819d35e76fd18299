package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal         = "global"
	scopeFigure         = "figure"
	scopeCommandPalette = "command_palette"
	scopeBookmarkSave   = "bookmark_save"
	scopeBookmarkPicker = "bookmark_picker"
)

const (
	actionQuit           Action = "quit"
	actionZoomTool       Action = "zoom_tool"
	actionPanTool        Action = "pan_tool"
	actionHome           Action = "home"
	actionBack           Action = "back"
	actionForward        Action = "forward"
	actionNavAll         Action = "nav_all"
	actionNavOne         Action = "nav_one"
	actionConstrainX     Action = "constrain_x"
	actionConstrainY     Action = "constrain_y"
	actionCommandPalette Action = "command_palette"
	actionSaveBookmark   Action = "save_bookmark"
	actionOpenBookmarks  Action = "open_bookmarks"
	actionNavigate       Action = "navigate"
	actionSelect         Action = "select"
	actionClose          Action = "close"
	actionDelete         Action = "delete"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback lookup.
	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionCommandPalette, []string{"ctrl+k", ":"}, "commands")

	// Figure scope: the plot surface with no overlay open.
	reg(scopeFigure, actionZoomTool, []string{"z"}, "zoom")
	reg(scopeFigure, actionPanTool, []string{"p"}, "pan")
	reg(scopeFigure, actionHome, []string{"h", "r", "home"}, "home view")
	reg(scopeFigure, actionBack, []string{"left", "c", "backspace"}, "back")
	reg(scopeFigure, actionForward, []string{"right", "v"}, "forward")
	reg(scopeFigure, actionNavAll, []string{"a"}, "nav all")
	reg(scopeFigure, actionNavOne, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "nav pane")
	reg(scopeFigure, actionConstrainX, []string{"x"}, "x only")
	reg(scopeFigure, actionConstrainY, []string{"y"}, "y only")
	reg(scopeFigure, actionSaveBookmark, []string{"b"}, "bookmark")
	reg(scopeFigure, actionOpenBookmarks, []string{"B"}, "bookmarks")

	reg(scopeCommandPalette, actionNavigate, []string{"up", "down", "ctrl+p", "ctrl+n"}, "navigate")
	reg(scopeCommandPalette, actionSelect, []string{"enter"}, "run")
	reg(scopeCommandPalette, actionClose, []string{"esc"}, "close")

	reg(scopeBookmarkSave, actionSelect, []string{"enter"}, "save")
	reg(scopeBookmarkSave, actionClose, []string{"esc"}, "cancel")

	reg(scopeBookmarkPicker, actionNavigate, []string{"j/k", "j", "k", "up", "down"}, "navigate")
	reg(scopeBookmarkPicker, actionSelect, []string{"enter"}, "apply")
	reg(scopeBookmarkPicker, actionDelete, []string{"d"}, "delete")
	reg(scopeBookmarkPicker, actionClose, []string{"esc"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			continue
		}
		if len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.bindingsByScope[scope]; !ok {
			r.bindingsByScope[scope] = nil
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		if b := r.lookupInScope(keyName, scopeGlobal); b != nil {
			return b
		}
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		helpKey := b.Keys[0]
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(helpKey, b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}
