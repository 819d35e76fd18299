package main

import (
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/plotnav/internal/config"
	"github.com/jask/plotnav/internal/session"
	"github.com/jask/plotnav/nav"
	"github.com/jask/plotnav/widgets"
)

const appName = "plotnav"

// Reserved rows below the figure.
const (
	statusBarRows = 1
	footerRows    = 1
)

// ---------------------------------------------------------------------------
// Render state shared with the controller callbacks
// ---------------------------------------------------------------------------

// renderState lives behind a pointer because the bubbletea model is a
// value: controller callbacks fired during Update must mutate state the
// next View call can see.
type renderState struct {
	rubber    *rubberRect
	needsDraw bool
}

type rubberRect struct {
	x0, y0, x1, y1 int
}

// ---------------------------------------------------------------------------
// Bookmark picker item (implements list.Item)
// ---------------------------------------------------------------------------

type bookmarkItem struct {
	id      string
	name    string
	created string
}

func (b bookmarkItem) Title() string       { return b.name }
func (b bookmarkItem) Description() string { return b.created }
func (b bookmarkItem) FilterValue() string { return b.name }

type bookmarkItemDelegate struct{}

func (d bookmarkItemDelegate) Height() int  { return 1 }
func (d bookmarkItemDelegate) Spacing() int { return 0 }
func (d bookmarkItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d bookmarkItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(bookmarkItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = cursorStyle.Render("> ")
	}
	line := fmt.Sprintf("%s%s  %s", prefix, entry.name, subtleStyle.Render(entry.created))
	fmt.Fprint(w, padRight(line, m.Width()))
}

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type bookmarkSavedMsg struct {
	name string
	err  error
}

type bookmarksLoadedMsg struct {
	items []session.Bookmark
	err   error
}

type bookmarkLoadedMsg struct {
	bookmark session.Bookmark
	err      error
}

type bookmarkDeletedMsg struct {
	err error
}

type configSavedMsg struct {
	err error
}

// ---------------------------------------------------------------------------
// Styles
// ---------------------------------------------------------------------------

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtleStyle    = lipgloss.NewStyle().Foreground(colorOverlay1)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorAccent)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	footerStyle    = lipgloss.NewStyle().Foreground(colorSubtext1).Background(colorMantle).Padding(0, 1)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(0, 1)
	rubberStyle    = lipgloss.NewStyle().Foreground(colorYellow)
	activeToolSty  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type model struct {
	cfg   config.Config
	keys  *KeyRegistry
	fig   figureFile
	panes []*widgets.PlotPane
	ctrl  *nav.Controller
	rs    *renderState
	store *session.Store

	width  int
	height int

	// Held axis-constraint key. Terminals deliver no key-release, so a
	// second press of the same key synthesizes one.
	constraint string

	commandOpen    bool
	commandQuery   string
	commandSel     int
	commandMatches []commandEntry

	saveOpen  bool
	saveInput textinput.Model

	pickerOpen bool
	picker     list.Model

	status    string
	statusErr bool
}

func newModel(cfg config.Config, fig figureFile, store *session.Store) model {
	rs := &renderState{}
	ctrl := nav.NewController()
	ctrl.OnRubberband = func(x0, y0, x1, y1 int) {
		rs.rubber = &rubberRect{x0: x0, y0: y0, x1: x1, y1: y1}
	}
	ctrl.OnClearRubberband = func() {
		rs.rubber = nil
	}
	ctrl.OnDraw = func() {
		rs.needsDraw = true
	}

	panes := buildPanes(fig)
	for _, p := range panes {
		ctrl.AddSurface(p)
	}

	for _, t := range []nav.Tool{
		nav.NewZoomTool(ctrl),
		nav.NewPanTool(ctrl),
		nav.NewHomeTool(ctrl),
		nav.NewBackTool(ctrl),
		nav.NewForwardTool(ctrl),
		nav.NewEnableAllTool(ctrl),
		nav.NewEnableOneTool(ctrl),
	} {
		if err := ctrl.Register(t); err != nil {
			log.Fatalf("register tool %s: %v", t.Name(), err)
		}
	}

	in := textinput.New()
	in.Placeholder = "bookmark name"
	in.CharLimit = 64
	in.Width = 32

	lst := list.New(nil, bookmarkItemDelegate{}, 40, 12)
	lst.SetShowHelp(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowTitle(false)
	lst.DisableQuitKeybindings()

	if cfg.UI.Accent != "" {
		accent := lipgloss.Color(cfg.UI.Accent)
		cursorStyle = cursorStyle.Foreground(accent)
		activeToolSty = activeToolSty.Foreground(accent)
	}

	return model{
		cfg:       cfg,
		keys:      NewKeyRegistry(),
		fig:       fig,
		panes:     panes,
		ctrl:      ctrl,
		rs:        rs,
		store:     store,
		saveInput: in,
		picker:    lst,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// figureHeight returns the rows available to the pane grid.
func (m model) figureHeight() int {
	h := m.height - statusBarRows - footerRows
	if h < 0 {
		h = 0
	}
	return h
}

// relayout reassigns pane frames for the current terminal size.
func (m *model) relayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	layoutPanes(m.fig, m.panes, m.width, m.figureHeight())
}

// paneViews captures every pane's current range for a bookmark.
func (m model) paneViews() []session.PaneView {
	out := make([]session.PaneView, 0, len(m.panes))
	for _, p := range m.panes {
		x0, x1 := p.XRange()
		y0, y1 := p.YRange()
		out = append(out, session.PaneView{Pane: p.ID(), X0: x0, X1: x1, Y0: y0, Y1: y1})
	}
	return out
}

// applyBookmark routes a stored capture through the controller so it
// lands on the view history.
func (m *model) applyBookmark(b session.Bookmark) {
	byID := make(map[string]*widgets.PlotPane, len(m.panes))
	for _, p := range m.panes {
		byID[p.ID()] = p
	}
	applied := false
	for _, v := range b.Views {
		p, ok := byID[v.Pane]
		if !ok {
			continue
		}
		p.SetXRange(v.X0, v.X1)
		p.SetYRange(v.Y0, v.Y1)
		applied = true
	}
	if applied {
		m.ctrl.PushCurrent()
	}
}

func (m *model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
