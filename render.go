package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	view := m.renderFigure() + "\n" + m.renderStatus() + "\n" + m.renderFooter()

	if e := activeOverlay(m); e != nil {
		view = m.composeModal(view, m.modalView(e.name))
	}
	return view
}

// ---------------------------------------------------------------------------
// Figure grid
// ---------------------------------------------------------------------------

// renderFigure paints every pane onto a blank canvas at its frame, then
// splices the rubber band rectangle on top of the composite.
func (m model) renderFigure() string {
	figH := m.figureHeight()
	blank := padRight("", m.width)
	rows := make([]string, figH)
	for i := range rows {
		rows[i] = blank
	}
	canvas := strings.Join(rows, "\n")

	for _, p := range m.panes {
		f := p.Frame()
		if f.W <= 0 || f.H <= 0 {
			continue
		}
		canvas = overlayAt(canvas, p.Render(), f.X, f.Y, m.width, figH)
	}

	if m.rs.rubber != nil {
		r := m.rs.rubber
		canvas = overlayRectOutline(canvas, r.x0, r.y0, r.x1, r.y1, m.width, figH, func(s string) string { return rubberStyle.Render(s) })
	}
	return canvas
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

func (m model) renderStatus() string {
	left := titleStyle.Render(appName)
	if t := m.ctrl.ActiveToggle(); t != nil {
		left += "  " + activeToolSty.Render("["+t.Name()+"]")
	}
	if m.constraint != "" {
		left += "  " + activeToolSty.Render(strings.ToUpper(m.constraint)+" only")
	}
	if m.status != "" {
		text := strings.ReplaceAll(m.status, "\n", " ")
		if m.statusErr {
			text = errorStyle.Render(text)
		}
		left += "  " + text
	}
	// Clamp to one row; the style padding eats a cell on each side.
	return statusBarStyle.Width(m.width).Render(truncate(left, m.width-2))
}

func (m model) renderFooter() string {
	bindings := m.keys.HelpBindings(footerScope(m))
	bg := colorMantle
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(colorSubtext0).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	return footerStyle.Width(m.width).Render(strings.Join(parts, sep))
}

// ---------------------------------------------------------------------------
// Modal overlays
// ---------------------------------------------------------------------------

func (m model) modalView(name string) string {
	switch name {
	case "command":
		return m.commandPaletteView()
	case "bookmarkSave":
		return titleStyle.Render("Save bookmark") + "\n\n" + m.saveInput.View()
	case "bookmarkPicker":
		return titleStyle.Render("Bookmarks") + "\n" + m.picker.View()
	}
	return ""
}

func (m model) commandPaletteView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Commands"))
	sb.WriteString("\n")
	sb.WriteString(cursorStyle.Render("> ") + m.commandQuery + "█")
	sb.WriteString("\n")

	if len(m.commandMatches) == 0 {
		sb.WriteString(subtleStyle.Render("no matches"))
		return sb.String()
	}
	for i, entry := range m.commandMatches {
		prefix := "  "
		line := fmt.Sprintf("%-18s %s", entry.name, subtleStyle.Render(entry.desc))
		if i == m.commandSel {
			prefix = cursorStyle.Render("> ")
		}
		sb.WriteString("\n" + prefix + line)
	}
	return sb.String()
}

// composeModal centers the modal over the base view, leaving the status
// bar and footer visible underneath.
func (m model) composeModal(base, content string) string {
	modal := modalStyle.Render(content)
	lines := splitLines(modal)
	modalWidth := maxLineWidth(lines)
	modalHeight := len(lines)

	targetHeight := m.figureHeight()
	x := (m.width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (targetHeight - modalHeight) / 2
	if y < 0 {
		y = 0
	}
	return overlayAt(base, modal, x, y, m.width, targetHeight)
}
