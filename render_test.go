package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestStatusLineClampsToWidth(t *testing.T) {
	m := newTestModel(t)
	m.setStatus(strings.Repeat("loaded bookmark after a long session ", 10))

	out := m.renderStatus()
	lines := splitLines(out)
	if len(lines) != 1 {
		t.Fatalf("status bar spans %d rows, want 1", len(lines))
	}
	if w := ansi.StringWidth(lines[0]); w > m.width {
		t.Fatalf("status bar width = %d, want at most %d", w, m.width)
	}
}
