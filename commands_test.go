package main

import (
	"os"
	"path/filepath"
	"testing"
)

func paletteEntries() []commandEntry {
	return []commandEntry{
		{name: "zoom"},
		{name: "pan"},
		{name: "home"},
		{name: "back"},
		{name: "forward"},
		{name: "nav_all"},
		{name: "bookmark save"},
		{name: "bookmark open"},
		{name: "quit"},
	}
}

func names(entries []commandEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}

func TestRankCommandsEmptyQueryKeepsOrder(t *testing.T) {
	entries := paletteEntries()
	got := rankCommands(entries, "")
	if len(got) != len(entries) {
		t.Fatalf("empty query dropped entries: %d != %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i].name != entries[i].name {
			t.Fatalf("order changed at %d: %q", i, got[i].name)
		}
	}
}

func TestRankCommandsPrefixBeforeSubstring(t *testing.T) {
	got := names(rankCommands(paletteEntries(), "book"))
	if len(got) != 2 {
		t.Fatalf("matches = %v, want two bookmark entries", got)
	}
	if got[0] != "bookmark save" || got[1] != "bookmark open" {
		t.Fatalf("unexpected order %v", got)
	}

	got = names(rankCommands(paletteEntries(), "save"))
	if len(got) == 0 || got[0] != "bookmark save" {
		t.Fatalf("substring match failed: %v", got)
	}
}

func TestRankCommandsToleratesTypos(t *testing.T) {
	// One edit away from "zoom" and no substring match.
	got := names(rankCommands(paletteEntries(), "zom"))
	if len(got) == 0 || got[0] != "zoom" {
		t.Fatalf("typo ranking failed: %v", got)
	}
}

func TestRankCommandsDropsFarMisses(t *testing.T) {
	got := rankCommands(paletteEntries(), "xyzzy")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", names(got))
	}
}

func TestConfigSaveCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("PLOTNAV_CONFIG", path)

	m := newTestModel(t)
	var entry *commandEntry
	for _, e := range commandCatalog(&m) {
		if e.name == "config save" {
			e := e
			entry = &e
			break
		}
	}
	if entry == nil {
		t.Fatal("palette has no config save command")
	}

	cmd := entry.run(&m)
	if cmd == nil {
		t.Fatal("config save produced no command")
	}
	raw := cmd()
	msg, ok := raw.(configSavedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", raw)
	}
	if msg.err != nil {
		t.Fatalf("save: %v", msg.err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	next, _ := m.Update(msg)
	m = next.(model)
	if m.status != "settings saved" {
		t.Fatalf("status = %q, want settings saved", m.status)
	}
}

func TestRankCommandsCaseInsensitive(t *testing.T) {
	got := names(rankCommands(paletteEntries(), "PAN"))
	if len(got) == 0 || got[0] != "pan" {
		t.Fatalf("case-insensitive match failed: %v", got)
	}
}
