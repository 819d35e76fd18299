package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PLOTNAV_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Figure.Path != "" {
		t.Fatalf("figure path = %q, want embedded default", cfg.Figure.Path)
	}
	if cfg.Session.Path == "" {
		t.Fatal("session path default missing")
	}
	if !cfg.UI.MouseMotion {
		t.Fatal("mouse motion should default on")
	}
	if cfg.UI.Accent != "#fab387" {
		t.Fatalf("accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := "[figure]\npath = \"/tmp/fig.toml\"\n\n[ui]\nmouse_motion = false\naccent = \"#89b4fa\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PLOTNAV_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Figure.Path != "/tmp/fig.toml" {
		t.Fatalf("figure path = %q", cfg.Figure.Path)
	}
	if cfg.UI.MouseMotion {
		t.Fatal("mouse motion should be off")
	}
	if cfg.UI.Accent != "#89b4fa" {
		t.Fatalf("accent = %q", cfg.UI.Accent)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("PLOTNAV_CONFIG", path)

	want := Config{
		Figure:  FigureConfig{Path: "/tmp/fig.toml"},
		Session: SessionConfig{Path: "/tmp/session.db"},
		UI:      UIConfig{MouseMotion: true, Accent: "#f38ba8"},
	}
	if err := Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}
