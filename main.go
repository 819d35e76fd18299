package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/plotnav/internal/config"
	"github.com/jask/plotnav/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fig, err := loadFigure(cfg.Figure.Path)
	if err != nil {
		log.Fatalf("figure: %v", err)
	}

	var store *session.Store
	if cfg.Session.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Session.Path), 0o755); err != nil {
			log.Fatalf("mkdir session dir: %v", err)
		}
		store, err = session.Open(cfg.Session.Path)
		if err != nil {
			log.Fatalf("session: %v", err)
		}
		defer store.Close()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseMotion {
		opts = append(opts, tea.WithMouseAllMotion())
	} else {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(newModel(cfg, fig, store), opts...)
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
