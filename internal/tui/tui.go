package tui

import (
	"alphabetize-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	// Glyphs selects the tree glyph set ("unicode" or "ascii").
	Glyphs string
	Logger zerolog.Logger
}

func Run(s store.Store, opts Options) error {
	applyColorProfilePreference()
	m, err := newPanelModel(s, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
