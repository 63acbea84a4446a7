package cli

import (
	"alphabetize-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newPanelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "panel",
		Short: "Open the interactive panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(cmd, app)
		},
	}
}

func runPanel(cmd *cobra.Command, app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	glyphs := ""
	if app.cfg != nil {
		glyphs = app.cfg.Panel.Glyphs
	}
	if err := tui.Run(s, tui.Options{Glyphs: glyphs, Logger: app.log}); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}
