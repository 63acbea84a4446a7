package cli

import (
	"path/filepath"

	"alphabetize-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			existed := false
			if s, err := resolveStore(app); err == nil {
				existed = s.Exists()
			}
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(doc); err != nil {
				return writeErr(cmd, err)
			}

			// Remember an explicitly chosen workspace as the default.
			if app.Workspace != "" && app.cfg != nil && app.cfg.Workspace != app.Workspace {
				cfg := *app.cfg
				cfg.Workspace = app.Workspace
				if err := store.SaveConfig(&cfg); err != nil {
					app.log.Warn().Err(err).Msg("could not save workspace to config")
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        s.Dir,
					"workspace":  app.Workspace,
					"documentId": doc.ID,
					"sqlitePath": filepath.Join(s.Dir, "state.sqlite"),
					"created":    !existed,
				},
			})
		},
	}
	return cmd
}
