package cli

import (
	"errors"

	"alphabetize-cli/internal/alphabetize"
	"alphabetize-cli/internal/mutate"
	"alphabetize-cli/internal/scene"
	"alphabetize-cli/internal/store"

	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Alphabetize every collection and object, keeping their visibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opts := alphabetize.DefaultOptions()
			opts.Logger = app.log
			res, err := mutate.Alphabetize(doc, opts)
			if errors.Is(err, mutate.ErrEmptyForest) {
				return writeErr(cmd, errors.New("nothing to alphabetize: the workspace has no scenes (import a scene file or run `alphabetize scenes add`)"))
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			if !dryRun {
				if err := commit(s, &res.Document, store.EventForestAlphabetize, res.Document.ID, res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}

			var left []alphabetize.Unsorted
			if f, err := scene.FromDocument(res.Document); err == nil {
				left = alphabetize.Check(f, alphabetize.CaseSensitive)
			}
			if left == nil {
				left = []alphabetize.Unsorted{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"report":   res.Report,
					"changed":  res.Changed,
					"dryRun":   dryRun,
					"unsorted": left,
				},
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Sort in memory and report without saving")
	return cmd
}
