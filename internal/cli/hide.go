package cli

import (
	"errors"

	"alphabetize-cli/internal/mutate"
	"alphabetize-cli/internal/store"

	"github.com/spf13/cobra"
)

func newHideCmd(app *App) *cobra.Command {
	var viewport, render bool

	cmd := &cobra.Command{
		Use:   "hide <id>",
		Short: "Set the viewport and/or render flag of a collection or object",
		Example: `  alphabetize hide col-5xk2m7qa --viewport
  alphabetize hide obj-q3v8a1zz --render=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var vp, rd *bool
			if cmd.Flags().Changed("viewport") {
				vp = &viewport
			}
			if cmd.Flags().Changed("render") {
				rd = &render
			}
			if vp == nil && rd == nil {
				return writeErr(cmd, errors.New("nothing to change (pass --viewport and/or --render)"))
			}

			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.SetHidden(doc, args[0], vp, rd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if res.Changed {
				if err := commit(s, doc, store.EventVisibilitySet, args[0], res.EventPayload); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"id":      args[0],
					"kind":    res.Kind,
					"changed": res.Changed,
					"node":    nodeView(doc, args[0]),
				},
			})
		},
	}
	cmd.Flags().BoolVar(&viewport, "viewport", true, "Hide in the viewport")
	cmd.Flags().BoolVar(&render, "render", true, "Disable in renders")
	return cmd
}
