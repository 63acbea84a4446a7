package cli

import (
	"fmt"

	"alphabetize-cli/internal/publish"
	"alphabetize-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var asMarkdown, render, includeIDs, overwrite bool
	var out, style string
	var width int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the forest (nested structure, markdown, or styled markdown)",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			opt := publish.RenderOptions{IncludeIDs: includeIDs}

			if out != "" {
				res, err := publish.WriteForest(doc, out, publish.WriteOptions{Overwrite: overwrite, Render: opt})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			}
			if !asMarkdown && !render {
				return writeOut(cmd, app, map[string]any{"data": store.NewSceneFile(doc)})
			}

			md, err := publish.RenderForestMarkdown(doc, opt)
			if err != nil {
				return writeErr(cmd, err)
			}
			if render {
				md = publish.RenderTerminal(md, style, width)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print a markdown outline")
	cmd.Flags().BoolVar(&render, "render", false, "Print the markdown outline styled for the terminal")
	cmd.Flags().BoolVar(&includeIDs, "ids", false, "Include ids in markdown output")
	cmd.Flags().StringVar(&out, "out", "", "Write the markdown outline to a file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite --out if it exists")
	cmd.Flags().StringVar(&style, "style", "dark", "Glamour style for --render (dark|light|notty|...)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	return cmd
}
