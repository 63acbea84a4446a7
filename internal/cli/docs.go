package cli

import (
	"fmt"
	"strings"

	"alphabetize-cli/internal/docs"
	"alphabetize-cli/internal/publish"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": docs.Topics()})
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(docs.Topics(), ", ")))
			}
			if render {
				md = publish.RenderTerminal(md, "dark", 80)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Style the markdown for the terminal")
	return cmd
}
