package cli

import (
	"fmt"

	"alphabetize-cli/internal/alphabetize"
	"alphabetize-cli/internal/scene"

	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report child lists that are not in alphabetical order",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := scene.FromDocument(*doc)
			if err != nil {
				return writeErr(cmd, err)
			}
			unsorted := alphabetize.Check(f, alphabetize.CaseSensitive)
			if unsorted == nil {
				unsorted = []alphabetize.Unsorted{}
			}
			if err := writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"sorted":   len(unsorted) == 0,
					"unsorted": unsorted,
				},
			}); err != nil {
				return err
			}
			if strict && len(unsorted) > 0 {
				return writeErr(cmd, fmt.Errorf("%d child lists out of order", len(unsorted)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when anything is out of order")
	return cmd
}

func isSorted(c *scene.Collection) bool {
	children := c.Children()
	names := make([]string, 0, len(children))
	for _, ch := range children {
		names = append(names, ch.Name())
	}
	return alphabetize.IsSorted(names, alphabetize.CaseSensitive)
}
