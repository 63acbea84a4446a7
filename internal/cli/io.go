package cli

import (
	"errors"
	"os"

	"alphabetize-cli/internal/scene"
	"alphabetize-cli/internal/store"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var fileFormat string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a scene file (json|yaml|toml) into the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(doc.Scenes) > 0 && !replace {
				return writeErr(cmd, errors.New("workspace already has scenes (use --replace)"))
			}
			in, err := store.ReadSceneFile(args[0], fileFormat)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Validate the structure before anything is written.
			f, err := scene.FromDocument(*in)
			if err != nil {
				return writeErr(cmd, err)
			}
			in.ID = doc.ID
			if err := commit(s, in, store.EventForestImport, in.ID, map[string]any{"file": args[0]}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": f.Stats()})
		},
	}
	cmd.Flags().StringVar(&fileFormat, "file-format", "", "Scene file format (default: from extension)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace scenes already in the workspace")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var fileFormat string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the workspace as a scene file (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(args) == 0 {
				f, err := store.FileFormatFor("", firstNonEmpty(fileFormat, "yaml"))
				if err != nil {
					return writeErr(cmd, err)
				}
				b, err := store.EncodeSceneFile(store.NewSceneFile(doc), f)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := store.WriteSceneFile(args[0], fileFormat, doc); err != nil {
				return writeErr(cmd, err)
			}
			st, err := os.Stat(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"written": args[0], "bytes": st.Size()},
			})
		},
	}
	cmd.Flags().StringVar(&fileFormat, "file-format", "", "Scene file format (default: from extension, yaml on stdout)")
	return cmd
}

func firstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if x != "" {
			return x
		}
	}
	return ""
}
