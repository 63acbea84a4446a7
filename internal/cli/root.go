package cli

import (
	"fmt"
	"os"
	"strings"

	"alphabetize-cli/internal/format"
	"alphabetize-cli/internal/logging"
	"alphabetize-cli/internal/model"
	"alphabetize-cli/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const actorCLI = "cli"

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
	LogLevel   string

	cfg *store.Config
	log zerolog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:          "alphabetize",
		Short:        "Sort scene collections and objects by name, keeping their visibility",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the panel
  alphabetize

  # Load a scene file and sort everything
  alphabetize import shot010.yaml
  alphabetize run

  # See what would move without saving
  alphabetize run --dry-run

  # Direct lookup (shortcut for: alphabetize show <id>)
  alphabetize col-5xk2m7qa
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => panel.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runPanel(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		app.log = logging.Configure(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cmd.ErrOrStderr(),
		})
		if cmd.Flags().Changed("log-level") {
			level, ok := logging.ParseLevel(app.LogLevel)
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown log level: %s", app.LogLevel))
			}
			app.log = app.log.Level(level)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("ALPHABETIZE_DIR", ""), "Path to the workspace dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("ALPHABETIZE_WORKSPACE", ""), "Workspace name under ~/.alphabetize/workspaces")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ALPHABETIZE_FORMAT", "json"), "Output format (json|yaml|toml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error|disabled)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newScenesCmd(app))
	cmd.AddCommand(newCollectionsCmd(app))
	cmd.AddCommand(newObjectsCmd(app))
	cmd.AddCommand(newHideCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newCheckCmd(app))
	cmd.AddCommand(newRunCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newPanelCmd(app))

	return cmd
}

// resolveStore picks the workspace directory:
//  1. --dir / ALPHABETIZE_DIR
//  2. --workspace / ALPHABETIZE_WORKSPACE
//  3. config dir
//  4. a .alphabetize directory found walking up from cwd
//  5. config workspace (default "default")
func resolveStore(app *App) (store.Store, error) {
	if app.Dir != "" {
		return store.Store{Dir: app.Dir}, nil
	}
	cfg := app.cfg
	if cfg == nil {
		cfg = store.DefaultConfig()
	}

	var dir string
	switch {
	case app.Workspace != "":
		d, err := store.WorkspaceDir(app.Workspace)
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	case strings.TrimSpace(cfg.Dir) != "":
		dir = strings.TrimSpace(cfg.Dir)
	default:
		if wd, err := os.Getwd(); err == nil {
			if d, ok := store.DiscoverDir(wd); ok {
				dir = d
				break
			}
		}
		name := cfg.Workspace
		if strings.TrimSpace(name) == "" {
			name = "default"
		}
		app.Workspace = name
		d, err := store.WorkspaceDir(name)
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	app.Dir = dir
	return store.Store{Dir: dir}, nil
}

// loadDoc loads the workspace document, giving it an identity on first use.
func loadDoc(app *App) (*model.Document, store.Store, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, s, err
	}
	doc, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	if doc.ID == "" {
		doc.ID = store.NewDocumentID()
	}
	return doc, s, nil
}

// commit saves doc and records one event for it atomically.
func commit(s store.Store, doc *model.Document, typ, entityID string, payload any) error {
	return s.Commit(doc, actorCLI, typ, entityID, payload)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
