package cli

import (
	"alphabetize-cli/internal/mutate"
	"alphabetize-cli/internal/store"

	"github.com/spf13/cobra"
)

func newScenesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List and add scenes",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": doc.Scenes})
		},
	}

	var name string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a scene with an empty root collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddScene(doc, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(s, doc, store.EventSceneAdd, res.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			sc, _ := doc.FindScene(res.ID)
			return writeOut(cmd, app, map[string]any{"data": sc})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Scene name")
	_ = addCmd.MarkFlagRequired("name")

	cmd.AddCommand(listCmd, addCmd)
	return cmd
}

func newCollectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List and add collections",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": doc.Collections})
		},
	}

	var parent, name string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a collection as the last child of --parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddCollection(doc, parent, name)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(s, doc, store.EventCollectionAdd, res.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			c, _ := doc.FindCollection(res.ID)
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	addCmd.Flags().StringVar(&parent, "parent", "", "Parent collection id")
	addCmd.Flags().StringVar(&name, "name", "", "Collection name")
	_ = addCmd.MarkFlagRequired("parent")
	_ = addCmd.MarkFlagRequired("name")

	cmd.AddCommand(listCmd, addCmd)
	return cmd
}

func newObjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List, add and link objects",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": doc.Objects})
		},
	}

	var name, collection string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an object, optionally linked to --collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.AddObject(doc, name, collection)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(s, doc, store.EventObjectAdd, res.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			o, _ := doc.FindObject(res.ID)
			return writeOut(cmd, app, map[string]any{"data": o})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Object name")
	addCmd.Flags().StringVar(&collection, "collection", "", "Collection id to link the object to")
	_ = addCmd.MarkFlagRequired("name")

	var linkTo string
	linkCmd := &cobra.Command{
		Use:   "link <object-id>",
		Short: "Link an existing object to another collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, s, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := mutate.LinkObject(doc, args[0], linkTo)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := commit(s, doc, store.EventObjectLink, res.ID, res.EventPayload); err != nil {
				return writeErr(cmd, err)
			}
			c, _ := doc.FindCollection(linkTo)
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	linkCmd.Flags().StringVar(&linkTo, "collection", "", "Collection id")
	_ = linkCmd.MarkFlagRequired("collection")

	cmd.AddCommand(listCmd, addCmd, linkCmd)
	return cmd
}
