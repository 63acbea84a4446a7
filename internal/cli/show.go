package cli

import (
	"alphabetize-cli/internal/model"
	"alphabetize-cli/internal/mutate"
	"alphabetize-cli/internal/scene"

	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a scene, collection or object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDoc(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			v := nodeView(doc, args[0])
			if v == nil {
				return writeErr(cmd, mutate.NotFoundError{Kind: "node", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	}
}

type collectionView struct {
	model.Collection
	Kind   model.ChildKind `json:"kind"`
	Path   string          `json:"path,omitempty"`
	Sorted bool            `json:"sorted"`
}

type objectView struct {
	model.Object
	Kind  model.ChildKind `json:"kind"`
	Users []string        `json:"users"`
}

type sceneView struct {
	model.Scene
	Kind string `json:"kind"`
}

// nodeView describes id with what the forest knows about it: the collection's
// path and sort state, or the collections an object is linked to.
func nodeView(doc *model.Document, id string) any {
	if sc, ok := doc.FindScene(id); ok {
		return sceneView{Scene: *sc, Kind: "scene"}
	}
	f, _ := scene.FromDocument(*doc)
	if c, ok := doc.FindCollection(id); ok {
		v := collectionView{Collection: *c, Kind: model.ChildCollection}
		if f != nil {
			if sc, ok := f.Collection(id); ok {
				v.Path = sc.Path()
				v.Sorted = isSorted(sc)
			}
		}
		return v
	}
	if o, ok := doc.FindObject(id); ok {
		v := objectView{Object: *o, Kind: model.ChildObject, Users: []string{}}
		if f != nil {
			if so, ok := f.Object(id); ok {
				for _, u := range so.Users() {
					v.Users = append(v.Users, u.ID())
				}
			}
		}
		return v
	}
	return nil
}
