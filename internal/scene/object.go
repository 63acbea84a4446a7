package scene

import "alphabetize-cli/internal/alphabetize"

// Object is a leaf. Both visibility flags are plain attributes.
type Object struct {
	id           string
	name         string
	forest       *Forest
	hideRender   bool
	hideViewport bool
}

func (o *Object) ID() string               { return o.id }
func (o *Object) Name() string             { return o.name }
func (o *Object) child() alphabetize.Child { return alphabetize.LeafChild(o) }
func (o *Object) PersistentHidden() bool   { return o.hideRender }
func (o *Object) TransientHidden() bool    { return o.hideViewport }

func (o *Object) SetPersistentHidden(hidden bool) error {
	o.hideRender = hidden
	return nil
}

func (o *Object) SetTransientHidden(hidden bool) error {
	o.hideViewport = hidden
	return nil
}

// Users returns every collection that lists o as a direct child.
func (o *Object) Users() []*Collection {
	var out []*Collection
	for _, c := range o.forest.collOrder {
		if c.indexOf(o) >= 0 {
			out = append(out, c)
		}
	}
	return out
}
