package scene

import (
	"fmt"

	"alphabetize-cli/internal/model"
)

// FromDocument builds a forest from its persisted form. Visibility is applied
// after the structure is in place so building never trips the link side
// effects.
func FromDocument(doc model.Document) (*Forest, error) {
	f := New()
	for _, c := range doc.Collections {
		if _, err := f.NewCollection(c.ID, c.Name); err != nil {
			return nil, err
		}
	}
	for _, o := range doc.Objects {
		obj, err := f.NewObject(o.ID, o.Name)
		if err != nil {
			return nil, err
		}
		obj.hideRender = o.HideRender
		obj.hideViewport = o.HideViewport
	}

	for _, c := range doc.Collections {
		parent := f.collections[c.ID]
		parent.hideRender = c.HideRender
		parent.hideViewport = c.HideViewport
		for _, ref := range c.Children {
			var n Node
			switch ref.Kind {
			case model.ChildCollection:
				sub, ok := f.collections[ref.ID]
				if !ok {
					return nil, fmt.Errorf("collection %s: unknown child collection %s", c.ID, ref.ID)
				}
				n = sub
			case model.ChildObject:
				obj, ok := f.objects[ref.ID]
				if !ok {
					return nil, fmt.Errorf("collection %s: unknown child object %s", c.ID, ref.ID)
				}
				n = obj
			default:
				return nil, fmt.Errorf("collection %s: unknown child kind %q", c.ID, ref.Kind)
			}
			if err := parent.Add(n); err != nil {
				return nil, err
			}
		}
	}

	for _, s := range doc.Scenes {
		root, ok := f.collections[s.RootID]
		if !ok {
			return nil, fmt.Errorf("scene %s: unknown root collection %s", s.ID, s.RootID)
		}
		if _, err := f.AddScene(s.ID, s.Name, root); err != nil {
			return nil, err
		}
	}

	for _, c := range doc.Collections {
		if lc, ok := f.layer.entries[f.collections[c.ID]]; ok {
			lc.hideViewport = c.HideViewport
		}
	}

	if id := doc.ActiveCollectionID; id != "" {
		c, ok := f.collections[id]
		if !ok {
			return nil, fmt.Errorf("active collection %s: unknown collection", id)
		}
		if err := f.Activate(c); err != nil {
			return nil, fmt.Errorf("active collection: %w", err)
		}
	}
	return f, nil
}

// Document returns the persisted form of f. Collections and objects keep
// creation order; child lists keep their current order.
func (f *Forest) Document() model.Document {
	doc := model.Document{
		Version:     1,
		Scenes:      make([]model.Scene, 0, len(f.scenes)),
		Collections: make([]model.Collection, 0, len(f.collOrder)),
		Objects:     make([]model.Object, 0, len(f.objOrder)),
	}
	for _, s := range f.scenes {
		doc.Scenes = append(doc.Scenes, model.Scene{ID: s.id, Name: s.name, RootID: s.root.id})
	}
	for _, c := range f.collOrder {
		mc := model.Collection{
			ID:         c.id,
			Name:       c.name,
			Children:   make([]model.ChildRef, 0, len(c.children)),
			HideRender: c.hideRender,
		}
		mc.HideViewport, _ = f.ViewportHidden(c)
		for _, n := range c.children {
			kind := model.ChildObject
			if _, ok := n.(*Collection); ok {
				kind = model.ChildCollection
			}
			mc.Children = append(mc.Children, model.ChildRef{Kind: kind, ID: n.ID()})
		}
		doc.Collections = append(doc.Collections, mc)
	}
	for _, o := range f.objOrder {
		doc.Objects = append(doc.Objects, model.Object{
			ID:           o.id,
			Name:         o.name,
			HideRender:   o.hideRender,
			HideViewport: o.hideViewport,
		})
	}
	if lc := f.layer.active; lc != nil && !lc.stale {
		doc.ActiveCollectionID = lc.coll.id
	}
	return doc
}
