package scene

import (
	"fmt"

	"alphabetize-cli/internal/alphabetize"
)

// ViewLayer holds one LayerCollection per collection reachable from a scene.
type ViewLayer struct {
	entries map[*Collection]*LayerCollection
	active  *LayerCollection
}

// LayerCollection carries the working-view flag of one collection. It goes
// stale when its collection is unlinked; a relinked collection gets a fresh
// entry.
type LayerCollection struct {
	coll         *Collection
	hideViewport bool
	stale        bool
}

func newViewLayer() *ViewLayer {
	return &ViewLayer{entries: map[*Collection]*LayerCollection{}}
}

func (l *ViewLayer) contains(c *Collection) bool {
	_, ok := l.entries[c]
	return ok
}

// build creates default entries for c and everything below it, replacing any
// existing ones.
func (l *ViewLayer) build(c *Collection) {
	if old, ok := l.entries[c]; ok {
		old.stale = true
	}
	l.entries[c] = &LayerCollection{coll: c}
	for _, n := range c.children {
		if sub, ok := n.(*Collection); ok {
			l.build(sub)
		}
	}
}

func (l *ViewLayer) drop(c *Collection) {
	if e, ok := l.entries[c]; ok {
		c.hideViewport = e.hideViewport
		e.stale = true
		delete(l.entries, c)
	}
	for _, n := range c.children {
		if sub, ok := n.(*Collection); ok {
			l.drop(sub)
		}
	}
}

func (lc *LayerCollection) Collection() *Collection { return lc.coll }

func (lc *LayerCollection) Stale() bool { return lc.stale }

func (lc *LayerCollection) HideViewport() (bool, error) {
	if lc.stale {
		return false, fmt.Errorf("%s: %w", lc.coll.id, ErrStaleLayer)
	}
	return lc.hideViewport, nil
}

func (lc *LayerCollection) SetHideViewport(hidden bool) error {
	if lc.stale {
		return fmt.Errorf("%s: %w", lc.coll.id, ErrStaleLayer)
	}
	lc.hideViewport = hidden
	return nil
}

// LayerCollection returns the current view layer entry of c.
func (f *Forest) LayerCollection(c *Collection) (*LayerCollection, bool) {
	lc, ok := f.layer.entries[c]
	return lc, ok
}

// ActiveLayer returns the entry the active pointer currently refers to, which
// may be stale.
func (f *Forest) ActiveLayer() *LayerCollection {
	return f.layer.active
}

func (f *Forest) Activate(c alphabetize.Container) error {
	n, err := f.nodeFor(alphabetize.ContainerChild(c))
	if err != nil {
		return err
	}
	coll := n.(*Collection)
	lc, ok := f.layer.entries[coll]
	if !ok {
		return fmt.Errorf("%s: %w", coll.id, ErrNotInViewLayer)
	}
	f.layer.active = lc
	return nil
}

func (f *Forest) ActiveHidden() (bool, error) {
	if f.layer.active == nil {
		return false, ErrNoActiveLayer
	}
	return f.layer.active.HideViewport()
}

func (f *Forest) SetActiveHidden(hidden bool) error {
	if f.layer.active == nil {
		return ErrNoActiveLayer
	}
	return f.layer.active.SetHideViewport(hidden)
}

// ViewportHidden reads c's working-view flag without moving the active
// pointer, and reports whether c is in the view layer. Outside the layer it
// returns the flag c carries itself. It is for display and persistence; the
// alphabetize core goes through Activate.
func (f *Forest) ViewportHidden(c *Collection) (hidden, inLayer bool) {
	lc, ok := f.layer.entries[c]
	if !ok {
		return c.hideViewport, false
	}
	return lc.hideViewport, true
}
