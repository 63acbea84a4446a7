// Package scene is an in-memory scene graph: scenes own a root collection,
// collections hold an ordered mix of child collections and objects, and a
// single view layer carries the working-view visibility of every collection
// behind an active pointer.
//
// Collection.Link reproduces the side effects the alphabetize core has to
// survive:
//   - linking a collection rebuilds the view layer entries of its subtree with
//     default visibility, and handles taken before become stale;
//   - every link resyncs object bases, resetting the working-view flag of every
//     object reachable from a scene root;
//   - linking an object resets that object's render flag.
//
// Add attaches without side effects and is meant for building a forest.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"alphabetize-cli/internal/alphabetize"
)

var (
	ErrNotLinked      = errors.New("not linked to this collection")
	ErrAlreadyLinked  = errors.New("already linked")
	ErrCycle          = errors.New("would create a cycle")
	ErrForeignNode    = errors.New("node belongs to another forest")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrNotInViewLayer = errors.New("collection is not in the view layer")
	ErrNoActiveLayer  = errors.New("no active layer collection")
	ErrStaleLayer     = errors.New("layer collection is stale")
)

// Node is a *Collection or an *Object.
type Node interface {
	ID() string
	Name() string
	child() alphabetize.Child
}

type Forest struct {
	scenes      []*Scene
	collections map[string]*Collection
	objects     map[string]*Object
	collOrder   []*Collection
	objOrder    []*Object
	layer       *ViewLayer
}

type Scene struct {
	id   string
	name string
	root *Collection
}

func (s *Scene) ID() string        { return s.id }
func (s *Scene) Name() string      { return s.name }
func (s *Scene) Root() *Collection { return s.root }

func New() *Forest {
	return &Forest{
		collections: map[string]*Collection{},
		objects:     map[string]*Object{},
		layer:       newViewLayer(),
	}
}

func (f *Forest) NewCollection(id, name string) (*Collection, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("missing collection id")
	}
	if f.idTaken(id) {
		return nil, fmt.Errorf("collection %s: %w", id, ErrDuplicateID)
	}
	c := &Collection{id: id, name: name, forest: f, children: []Node{}}
	f.collections[id] = c
	f.collOrder = append(f.collOrder, c)
	return c, nil
}

func (f *Forest) NewObject(id, name string) (*Object, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("missing object id")
	}
	if f.idTaken(id) {
		return nil, fmt.Errorf("object %s: %w", id, ErrDuplicateID)
	}
	o := &Object{id: id, name: name, forest: f}
	f.objects[id] = o
	f.objOrder = append(f.objOrder, o)
	return o, nil
}

func (f *Forest) idTaken(id string) bool {
	if _, ok := f.collections[id]; ok {
		return true
	}
	if _, ok := f.objects[id]; ok {
		return true
	}
	for _, s := range f.scenes {
		if s.id == id {
			return true
		}
	}
	return false
}

// AddScene makes root the root collection of a new scene and adds its subtree
// to the view layer.
func (f *Forest) AddScene(id, name string, root *Collection) (*Scene, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("missing scene id")
	}
	if root == nil {
		return nil, errors.New("missing root collection")
	}
	if root.forest != f {
		return nil, ErrForeignNode
	}
	if f.idTaken(id) {
		return nil, fmt.Errorf("scene %s: %w", id, ErrDuplicateID)
	}
	if root.parent != nil || root.root {
		return nil, fmt.Errorf("root %s: %w", root.id, ErrAlreadyLinked)
	}
	root.root = true
	s := &Scene{id: id, name: name, root: root}
	f.scenes = append(f.scenes, s)
	f.layer.build(root)
	return s, nil
}

func (f *Forest) Scenes() []*Scene {
	return append([]*Scene(nil), f.scenes...)
}

func (f *Forest) Collection(id string) (*Collection, bool) {
	c, ok := f.collections[id]
	return c, ok
}

func (f *Forest) Object(id string) (*Object, bool) {
	o, ok := f.objects[id]
	return o, ok
}

func (f *Forest) Find(id string) (Node, bool) {
	if c, ok := f.collections[id]; ok {
		return c, true
	}
	if o, ok := f.objects[id]; ok {
		return o, true
	}
	return nil, false
}

// Roots returns the root collection of every scene, in scene order.
func (f *Forest) Roots() []alphabetize.Container {
	out := make([]alphabetize.Container, 0, len(f.scenes))
	for _, s := range f.scenes {
		out = append(out, s.root)
	}
	return out
}

// resyncBases resets the working-view flag of every object that has a base,
// that is every object reachable from a scene root. Objects only held by loose
// collections, or by none, have no base and keep their flag.
func (f *Forest) resyncBases() {
	for _, s := range f.scenes {
		for _, o := range s.root.Objects() {
			o.hideViewport = false
		}
	}
}

func (f *Forest) nodeFor(ch alphabetize.Child) (Node, error) {
	switch ch.Kind {
	case alphabetize.KindContainer:
		c, ok := ch.Container.(*Collection)
		if !ok || c == nil {
			return nil, fmt.Errorf("container %T: %w", ch.Container, ErrForeignNode)
		}
		if c.forest != f {
			return nil, ErrForeignNode
		}
		return c, nil
	case alphabetize.KindLeaf:
		o, ok := ch.Leaf.(*Object)
		if !ok || o == nil {
			return nil, fmt.Errorf("leaf %T: %w", ch.Leaf, ErrForeignNode)
		}
		if o.forest != f {
			return nil, ErrForeignNode
		}
		return o, nil
	default:
		return nil, fmt.Errorf("child kind %s: %w", ch.Kind, alphabetize.ErrInvalidChild)
	}
}

type Stats struct {
	Scenes      int `json:"scenes"`
	Collections int `json:"collections"`
	Objects     int `json:"objects"`
	Links       int `json:"links"`
}

func (f *Forest) Stats() Stats {
	st := Stats{
		Scenes:      len(f.scenes),
		Collections: len(f.collOrder),
		Objects:     len(f.objOrder),
	}
	for _, c := range f.collOrder {
		st.Links += len(c.children)
	}
	return st
}
