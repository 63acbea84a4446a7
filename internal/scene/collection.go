package scene

import (
	"fmt"
	"strings"

	"alphabetize-cli/internal/alphabetize"
)

type Collection struct {
	id         string
	name       string
	forest     *Forest
	parent     *Collection
	root       bool
	children   []Node
	hideRender bool
	// hideViewport holds the working-view flag while c has no view layer
	// entry. Inside the layer the entry is authoritative.
	hideViewport bool
}

func (c *Collection) ID() string               { return c.id }
func (c *Collection) Name() string             { return c.name }
func (c *Collection) Parent() *Collection      { return c.parent }
func (c *Collection) IsRoot() bool             { return c.root }
func (c *Collection) child() alphabetize.Child { return alphabetize.ContainerChild(c) }
func (c *Collection) PersistentHidden() bool   { return c.hideRender }

func (c *Collection) SetPersistentHidden(hidden bool) error {
	c.hideRender = hidden
	return nil
}

// Nodes returns a copy of the child list.
func (c *Collection) Nodes() []Node {
	return append([]Node(nil), c.children...)
}

func (c *Collection) Children() []alphabetize.Child {
	out := make([]alphabetize.Child, 0, len(c.children))
	for _, n := range c.children {
		out = append(out, n.child())
	}
	return out
}

// Path is the slash-joined chain of names from the scene root.
func (c *Collection) Path() string {
	var parts []string
	for cur := c; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

func (c *Collection) Leaves() []alphabetize.Leaf {
	var out []alphabetize.Leaf
	seen := map[*Object]bool{}
	var walk func(cur *Collection)
	walk = func(cur *Collection) {
		for _, n := range cur.children {
			switch n := n.(type) {
			case *Object:
				if !seen[n] {
					seen[n] = true
					out = append(out, n)
				}
			case *Collection:
				walk(n)
			}
		}
	}
	walk(c)
	return out
}

// Objects returns every object reachable from c, deduplicated.
func (c *Collection) Objects() []*Object {
	leaves := c.Leaves()
	out := make([]*Object, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, l.(*Object))
	}
	return out
}

func (c *Collection) indexOf(n Node) int {
	for i, x := range c.children {
		if x == n {
			return i
		}
	}
	return -1
}

func (c *Collection) isDescendantOf(other *Collection) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (c *Collection) checkAttach(n Node) error {
	if c.indexOf(n) >= 0 {
		return fmt.Errorf("%s under %s: %w", n.ID(), c.id, ErrAlreadyLinked)
	}
	if sub, ok := n.(*Collection); ok {
		if sub.root || sub.parent != nil {
			return fmt.Errorf("collection %s: %w", sub.id, ErrAlreadyLinked)
		}
		if c.isDescendantOf(sub) {
			return fmt.Errorf("collection %s under %s: %w", sub.id, c.id, ErrCycle)
		}
	}
	return nil
}

func (c *Collection) attach(n Node) {
	c.children = append(c.children, n)
	if sub, ok := n.(*Collection); ok {
		sub.parent = c
		if c.forest.layer.contains(c) {
			c.forest.layer.build(sub)
		}
	}
}

// Add appends n without any host side effects.
func (c *Collection) Add(n Node) error {
	if n == nil {
		return alphabetize.ErrInvalidChild
	}
	child := n.child()
	if _, err := c.forest.nodeFor(child); err != nil {
		return err
	}
	if err := c.checkAttach(n); err != nil {
		return err
	}
	c.attach(n)
	return nil
}

func (c *Collection) Unlink(ch alphabetize.Child) error {
	n, err := c.forest.nodeFor(ch)
	if err != nil {
		return err
	}
	idx := c.indexOf(n)
	if idx < 0 {
		return fmt.Errorf("%s under %s: %w", n.ID(), c.id, ErrNotLinked)
	}
	c.children = append(c.children[:idx], c.children[idx+1:]...)
	if sub, ok := n.(*Collection); ok {
		sub.parent = nil
		c.forest.layer.drop(sub)
	}
	return nil
}

func (c *Collection) Link(ch alphabetize.Child) error {
	n, err := c.forest.nodeFor(ch)
	if err != nil {
		return err
	}
	if err := c.checkAttach(n); err != nil {
		return err
	}
	c.attach(n)
	if o, ok := n.(*Object); ok {
		o.hideRender = false
	}
	c.forest.resyncBases()
	return nil
}
