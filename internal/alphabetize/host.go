package alphabetize

import "fmt"

// Host is the environment a run mutates.
//
// The transient hidden flag of a container is only reachable through a single
// host-wide active pointer: Activate redirects it, ActiveHidden and
// SetActiveHidden read and write through it. Callers should go through a
// Resolver rather than touching the pointer directly.
type Host interface {
	Roots() []Container
	Activate(c Container) error
	ActiveHidden() (bool, error)
	SetActiveHidden(hidden bool) error
}

// Container is a node with an ordered child list.
//
// Implementations must be comparable (typically pointers); snapshots are keyed
// by the interface value.
type Container interface {
	Name() string
	// Children returns the current child list in order. A nil slice means the
	// host reports no child list at all.
	Children() []Child
	Unlink(child Child) error
	// Link appends child to the end of the child list.
	Link(child Child) error
	PersistentHidden() bool
	SetPersistentHidden(hidden bool) error
	// Leaves returns every leaf reachable from this container, deduplicated.
	Leaves() []Leaf
}

// Leaf is a terminal node. Both of its flags are directly accessible.
type Leaf interface {
	Name() string
	PersistentHidden() bool
	SetPersistentHidden(hidden bool) error
	TransientHidden() bool
	SetTransientHidden(hidden bool) error
}

type Kind int

const (
	KindContainer Kind = iota + 1
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLeaf:
		return "leaf"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Child is one entry of a container's child list: exactly one of Container or
// Leaf is set, as named by Kind.
type Child struct {
	Kind      Kind
	Container Container
	Leaf      Leaf
}

func ContainerChild(c Container) Child { return Child{Kind: KindContainer, Container: c} }

func LeafChild(l Leaf) Child { return Child{Kind: KindLeaf, Leaf: l} }

func (c Child) Name() string {
	switch c.Kind {
	case KindContainer:
		return c.Container.Name()
	case KindLeaf:
		return c.Leaf.Name()
	default:
		return ""
	}
}

func (c Child) valid() bool {
	switch c.Kind {
	case KindContainer:
		return c.Container != nil
	case KindLeaf:
		return c.Leaf != nil
	default:
		return false
	}
}
