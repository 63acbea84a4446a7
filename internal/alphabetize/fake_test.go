package alphabetize

import (
	"errors"
	"reflect"
	"sync"
	"testing"
)

type fakeLeaf struct {
	name       string
	persistent bool
	transient  bool
}

func (l *fakeLeaf) Name() string                     { return l.name }
func (l *fakeLeaf) PersistentHidden() bool           { return l.persistent }
func (l *fakeLeaf) SetPersistentHidden(h bool) error { l.persistent = h; return nil }
func (l *fakeLeaf) TransientHidden() bool            { return l.transient }
func (l *fakeLeaf) SetTransientHidden(h bool) error  { l.transient = h; return nil }

type fakeContainer struct {
	name       string
	children   []Child
	absent     bool
	persistent bool
	transient  bool
	linkErr    error
}

func (c *fakeContainer) Name() string { return c.name }

func (c *fakeContainer) Children() []Child {
	if c.absent {
		return nil
	}
	return append([]Child{}, c.children...)
}

func (c *fakeContainer) Unlink(ch Child) error {
	for i, x := range c.children {
		if x == ch {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return nil
		}
	}
	return errors.New("not linked")
}

func (c *fakeContainer) Link(ch Child) error {
	if c.linkErr != nil {
		return c.linkErr
	}
	c.children = append(c.children, ch)
	return nil
}

func (c *fakeContainer) PersistentHidden() bool { return c.persistent }

func (c *fakeContainer) SetPersistentHidden(h bool) error {
	c.persistent = h
	return nil
}

func (c *fakeContainer) Leaves() []Leaf {
	var out []Leaf
	for _, ch := range c.children {
		switch ch.Kind {
		case KindLeaf:
			out = append(out, ch.Leaf)
		case KindContainer:
			out = append(out, ch.Container.Leaves()...)
		}
	}
	return out
}

// fakeHost flags any access that happens while another redirect is in flight.
type fakeHost struct {
	mu          sync.Mutex
	roots       []Container
	active      *fakeContainer
	inFlight    int
	interleaved bool
}

func (h *fakeHost) Roots() []Container { return h.roots }

func (h *fakeHost) Activate(c Container) error {
	fc, ok := c.(*fakeContainer)
	if !ok {
		return errors.New("foreign container")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight++
	if h.inFlight > 1 {
		h.interleaved = true
	}
	h.active = fc
	return nil
}

func (h *fakeHost) ActiveHidden() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight--
	return h.active.transient, nil
}

func (h *fakeHost) SetActiveHidden(v bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight--
	h.active.transient = v
	return nil
}

func names(children []Child) []string {
	out := make([]string, 0, len(children))
	for _, ch := range children {
		out = append(out, ch.Name())
	}
	return out
}

func TestTargetOrder_ExactAndFolded(t *testing.T) {
	children := []Child{
		LeafChild(&fakeLeaf{name: "Banana"}),
		LeafChild(&fakeLeaf{name: "apple"}),
		LeafChild(&fakeLeaf{name: "Cherry"}),
	}
	if got, want := names(TargetOrder(children, true)), []string{"Banana", "Cherry", "apple"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("case-sensitive: got %v want %v", got, want)
	}
	if got, want := names(TargetOrder(children, false)), []string{"apple", "Banana", "Cherry"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("case-insensitive: got %v want %v", got, want)
	}
	if got, want := names(children), []string{"Banana", "apple", "Cherry"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("input was reordered: %v", got)
	}
}

func TestTargetOrder_StableForEqualKeys(t *testing.T) {
	first := &fakeLeaf{name: "Lamp"}
	second := &fakeLeaf{name: "lamp"}
	got := TargetOrder([]Child{LeafChild(first), LeafChild(second)}, false)
	if got[0].Leaf != first || got[1].Leaf != second {
		t.Fatalf("expected equal keys to keep their order; got %v", names(got))
	}
}

func TestRelink_MovesChildToEnd(t *testing.T) {
	a := LeafChild(&fakeLeaf{name: "a"})
	b := LeafChild(&fakeLeaf{name: "b"})
	c := LeafChild(&fakeLeaf{name: "c"})
	parent := &fakeContainer{name: "p", children: []Child{a, b, c}}

	if err := Relink(parent, a); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if got, want := names(parent.children), []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestRelink_RejectsZeroChild(t *testing.T) {
	parent := &fakeContainer{name: "p"}
	if err := Relink(parent, Child{}); !errors.Is(err, ErrInvalidChild) {
		t.Fatalf("expected ErrInvalidChild; got %v", err)
	}
}

func TestRun_AbsentChildrenIsNoOp(t *testing.T) {
	root := &fakeContainer{name: "root", absent: true}
	host := &fakeHost{roots: []Container{root}}

	rep, err := Alphabetize(host)
	if err != nil {
		t.Fatalf("Alphabetize: %v", err)
	}
	if rep.Relinks != 0 || rep.Containers != 0 {
		t.Fatalf("expected no work; got %+v", rep)
	}
}

func TestRun_HostFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	inner := &fakeContainer{name: "inner", linkErr: boom}
	inner.children = []Child{
		LeafChild(&fakeLeaf{name: "b"}),
		LeafChild(&fakeLeaf{name: "a"}),
	}
	root := &fakeContainer{name: "root", children: []Child{ContainerChild(inner)}}
	host := &fakeHost{roots: []Container{root}}

	_, err := Alphabetize(host)
	if !errors.Is(err, boom) {
		t.Fatalf("expected host error to propagate; got %v", err)
	}
	// No rollback: the first unlink already happened.
	if got := len(inner.children); got != 1 {
		t.Fatalf("expected partially relinked list of 1; got %d", got)
	}
}

func TestSorter_MissingSnapshot(t *testing.T) {
	stray := &fakeContainer{name: "stray"}
	root := &fakeContainer{name: "root", children: []Child{ContainerChild(stray)}}
	host := &fakeHost{roots: []Container{root}}
	rep := Report{}
	s := &sorter{
		resolver: NewResolver(host),
		snap:     NewSnapshot(),
		log:      DefaultOptions().Logger,
		report:   &rep,
	}
	err := s.sort(root, 0)
	var missing *MissingSnapshotError
	if !errors.As(err, &missing) || missing.Name != "stray" {
		t.Fatalf("expected MissingSnapshotError for stray; got %v", err)
	}
}

func TestSnapshot_SharedLeafFirstSeenWins(t *testing.T) {
	shared := &fakeLeaf{name: "shared", transient: true}
	one := &fakeContainer{name: "one", children: []Child{LeafChild(shared)}}
	two := &fakeContainer{name: "two", children: []Child{LeafChild(shared)}}

	snap := NewSnapshot()
	snap.CaptureLeaves(one)
	shared.transient = false
	snap.CaptureLeaves(two)

	rec, ok := snap.Leaf(shared)
	if !ok || !rec.TransientHidden {
		t.Fatalf("expected first record to win; got %+v ok=%v", rec, ok)
	}
	if got := len(snap.Leaves()); got != 1 {
		t.Fatalf("expected 1 recorded leaf; got %d", got)
	}
}

func TestResolver_SerializesRedirects(t *testing.T) {
	var roots []Container
	for i := 0; i < 8; i++ {
		roots = append(roots, &fakeContainer{name: "c"})
	}
	host := &fakeHost{roots: roots}
	r := NewResolver(host)

	var wg sync.WaitGroup
	for _, c := range roots {
		wg.Add(1)
		go func(c Container) {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				if err := r.SetHidden(c, n%2 == 0); err != nil {
					t.Errorf("SetHidden: %v", err)
					return
				}
				if _, err := r.Hidden(c); err != nil {
					t.Errorf("Hidden: %v", err)
					return
				}
			}
		}(c)
	}
	wg.Wait()

	if host.interleaved {
		t.Fatalf("two redirects were in flight at once")
	}
}
