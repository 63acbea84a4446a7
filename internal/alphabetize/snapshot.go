package alphabetize

// Record is the visibility state of one node.
type Record struct {
	PersistentHidden bool `json:"persistentHidden"`
	TransientHidden  bool `json:"transientHidden"`
}

// Snapshot holds the visibility state of every node seen before a run starts
// mutating anything.
type Snapshot struct {
	containers map[Container]Record
	leaves     map[Leaf]Record
	leafOrder  []Leaf
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		containers: map[Container]Record{},
		leaves:     map[Leaf]Record{},
	}
}

// Capture records root and every container below it. Leaves are not recorded
// here; see CaptureLeaves.
func (s *Snapshot) Capture(r *Resolver, root Container) error {
	var walk func(c Container) error
	walk = func(c Container) error {
		transient, err := r.Hidden(c)
		if err != nil {
			return err
		}
		s.containers[c] = Record{
			PersistentHidden: c.PersistentHidden(),
			TransientHidden:  transient,
		}
		for _, ch := range c.Children() {
			if ch.Kind != KindContainer || ch.Container == nil {
				continue
			}
			if err := walk(ch.Container); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}

// CaptureLeaves records every leaf reachable from root that has not been seen
// yet. A leaf shared by several roots keeps its first record.
func (s *Snapshot) CaptureLeaves(root Container) {
	for _, l := range root.Leaves() {
		if l == nil {
			continue
		}
		if _, ok := s.leaves[l]; ok {
			continue
		}
		s.leaves[l] = Record{
			PersistentHidden: l.PersistentHidden(),
			TransientHidden:  l.TransientHidden(),
		}
		s.leafOrder = append(s.leafOrder, l)
	}
}

func (s *Snapshot) Container(c Container) (Record, bool) {
	rec, ok := s.containers[c]
	return rec, ok
}

func (s *Snapshot) Leaf(l Leaf) (Record, bool) {
	rec, ok := s.leaves[l]
	return rec, ok
}

// Leaves returns the recorded leaves in first-seen order.
func (s *Snapshot) Leaves() []Leaf {
	return append([]Leaf(nil), s.leafOrder...)
}

func (s *Snapshot) Len() (containers, leaves int) {
	return len(s.containers), len(s.leaves)
}
