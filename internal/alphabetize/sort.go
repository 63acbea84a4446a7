package alphabetize

import (
	"fmt"

	"github.com/rs/zerolog"
)

// MissingSnapshotError is returned when the sorter reaches a container that was
// not present when the snapshot was taken.
type MissingSnapshotError struct {
	Name string
}

func (e *MissingSnapshotError) Error() string {
	return fmt.Sprintf("container not in snapshot: %s", e.Name)
}

type sorter struct {
	resolver      *Resolver
	snap          *Snapshot
	caseSensitive bool
	log           zerolog.Logger
	report        *Report
}

func (s *sorter) sort(c Container, depth int) error {
	children := c.Children()
	if children == nil {
		return nil
	}
	s.report.Containers++
	if depth+1 > s.report.Depth {
		s.report.Depth = depth + 1
	}
	if len(children) == 0 {
		return nil
	}

	for _, child := range TargetOrder(children, s.caseSensitive) {
		s.log.Debug().
			Str("parent", c.Name()).
			Str("child", child.Name()).
			Stringer("kind", child.Kind).
			Msg("relink")
		if err := Relink(c, child); err != nil {
			return err
		}
		s.report.Relinks++

		switch child.Kind {
		case KindContainer:
			// Restore before recursing: recursion moves the active pointer.
			if err := s.restoreContainer(child.Container); err != nil {
				return err
			}
			if err := s.sort(child.Container, depth+1); err != nil {
				return err
			}
		case KindLeaf:
			if err := s.restoreLeafPersistent(child.Leaf); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *sorter) restoreContainer(c Container) error {
	rec, ok := s.snap.Container(c)
	if !ok {
		return &MissingSnapshotError{Name: c.Name()}
	}
	if err := s.resolver.SetHidden(c, rec.TransientHidden); err != nil {
		return err
	}
	if err := c.SetPersistentHidden(rec.PersistentHidden); err != nil {
		return fmt.Errorf("restore render visibility of %q: %w", c.Name(), err)
	}
	return nil
}

func (s *sorter) restoreLeafPersistent(l Leaf) error {
	rec, ok := s.snap.Leaf(l)
	if !ok {
		// Only leaves reachable from a root are recorded; anything else was
		// never ours to restore.
		s.log.Warn().Str("leaf", l.Name()).Msg("leaf not in snapshot")
		return nil
	}
	if err := l.SetPersistentHidden(rec.PersistentHidden); err != nil {
		return fmt.Errorf("restore render visibility of %q: %w", l.Name(), err)
	}
	return nil
}
