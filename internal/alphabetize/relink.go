package alphabetize

import (
	"errors"
	"fmt"
)

var ErrInvalidChild = errors.New("invalid child")

// Relink detaches child from parent and attaches it again, which moves it to
// the end of parent's child list. The host resets child's transient state as a
// side effect; restoring it is the caller's job.
func Relink(parent Container, child Child) error {
	if !child.valid() {
		return fmt.Errorf("relink under %q: %w (kind %s)", parent.Name(), ErrInvalidChild, child.Kind)
	}
	if err := parent.Unlink(child); err != nil {
		return fmt.Errorf("unlink %q from %q: %w", child.Name(), parent.Name(), err)
	}
	if err := parent.Link(child); err != nil {
		return fmt.Errorf("link %q into %q: %w", child.Name(), parent.Name(), err)
	}
	return nil
}
