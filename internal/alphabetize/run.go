package alphabetize

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Options struct {
	CaseSensitive bool
	Logger        zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		CaseSensitive: CaseSensitive,
		Logger:        zerolog.Nop(),
	}
}

// Report summarizes one run.
type Report struct {
	Roots          int `json:"roots"`
	Containers     int `json:"containers"`
	Leaves         int `json:"leaves"`
	Relinks        int `json:"relinks"`
	LeavesRestored int `json:"leavesRestored"`
	Depth          int `json:"depth"`
}

// Alphabetize sorts every root of host with the built-in options.
func Alphabetize(host Host) (Report, error) {
	return Run(host, DefaultOptions())
}

// Run snapshots every root, sorts every root, then restores the transient flag
// of every recorded leaf. The leaf pass runs once, after all roots are sorted:
// relinking a container may reset leaves anywhere in the forest.
func Run(host Host, opts Options) (Report, error) {
	log := opts.Logger
	resolver := NewResolver(host)
	snap := NewSnapshot()
	roots := host.Roots()

	report := Report{Roots: len(roots)}

	for _, root := range roots {
		if root == nil {
			continue
		}
		if err := snap.Capture(resolver, root); err != nil {
			return report, fmt.Errorf("snapshot %q: %w", root.Name(), err)
		}
		snap.CaptureLeaves(root)
	}
	nc, nl := snap.Len()
	log.Debug().Int("containers", nc).Int("leaves", nl).Msg("snapshot taken")

	s := &sorter{
		resolver:      resolver,
		snap:          snap,
		caseSensitive: opts.CaseSensitive,
		log:           log,
		report:        &report,
	}
	for _, root := range roots {
		if root == nil {
			continue
		}
		if err := s.sort(root, 0); err != nil {
			return report, fmt.Errorf("sort %q: %w", root.Name(), err)
		}
	}

	for _, l := range snap.Leaves() {
		rec, _ := snap.Leaf(l)
		if err := l.SetTransientHidden(rec.TransientHidden); err != nil {
			return report, fmt.Errorf("restore viewport visibility of %q: %w", l.Name(), err)
		}
		report.LeavesRestored++
	}
	report.Leaves = nl

	log.Info().
		Int("roots", report.Roots).
		Int("containers", report.Containers).
		Int("relinks", report.Relinks).
		Int("leaves", report.Leaves).
		Msg("alphabetized")
	return report, nil
}
