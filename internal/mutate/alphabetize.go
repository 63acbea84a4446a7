package mutate

import (
	"errors"
	"fmt"

	"alphabetize-cli/internal/alphabetize"
	"alphabetize-cli/internal/model"
	"alphabetize-cli/internal/scene"
)

var ErrEmptyForest = errors.New("no scene to alphabetize")

type AlphabetizeResult struct {
	Document     model.Document
	Report       alphabetize.Report
	Changed      bool
	EventPayload map[string]any
}

// Alphabetize sorts every collection of doc and returns the sorted document.
// doc itself is not modified, so a failed run leaves nothing to roll back.
// Callers are responsible for saving the result and appending the
// forest.alphabetize event.
func Alphabetize(doc *model.Document, opts alphabetize.Options) (AlphabetizeResult, error) {
	if doc == nil || len(doc.Scenes) == 0 {
		return AlphabetizeResult{}, ErrEmptyForest
	}
	f, err := scene.FromDocument(*doc)
	if err != nil {
		return AlphabetizeResult{}, fmt.Errorf("load forest: %w", err)
	}

	report, err := alphabetize.Run(f, opts)
	if err != nil {
		return AlphabetizeResult{Report: report}, err
	}

	// The run leaves the active pointer on whatever it restored last.
	if id := doc.ActiveCollectionID; id != "" {
		if c, ok := f.Collection(id); ok {
			if err := f.Activate(c); err != nil {
				return AlphabetizeResult{Report: report}, fmt.Errorf("reactivate %s: %w", id, err)
			}
		}
	}

	out := f.Document()
	out.ID = doc.ID
	if doc.Version > out.Version {
		out.Version = doc.Version
	}
	return AlphabetizeResult{
		Document: out,
		Report:   report,
		Changed:  !sameOrder(doc, &out),
		EventPayload: map[string]any{
			"roots":      report.Roots,
			"containers": report.Containers,
			"relinks":    report.Relinks,
			"leaves":     report.Leaves,
		},
	}, nil
}

func sameOrder(a, b *model.Document) bool {
	if len(a.Collections) != len(b.Collections) {
		return false
	}
	for i := range a.Collections {
		x, y := a.Collections[i].Children, b.Collections[i].Children
		if len(x) != len(y) {
			return false
		}
		for j := range x {
			if x[j] != y[j] {
				return false
			}
		}
	}
	return true
}
