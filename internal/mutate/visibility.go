package mutate

import (
	"strings"

	"alphabetize-cli/internal/model"
)

type VisibilityResult struct {
	Kind         model.ChildKind
	Changed      bool
	EventPayload map[string]any
}

// SetHidden updates the viewport and/or render flag of a collection or object.
// nil leaves a flag untouched.
func SetHidden(doc *model.Document, id string, viewport, render *bool) (VisibilityResult, error) {
	id = strings.TrimSpace(id)
	var kind model.ChildKind
	var hideViewport, hideRender *bool
	if c, ok := doc.FindCollection(id); ok {
		kind = model.ChildCollection
		hideViewport, hideRender = &c.HideViewport, &c.HideRender
	} else if o, ok := doc.FindObject(id); ok {
		kind = model.ChildObject
		hideViewport, hideRender = &o.HideViewport, &o.HideRender
	} else {
		return VisibilityResult{}, NotFoundError{Kind: "node", ID: id}
	}

	res := VisibilityResult{Kind: kind, EventPayload: map[string]any{"kind": string(kind)}}
	if viewport != nil && *hideViewport != *viewport {
		*hideViewport = *viewport
		res.Changed = true
		res.EventPayload["hideViewport"] = *viewport
	}
	if render != nil && *hideRender != *render {
		*hideRender = *render
		res.Changed = true
		res.EventPayload["hideRender"] = *render
	}
	return res, nil
}
