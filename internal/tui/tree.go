package tui

import (
	"strings"

	"alphabetize-cli/internal/model"

	xansi "github.com/charmbracelet/x/ansi"
)

// treeLines renders every scene of doc as an indented tree, one string per
// line, truncated to width.
func treeLines(doc *model.Document, gs glyphSet, width int) []string {
	if doc == nil || len(doc.Scenes) == 0 {
		return []string{styleMuted().Render("No scenes. Import a scene file or add one with `alphabetize scenes add`.")}
	}
	g := gs.tree()

	colls := map[string]*model.Collection{}
	for i := range doc.Collections {
		colls[doc.Collections[i].ID] = &doc.Collections[i]
	}
	objs := map[string]*model.Object{}
	for i := range doc.Objects {
		objs[doc.Objects[i].ID] = &doc.Objects[i]
	}

	var out []string
	add := func(s string) {
		if width > 0 && xansi.StringWidth(s) > width {
			s = xansi.Truncate(s, width, "…")
		}
		out = append(out, s)
	}

	var walk func(c *model.Collection, prefix string)
	walk = func(c *model.Collection, prefix string) {
		for i, ref := range c.Children {
			last := i == len(c.Children)-1
			branch, next := g.branch, g.pipe
			if last {
				branch, next = g.last, g.space
			}
			switch ref.Kind {
			case model.ChildCollection:
				sub, ok := colls[ref.ID]
				if !ok {
					add(prefix + branch + styleMuted().Render("? "+ref.ID))
					continue
				}
				add(prefix + branch + g.collection + " " + styleCollection().Render(sub.Name) + flags(sub.HideViewport, sub.HideRender))
				walk(sub, prefix+next)
			case model.ChildObject:
				o, ok := objs[ref.ID]
				if !ok {
					add(prefix + branch + styleMuted().Render("? "+ref.ID))
					continue
				}
				add(prefix + branch + g.object + " " + o.Name + flags(o.HideViewport, o.HideRender))
			}
		}
	}

	for i, s := range doc.Scenes {
		if i > 0 {
			add("")
		}
		add(styleHeader().Render(s.Name))
		root, ok := colls[s.RootID]
		if !ok {
			add(styleMuted().Render("missing root collection " + s.RootID))
			continue
		}
		walk(root, "")
	}
	return out
}

func flags(hideViewport, hideRender bool) string {
	var parts []string
	if hideViewport {
		parts = append(parts, "hidden")
	}
	if hideRender {
		parts = append(parts, "no render")
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + styleMuted().Render("("+strings.Join(parts, ", ")+")")
}
