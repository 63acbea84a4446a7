package publish

import (
	"bytes"
	"errors"
	"strings"

	"alphabetize-cli/internal/model"
)

type RenderOptions struct {
	// Title overrides the top-level heading.
	Title string
	// IncludeIDs appends each node's id in code spans.
	IncludeIDs bool
}

// RenderForestMarkdown writes one section per scene with its collection tree
// as a nested list, in stored child order.
func RenderForestMarkdown(doc *model.Document, opt RenderOptions) (string, error) {
	if doc == nil {
		return "", errors.New("missing document")
	}

	colls := map[string]*model.Collection{}
	for i := range doc.Collections {
		colls[doc.Collections[i].ID] = &doc.Collections[i]
	}
	objs := map[string]*model.Object{}
	for i := range doc.Objects {
		objs[doc.Objects[i].ID] = &doc.Objects[i]
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Forest"
	}
	writeLn("# " + title)
	writeLn("")
	if len(doc.Scenes) == 0 {
		writeLn("_No scenes._")
		return buf.String(), nil
	}

	var walk func(c *model.Collection, depth int)
	walk = func(c *model.Collection, depth int) {
		pad := strings.Repeat("  ", depth)
		for _, ref := range c.Children {
			switch ref.Kind {
			case model.ChildCollection:
				sub, ok := colls[ref.ID]
				if !ok {
					writeLn(pad + "- _missing collection " + ref.ID + "_")
					continue
				}
				writeLn(pad + "- **" + escape(sub.Name) + "**" + suffix(sub.ID, sub.HideRender, sub.HideViewport, opt.IncludeIDs))
				walk(sub, depth+1)
			case model.ChildObject:
				o, ok := objs[ref.ID]
				if !ok {
					writeLn(pad + "- _missing object " + ref.ID + "_")
					continue
				}
				writeLn(pad + "- " + escape(o.Name) + suffix(o.ID, o.HideRender, o.HideViewport, opt.IncludeIDs))
			}
		}
	}

	for i, s := range doc.Scenes {
		if i > 0 {
			writeLn("")
		}
		writeLn("## " + escape(s.Name))
		writeLn("")
		root, ok := colls[s.RootID]
		if !ok {
			writeLn("_Missing root collection._")
			continue
		}
		if len(root.Children) == 0 {
			writeLn("_Empty._")
			continue
		}
		walk(root, 0)
	}
	return buf.String(), nil
}

func suffix(id string, hideRender, hideViewport bool, includeID bool) string {
	var parts []string
	if hideViewport {
		parts = append(parts, "hidden in viewport")
	}
	if hideRender {
		parts = append(parts, "render off")
	}
	out := ""
	if len(parts) > 0 {
		out += " _(" + strings.Join(parts, ", ") + ")_"
	}
	if includeID {
		out += " `" + id + "`"
	}
	return out
}

var mdEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`)

func escape(s string) string {
	return mdEscaper.Replace(strings.TrimSpace(s))
}
