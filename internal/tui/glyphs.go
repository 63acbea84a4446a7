package tui

import "strings"

// Some terminal fonts render box-drawing characters poorly; ASCII is the fallback.
type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

func parseGlyphSet(v string) glyphSet {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "ascii":
		return glyphSetASCII
	default:
		return glyphSetUnicode
	}
}

type treeGlyphs struct {
	branch, last, pipe, space string
	collection, object        string
}

func (gs glyphSet) tree() treeGlyphs {
	if gs == glyphSetASCII {
		return treeGlyphs{
			branch: "|-- ", last: "`-- ", pipe: "|   ", space: "    ",
			collection: "+", object: "-",
		}
	}
	return treeGlyphs{
		branch: "├── ", last: "└── ", pipe: "│   ", space: "    ",
		collection: "▸", object: "•",
	}
}
