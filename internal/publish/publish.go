package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"alphabetize-cli/internal/model"

	"github.com/charmbracelet/glamour"
)

type WriteOptions struct {
	Overwrite bool
	Render    RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteForest renders doc to a markdown file at path.
func WriteForest(doc *model.Document, path string, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing output path")
	}
	path = filepath.Clean(path)

	md, err := RenderForestMarkdown(doc, opt.Render)
	if err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

var (
	rendererMu sync.Mutex
	renderers  = map[string]*glamour.TermRenderer{}
)

// RenderTerminal styles markdown for a terminal with a fixed glamour style.
// On renderer failure the markdown is returned unchanged.
func RenderTerminal(md string, style string, width int) string {
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	key := style + ":" + strconv.Itoa(width)

	rendererMu.Lock()
	r := renderers[key]
	if r == nil {
		var err error
		// WithAutoStyle would query the terminal background and can block.
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			rendererMu.Unlock()
			return md
		}
		renderers[key] = r
	}
	rendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
