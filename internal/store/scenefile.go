package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"alphabetize-cli/internal/model"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type FileFormat string

const (
	FileJSON FileFormat = "json"
	FileYAML FileFormat = "yaml"
	FileTOML FileFormat = "toml"
)

// SceneFile is the hand-authored form of a document: each scene carries its
// collection tree inline and objects are declared once and referenced by id.
type SceneFile struct {
	Version int               `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Active  string            `json:"active,omitempty" yaml:"active,omitempty" toml:"active,omitempty"`
	Scenes  []SceneSpec       `json:"scenes" yaml:"scenes" toml:"scenes"`
	Objects []ObjectSpec      `json:"objects,omitempty" yaml:"objects,omitempty" toml:"objects,omitempty"`
	Loose   []*CollectionSpec `json:"loose,omitempty" yaml:"loose,omitempty" toml:"loose,omitempty"`
}

type SceneSpec struct {
	ID   string          `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name string          `json:"name" yaml:"name" toml:"name"`
	Root *CollectionSpec `json:"root" yaml:"root" toml:"root"`
}

type CollectionSpec struct {
	ID           string      `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name         string      `json:"name" yaml:"name" toml:"name"`
	HideRender   bool        `json:"hideRender,omitempty" yaml:"hideRender,omitempty" toml:"hideRender,omitempty"`
	HideViewport bool        `json:"hideViewport,omitempty" yaml:"hideViewport,omitempty" toml:"hideViewport,omitempty"`
	Children     []ChildSpec `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// ChildSpec holds exactly one of Collection or Object (an object id).
type ChildSpec struct {
	Collection *CollectionSpec `json:"collection,omitempty" yaml:"collection,omitempty" toml:"collection,omitempty"`
	Object     string          `json:"object,omitempty" yaml:"object,omitempty" toml:"object,omitempty"`
}

type ObjectSpec struct {
	ID           string `json:"id" yaml:"id" toml:"id"`
	Name         string `json:"name" yaml:"name" toml:"name"`
	HideRender   bool   `json:"hideRender,omitempty" yaml:"hideRender,omitempty" toml:"hideRender,omitempty"`
	HideViewport bool   `json:"hideViewport,omitempty" yaml:"hideViewport,omitempty" toml:"hideViewport,omitempty"`
}

// FileFormatFor picks a format from an explicit name or, when empty, the file extension.
func FileFormatFor(path, explicit string) (FileFormat, error) {
	name := strings.ToLower(strings.TrimSpace(explicit))
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch name {
	case "json":
		return FileJSON, nil
	case "yaml", "yml":
		return FileYAML, nil
	case "toml":
		return FileTOML, nil
	default:
		return "", fmt.Errorf("unknown scene file format %q (want json|yaml|toml)", name)
	}
}

func DecodeSceneFile(data []byte, f FileFormat) (*SceneFile, error) {
	var sf SceneFile
	var err error
	switch f {
	case FileJSON:
		err = json.Unmarshal(data, &sf)
	case FileYAML:
		err = yaml.Unmarshal(data, &sf)
	case FileTOML:
		_, err = toml.Decode(string(data), &sf)
	default:
		err = fmt.Errorf("unknown scene file format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return &sf, nil
}

func EncodeSceneFile(sf *SceneFile, f FileFormat) ([]byte, error) {
	switch f {
	case FileJSON:
		b, err := json.MarshalIndent(sf, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case FileYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(sf); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FileTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(sf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown scene file format %q", f)
	}
}

// ReadSceneFile reads and converts a scene file into a document.
func ReadSceneFile(path, format string) (*model.Document, error) {
	f, err := FileFormatFor(path, format)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sf, err := DecodeSceneFile(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf.Document()
}

func WriteSceneFile(path, format string, doc *model.Document) error {
	f, err := FileFormatFor(path, format)
	if err != nil {
		return err
	}
	data, err := EncodeSceneFile(NewSceneFile(doc), f)
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data, 0o644)
}

// Document flattens the nested form. Collections without an id get a fresh one.
func (sf *SceneFile) Document() (*model.Document, error) {
	doc := &model.Document{
		Version:            1,
		Scenes:             []model.Scene{},
		Collections:        []model.Collection{},
		Objects:            []model.Object{},
		ActiveCollectionID: strings.TrimSpace(sf.Active),
	}
	objects := map[string]bool{}
	for _, o := range sf.Objects {
		id := strings.TrimSpace(o.ID)
		if id == "" {
			return nil, fmt.Errorf("object %q: missing id", o.Name)
		}
		if objects[id] {
			return nil, fmt.Errorf("object %s: duplicate id", id)
		}
		objects[id] = true
		doc.Objects = append(doc.Objects, model.Object{
			ID:           id,
			Name:         o.Name,
			HideRender:   o.HideRender,
			HideViewport: o.HideViewport,
		})
	}

	seen := map[string]bool{}
	var flatten func(c *CollectionSpec) (string, error)
	flatten = func(c *CollectionSpec) (string, error) {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			var err error
			if id, err = NewID(doc, PrefixCollection); err != nil {
				return "", err
			}
		}
		if seen[id] || objects[id] {
			return "", fmt.Errorf("collection %s: duplicate id", id)
		}
		seen[id] = true

		idx := len(doc.Collections)
		doc.Collections = append(doc.Collections, model.Collection{
			ID:           id,
			Name:         c.Name,
			Children:     []model.ChildRef{},
			HideRender:   c.HideRender,
			HideViewport: c.HideViewport,
		})
		var refs []model.ChildRef
		for i, ch := range c.Children {
			switch {
			case ch.Collection != nil && ch.Object != "":
				return "", fmt.Errorf("collection %s child %d: both collection and object set", id, i)
			case ch.Collection != nil:
				subID, err := flatten(ch.Collection)
				if err != nil {
					return "", err
				}
				refs = append(refs, model.ChildRef{Kind: model.ChildCollection, ID: subID})
			case ch.Object != "":
				if !objects[ch.Object] {
					return "", fmt.Errorf("collection %s: unknown object %s", id, ch.Object)
				}
				refs = append(refs, model.ChildRef{Kind: model.ChildObject, ID: ch.Object})
			default:
				return "", fmt.Errorf("collection %s child %d: empty", id, i)
			}
		}
		if refs != nil {
			doc.Collections[idx].Children = refs
		}
		return id, nil
	}

	for i, s := range sf.Scenes {
		if s.Root == nil {
			return nil, fmt.Errorf("scene %q: missing root collection", s.Name)
		}
		id := strings.TrimSpace(s.ID)
		if id == "" {
			var err error
			if id, err = NewID(doc, PrefixScene); err != nil {
				return nil, err
			}
		}
		rootID, err := flatten(sf.Scenes[i].Root)
		if err != nil {
			return nil, err
		}
		doc.Scenes = append(doc.Scenes, model.Scene{ID: id, Name: s.Name, RootID: rootID})
	}
	for _, c := range sf.Loose {
		if _, err := flatten(c); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// NewSceneFile nests doc back into the authoring form. Collections that no
// scene reaches are kept under Loose.
func NewSceneFile(doc *model.Document) *SceneFile {
	sf := &SceneFile{
		Version: doc.Version,
		Active:  doc.ActiveCollectionID,
		Scenes:  []SceneSpec{},
	}
	for _, o := range doc.Objects {
		sf.Objects = append(sf.Objects, ObjectSpec{
			ID:           o.ID,
			Name:         o.Name,
			HideRender:   o.HideRender,
			HideViewport: o.HideViewport,
		})
	}

	byID := map[string]*model.Collection{}
	for i := range doc.Collections {
		byID[doc.Collections[i].ID] = &doc.Collections[i]
	}
	placed := map[string]bool{}
	var nest func(id string) *CollectionSpec
	nest = func(id string) *CollectionSpec {
		c, ok := byID[id]
		if !ok || placed[id] {
			return nil
		}
		placed[id] = true
		spec := &CollectionSpec{
			ID:           c.ID,
			Name:         c.Name,
			HideRender:   c.HideRender,
			HideViewport: c.HideViewport,
		}
		for _, ref := range c.Children {
			switch ref.Kind {
			case model.ChildCollection:
				if sub := nest(ref.ID); sub != nil {
					spec.Children = append(spec.Children, ChildSpec{Collection: sub})
				}
			case model.ChildObject:
				spec.Children = append(spec.Children, ChildSpec{Object: ref.ID})
			}
		}
		return spec
	}

	for _, s := range doc.Scenes {
		sf.Scenes = append(sf.Scenes, SceneSpec{ID: s.ID, Name: s.Name, Root: nest(s.RootID)})
	}
	for _, c := range doc.Collections {
		if placed[c.ID] || hasParent(doc, c.ID) {
			continue
		}
		if spec := nest(c.ID); spec != nil {
			sf.Loose = append(sf.Loose, spec)
		}
	}
	return sf
}

func hasParent(doc *model.Document, id string) bool {
	for _, c := range doc.Collections {
		for _, ref := range c.Children {
			if ref.Kind == model.ChildCollection && ref.ID == id {
				return true
			}
		}
	}
	return false
}
