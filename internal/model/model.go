package model

import "time"

type ChildKind string

const (
	ChildCollection ChildKind = "collection"
	ChildObject     ChildKind = "object"
)

// Document is the persisted form of a forest.
type Document struct {
	Version            int          `json:"version" yaml:"version" toml:"version"`
	ID                 string       `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Scenes             []Scene      `json:"scenes" yaml:"scenes" toml:"scenes"`
	Collections        []Collection `json:"collections" yaml:"collections" toml:"collections"`
	Objects            []Object     `json:"objects" yaml:"objects" toml:"objects"`
	ActiveCollectionID string       `json:"activeCollectionId,omitempty" yaml:"activeCollectionId,omitempty" toml:"activeCollectionId,omitempty"`
}

type Scene struct {
	ID     string `json:"id" yaml:"id" toml:"id"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	RootID string `json:"rootId" yaml:"rootId" toml:"rootId"`
}

type Collection struct {
	ID       string     `json:"id" yaml:"id" toml:"id"`
	Name     string     `json:"name" yaml:"name" toml:"name"`
	Children []ChildRef `json:"children" yaml:"children" toml:"children"`

	// HideRender is the output-time flag; HideViewport is the working-view flag
	// held by the collection's view layer entry, or by the collection itself
	// when no scene reaches it.
	HideRender   bool `json:"hideRender" yaml:"hideRender" toml:"hideRender"`
	HideViewport bool `json:"hideViewport" yaml:"hideViewport" toml:"hideViewport"`
}

type ChildRef struct {
	Kind ChildKind `json:"kind" yaml:"kind" toml:"kind"`
	ID   string    `json:"id" yaml:"id" toml:"id"`
}

type Object struct {
	ID           string `json:"id" yaml:"id" toml:"id"`
	Name         string `json:"name" yaml:"name" toml:"name"`
	HideRender   bool   `json:"hideRender" yaml:"hideRender" toml:"hideRender"`
	HideViewport bool   `json:"hideViewport" yaml:"hideViewport" toml:"hideViewport"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Actor    string    `json:"actor,omitempty"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId,omitempty"`
	Payload  any       `json:"payload"`
}

func (d *Document) FindCollection(id string) (*Collection, bool) {
	for i := range d.Collections {
		if d.Collections[i].ID == id {
			return &d.Collections[i], true
		}
	}
	return nil, false
}

func (d *Document) FindObject(id string) (*Object, bool) {
	for i := range d.Objects {
		if d.Objects[i].ID == id {
			return &d.Objects[i], true
		}
	}
	return nil, false
}

func (d *Document) FindScene(id string) (*Scene, bool) {
	for i := range d.Scenes {
		if d.Scenes[i].ID == id {
			return &d.Scenes[i], true
		}
	}
	return nil, false
}
