package mutate

import (
	"strings"

	"alphabetize-cli/internal/model"
	"alphabetize-cli/internal/store"
)

// RootCollectionName is the name every new scene gives its root collection.
const RootCollectionName = "Scene Collection"

type AddResult struct {
	ID           string
	EventPayload map[string]any
}

// AddScene creates a scene and its root collection.
// Callers are responsible for saving doc and appending the scene.add event.
func AddScene(doc *model.Document, name string) (AddResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddResult{}, EmptyNameError{Kind: "scene"}
	}
	sceneID, err := store.NewID(doc, store.PrefixScene)
	if err != nil {
		return AddResult{}, err
	}
	rootID, err := store.NewID(doc, store.PrefixCollection)
	if err != nil {
		return AddResult{}, err
	}
	doc.Collections = append(doc.Collections, model.Collection{
		ID:       rootID,
		Name:     RootCollectionName,
		Children: []model.ChildRef{},
	})
	doc.Scenes = append(doc.Scenes, model.Scene{ID: sceneID, Name: name, RootID: rootID})
	return AddResult{
		ID: sceneID,
		EventPayload: map[string]any{
			"name":   name,
			"rootId": rootID,
		},
	}, nil
}

// AddCollection creates a collection as the last child of parentID.
func AddCollection(doc *model.Document, parentID, name string) (AddResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddResult{}, EmptyNameError{Kind: "collection"}
	}
	parentID = strings.TrimSpace(parentID)
	if _, ok := doc.FindCollection(parentID); !ok {
		return AddResult{}, NotFoundError{Kind: "collection", ID: parentID}
	}
	id, err := store.NewID(doc, store.PrefixCollection)
	if err != nil {
		return AddResult{}, err
	}
	doc.Collections = append(doc.Collections, model.Collection{
		ID:       id,
		Name:     name,
		Children: []model.ChildRef{},
	})
	// Re-find: the append may have moved the backing array.
	parent, _ := doc.FindCollection(parentID)
	parent.Children = append(parent.Children, model.ChildRef{Kind: model.ChildCollection, ID: id})
	return AddResult{
		ID: id,
		EventPayload: map[string]any{
			"name":     name,
			"parentId": parentID,
		},
	}, nil
}

// AddObject creates an object, linked to collectionID when it is not empty.
func AddObject(doc *model.Document, name, collectionID string) (AddResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return AddResult{}, EmptyNameError{Kind: "object"}
	}
	collectionID = strings.TrimSpace(collectionID)
	if collectionID != "" {
		if _, ok := doc.FindCollection(collectionID); !ok {
			return AddResult{}, NotFoundError{Kind: "collection", ID: collectionID}
		}
	}
	id, err := store.NewID(doc, store.PrefixObject)
	if err != nil {
		return AddResult{}, err
	}
	doc.Objects = append(doc.Objects, model.Object{ID: id, Name: name})
	payload := map[string]any{"name": name}
	if collectionID != "" {
		c, _ := doc.FindCollection(collectionID)
		c.Children = append(c.Children, model.ChildRef{Kind: model.ChildObject, ID: id})
		payload["collectionId"] = collectionID
	}
	return AddResult{ID: id, EventPayload: payload}, nil
}

// LinkObject adds objectID as the last child of collectionID. An object may be
// linked to many collections but only once to each.
func LinkObject(doc *model.Document, objectID, collectionID string) (AddResult, error) {
	objectID = strings.TrimSpace(objectID)
	collectionID = strings.TrimSpace(collectionID)
	if _, ok := doc.FindObject(objectID); !ok {
		return AddResult{}, NotFoundError{Kind: "object", ID: objectID}
	}
	c, ok := doc.FindCollection(collectionID)
	if !ok {
		return AddResult{}, NotFoundError{Kind: "collection", ID: collectionID}
	}
	for _, ref := range c.Children {
		if ref.Kind == model.ChildObject && ref.ID == objectID {
			return AddResult{}, AlreadyLinkedError{ObjectID: objectID, CollectionID: collectionID}
		}
	}
	c.Children = append(c.Children, model.ChildRef{Kind: model.ChildObject, ID: objectID})
	return AddResult{
		ID: objectID,
		EventPayload: map[string]any{
			"collectionId": collectionID,
		},
	}, nil
}
