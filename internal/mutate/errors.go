package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

type AlreadyLinkedError struct {
	ObjectID     string
	CollectionID string
}

func (e AlreadyLinkedError) Error() string {
	return fmt.Sprintf("object %s already linked to %s", e.ObjectID, e.CollectionID)
}

type EmptyNameError struct {
	Kind string
}

func (e EmptyNameError) Error() string {
	return fmt.Sprintf("%s name is empty", e.Kind)
}
