package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"alphabetize-cli/internal/model"

	"github.com/google/uuid"
)

const (
	PrefixScene      = "scn"
	PrefixCollection = "col"
	PrefixObject     = "obj"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NewID returns a random id with prefix that is not yet used in doc.
func NewID(doc *model.Document, prefix string) (string, error) {
	for {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if doc == nil || !idExists(doc, id) {
			return id, nil
		}
	}
}

// NewDocumentID returns a fresh document identity.
func NewDocumentID() string {
	return uuid.NewString()
}

func idExists(doc *model.Document, id string) bool {
	for _, s := range doc.Scenes {
		if s.ID == id {
			return true
		}
	}
	for _, c := range doc.Collections {
		if c.ID == id {
			return true
		}
	}
	for _, o := range doc.Objects {
		if o.ID == id {
			return true
		}
	}
	return false
}
