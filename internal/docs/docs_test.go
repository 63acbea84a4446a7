package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	want := []string{"ordering", "scene-files", "visibility"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	md, ok := Get(" Visibility ")
	if !ok || !strings.HasPrefix(md, "# Visibility") {
		t.Fatalf("unexpected topic: ok=%v\n%s", ok, md)
	}
	if _, ok := Get("../docs"); ok {
		t.Fatalf("expected path-like topic to be rejected")
	}
	if _, ok := Get("missing"); ok {
		t.Fatalf("expected unknown topic to be missing")
	}
}
