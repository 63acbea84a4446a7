package scene

import (
	"errors"
	"reflect"
	"testing"

	"alphabetize-cli/internal/alphabetize"
	"alphabetize-cli/internal/model"
)

func mustCollection(t *testing.T, f *Forest, id, name string) *Collection {
	t.Helper()
	c, err := f.NewCollection(id, name)
	if err != nil {
		t.Fatalf("NewCollection(%s): %v", id, err)
	}
	return c
}

func mustObject(t *testing.T, f *Forest, id, name string) *Object {
	t.Helper()
	o, err := f.NewObject(id, name)
	if err != nil {
		t.Fatalf("NewObject(%s): %v", id, err)
	}
	return o
}

func mustAdd(t *testing.T, parent *Collection, n Node) {
	t.Helper()
	if err := parent.Add(n); err != nil {
		t.Fatalf("Add %s under %s: %v", n.ID(), parent.ID(), err)
	}
}

func nodeIDs(c *Collection) []string {
	var out []string
	for _, n := range c.Nodes() {
		out = append(out, n.ID())
	}
	return out
}

func smallForest(t *testing.T) (*Forest, *Collection, *Collection, *Object) {
	t.Helper()
	f := New()
	root := mustCollection(t, f, "root", "Scene Collection")
	sub := mustCollection(t, f, "sub", "Props")
	obj := mustObject(t, f, "cube", "Cube")
	mustAdd(t, root, sub)
	mustAdd(t, sub, obj)
	if _, err := f.AddScene("scn", "Scene", root); err != nil {
		t.Fatalf("AddScene: %v", err)
	}
	return f, root, sub, obj
}

func TestLink_AppendsToEnd(t *testing.T) {
	f := New()
	root := mustCollection(t, f, "root", "root")
	a := mustObject(t, f, "a", "a")
	b := mustObject(t, f, "b", "b")
	c := mustObject(t, f, "c", "c")
	for _, o := range []*Object{a, b, c} {
		mustAdd(t, root, o)
	}
	if _, err := f.AddScene("scn", "scn", root); err != nil {
		t.Fatalf("AddScene: %v", err)
	}

	if err := root.Unlink(alphabetize.LeafChild(a)); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if err := root.Link(alphabetize.LeafChild(a)); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if got, want := nodeIDs(root), []string{"b", "c", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestLink_ResetsCollectionLayerAndStalesHandles(t *testing.T) {
	f, root, sub, _ := smallForest(t)

	if err := f.Activate(sub); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := f.SetActiveHidden(true); err != nil {
		t.Fatalf("SetActiveHidden: %v", err)
	}
	stale := f.ActiveLayer()

	if err := alphabetize.Relink(root, alphabetize.ContainerChild(sub)); err != nil {
		t.Fatalf("Relink: %v", err)
	}

	if _, err := stale.HideViewport(); !errors.Is(err, ErrStaleLayer) {
		t.Fatalf("expected stale handle error; got %v", err)
	}
	if _, err := f.ActiveHidden(); !errors.Is(err, ErrStaleLayer) {
		t.Fatalf("expected active pointer to be stale until re-activated; got %v", err)
	}
	if err := f.Activate(sub); err != nil {
		t.Fatalf("Activate after relink: %v", err)
	}
	hidden, err := f.ActiveHidden()
	if err != nil {
		t.Fatalf("ActiveHidden: %v", err)
	}
	if hidden {
		t.Fatalf("expected fresh layer entry to default to visible")
	}
}

func TestLink_ResyncsEveryObjectBase(t *testing.T) {
	f, root, _, obj := smallForest(t)
	other := mustCollection(t, f, "other-root", "Other")
	far := mustObject(t, f, "far", "Far")
	mustAdd(t, other, far)
	if _, err := f.AddScene("scn2", "Scene 2", other); err != nil {
		t.Fatalf("AddScene: %v", err)
	}
	_ = obj.SetTransientHidden(true)
	_ = far.SetTransientHidden(true)

	sub, _ := f.Collection("sub")
	if err := alphabetize.Relink(root, alphabetize.ContainerChild(sub)); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if obj.TransientHidden() || far.TransientHidden() {
		t.Fatalf("expected every object base to be reset; obj=%v far=%v", obj.TransientHidden(), far.TransientHidden())
	}
}

func TestLink_KeepsObjectsWithoutBase(t *testing.T) {
	f, root, sub, _ := smallForest(t)
	loose := mustCollection(t, f, "loose", "Loose")
	held := mustObject(t, f, "held", "Held")
	free := mustObject(t, f, "free", "Free")
	mustAdd(t, loose, held)
	_ = held.SetTransientHidden(true)
	_ = free.SetTransientHidden(true)

	if err := alphabetize.Relink(root, alphabetize.ContainerChild(sub)); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if !held.TransientHidden() || !free.TransientHidden() {
		t.Fatalf("expected objects outside every scene to keep their flag; held=%v free=%v", held.TransientHidden(), free.TransientHidden())
	}
}

func TestLink_ObjectResetsRenderFlag(t *testing.T) {
	_, _, sub, obj := smallForest(t)
	_ = obj.SetPersistentHidden(true)
	if err := alphabetize.Relink(sub, alphabetize.LeafChild(obj)); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if obj.PersistentHidden() {
		t.Fatalf("expected render flag reset by relink")
	}
}

func TestLink_KeepsCollectionRenderFlag(t *testing.T) {
	_, root, sub, _ := smallForest(t)
	_ = sub.SetPersistentHidden(true)
	if err := alphabetize.Relink(root, alphabetize.ContainerChild(sub)); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if !sub.PersistentHidden() {
		t.Fatalf("expected collection render flag to survive relink")
	}
}

func TestAdd_Validation(t *testing.T) {
	f, root, sub, obj := smallForest(t)

	if err := sub.Add(obj); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked for duplicate object; got %v", err)
	}
	if err := sub.Add(root); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked for scene root; got %v", err)
	}

	loose := mustCollection(t, f, "loose", "Loose")
	inner := mustCollection(t, f, "inner", "Inner")
	mustAdd(t, loose, inner)
	if err := inner.Add(loose); !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle; got %v", err)
	}

	other := New()
	foreign := mustObject(t, other, "x", "X")
	if err := sub.Add(foreign); !errors.Is(err, ErrForeignNode) {
		t.Fatalf("expected ErrForeignNode; got %v", err)
	}

	if _, err := f.NewObject("sub", "dup"); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID; got %v", err)
	}
}

func TestUnlink_NotLinked(t *testing.T) {
	f, root, _, _ := smallForest(t)
	stray := mustObject(t, f, "stray", "Stray")
	if err := root.Unlink(alphabetize.LeafChild(stray)); !errors.Is(err, ErrNotLinked) {
		t.Fatalf("expected ErrNotLinked; got %v", err)
	}
}

func TestActivate_OutsideViewLayer(t *testing.T) {
	f := New()
	loose := mustCollection(t, f, "loose", "Loose")
	if err := f.Activate(loose); !errors.Is(err, ErrNotInViewLayer) {
		t.Fatalf("expected ErrNotInViewLayer; got %v", err)
	}
	if _, err := f.ActiveHidden(); !errors.Is(err, ErrNoActiveLayer) {
		t.Fatalf("expected ErrNoActiveLayer; got %v", err)
	}
}

func TestLeaves_DeduplicatesSharedObjects(t *testing.T) {
	f, root, sub, obj := smallForest(t)
	mustAdd(t, root, obj)
	second := mustCollection(t, f, "second", "Second")
	mustAdd(t, sub, second)
	mustAdd(t, second, obj)

	leaves := root.Leaves()
	if len(leaves) != 1 || leaves[0] != alphabetize.Leaf(obj) {
		t.Fatalf("expected one leaf; got %v", leaves)
	}
	if got := len(obj.Users()); got != 3 {
		t.Fatalf("expected 3 users; got %d", got)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	f, _, sub, obj := smallForest(t)
	_ = sub.SetPersistentHidden(true)
	_ = obj.SetTransientHidden(true)
	if err := f.Activate(sub); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := f.SetActiveHidden(true); err != nil {
		t.Fatalf("SetActiveHidden: %v", err)
	}

	doc := f.Document()
	if doc.ActiveCollectionID != "sub" {
		t.Fatalf("expected active collection sub; got %q", doc.ActiveCollectionID)
	}
	back, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if got := back.Document(); !reflect.DeepEqual(doc, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", doc, got)
	}
	if st := back.Stats(); st != (Stats{Scenes: 1, Collections: 2, Objects: 1, Links: 2}) {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestFromDocument_UnknownChild(t *testing.T) {
	doc := model.Document{
		Collections: []model.Collection{{
			ID:       "root",
			Name:     "root",
			Children: []model.ChildRef{{Kind: model.ChildObject, ID: "missing"}},
		}},
		Scenes: []model.Scene{{ID: "scn", Name: "scn", RootID: "root"}},
	}
	if _, err := FromDocument(doc); err == nil {
		t.Fatalf("expected error for unknown child")
	}
}

func TestCollection_Path(t *testing.T) {
	_, _, sub, _ := smallForest(t)
	if got := sub.Path(); got != "Scene Collection/Props" {
		t.Fatalf("Path: got %q", got)
	}
}

func TestDocument_LooseCollectionKeepsViewportFlag(t *testing.T) {
	doc := model.Document{
		Version: 1,
		Scenes:  []model.Scene{{ID: "scn", Name: "Scene", RootID: "root"}},
		Collections: []model.Collection{
			{ID: "root", Name: "Scene Collection", Children: []model.ChildRef{}},
			{ID: "loose", Name: "Loose", HideViewport: true, Children: []model.ChildRef{
				{Kind: model.ChildObject, ID: "held"},
			}},
		},
		Objects: []model.Object{{ID: "held", Name: "Held", HideViewport: true}},
	}
	f, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	loose, _ := f.Collection("loose")
	if hidden, inLayer := f.ViewportHidden(loose); !hidden || inLayer {
		t.Fatalf("expected hidden loose collection outside the layer; hidden=%v inLayer=%v", hidden, inLayer)
	}
	if got := f.Document(); !reflect.DeepEqual(doc, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", doc, got)
	}
}

func TestUnlink_CollectionCarriesViewportFlag(t *testing.T) {
	f, root, sub, _ := smallForest(t)
	if err := f.Activate(sub); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := f.SetActiveHidden(true); err != nil {
		t.Fatalf("SetActiveHidden: %v", err)
	}
	if err := root.Unlink(alphabetize.ContainerChild(sub)); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if hidden, inLayer := f.ViewportHidden(sub); !hidden || inLayer {
		t.Fatalf("expected unlinked collection to keep its flag; hidden=%v inLayer=%v", hidden, inLayer)
	}
}

func TestFromDocument_ActiveCollection(t *testing.T) {
	base := model.Document{
		Scenes: []model.Scene{{ID: "scn", Name: "Scene", RootID: "root"}},
		Collections: []model.Collection{
			{ID: "root", Name: "Scene Collection", Children: []model.ChildRef{}},
			{ID: "loose", Name: "Loose", Children: []model.ChildRef{}},
		},
	}

	doc := base
	doc.ActiveCollectionID = "loose"
	if _, err := FromDocument(doc); !errors.Is(err, ErrNotInViewLayer) {
		t.Fatalf("expected ErrNotInViewLayer for a loose active collection; got %v", err)
	}

	doc.ActiveCollectionID = "missing"
	if _, err := FromDocument(doc); err == nil {
		t.Fatalf("expected error for an unknown active collection")
	}

	doc.ActiveCollectionID = "root"
	f, err := FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if lc := f.ActiveLayer(); lc == nil || lc.Collection().ID() != "root" {
		t.Fatalf("expected root to be active; got %+v", lc)
	}
}
