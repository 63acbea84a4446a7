package alphabetize_test

import (
	"reflect"
	"testing"

	"alphabetize-cli/internal/alphabetize"
	"alphabetize-cli/internal/scene"
)

type fixture struct {
	t *testing.T
	f *scene.Forest
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return fixture{t: t, f: scene.New()}
}

func (fx fixture) root(id string) *scene.Collection {
	fx.t.Helper()
	root, err := fx.f.NewCollection(id+"-root", id)
	if err != nil {
		fx.t.Fatalf("NewCollection: %v", err)
	}
	if _, err := fx.f.AddScene(id, id, root); err != nil {
		fx.t.Fatalf("AddScene: %v", err)
	}
	return root
}

func (fx fixture) coll(parent *scene.Collection, id, name string) *scene.Collection {
	fx.t.Helper()
	c, err := fx.f.NewCollection(id, name)
	if err != nil {
		fx.t.Fatalf("NewCollection: %v", err)
	}
	if err := parent.Add(c); err != nil {
		fx.t.Fatalf("Add collection: %v", err)
	}
	return c
}

func (fx fixture) obj(id, name string, parents ...*scene.Collection) *scene.Object {
	fx.t.Helper()
	o, err := fx.f.NewObject(id, name)
	if err != nil {
		fx.t.Fatalf("NewObject: %v", err)
	}
	for _, p := range parents {
		if err := p.Add(o); err != nil {
			fx.t.Fatalf("Add object: %v", err)
		}
	}
	return o
}

func (fx fixture) hideViewport(c *scene.Collection, hidden bool) {
	fx.t.Helper()
	if err := alphabetize.NewResolver(fx.f).SetHidden(c, hidden); err != nil {
		fx.t.Fatalf("SetHidden: %v", err)
	}
}

func childNames(c *scene.Collection) []string {
	var out []string
	for _, n := range c.Nodes() {
		out = append(out, n.Name())
	}
	return out
}

type visibility struct {
	render   bool
	viewport bool
}

func visibilityByID(f *scene.Forest) map[string]visibility {
	doc := f.Document()
	out := map[string]visibility{}
	for _, c := range doc.Collections {
		out[c.ID] = visibility{render: c.HideRender, viewport: c.HideViewport}
	}
	for _, o := range doc.Objects {
		out[o.ID] = visibility{render: o.HideRender, viewport: o.HideViewport}
	}
	return out
}

func childSets(f *scene.Forest) map[string]map[string]bool {
	out := map[string]map[string]bool{}
	for _, c := range f.Document().Collections {
		set := map[string]bool{}
		for _, ref := range c.Children {
			set[string(ref.Kind)+":"+ref.ID] = true
		}
		out[c.ID] = set
	}
	return out
}

func runOpts(caseSensitive bool) alphabetize.Options {
	opts := alphabetize.DefaultOptions()
	opts.CaseSensitive = caseSensitive
	return opts
}

func TestRun_TargetOrderFollowsCaseSetting(t *testing.T) {
	for _, tc := range []struct {
		name          string
		caseSensitive bool
		want          []string
	}{
		{name: "exact", caseSensitive: true, want: []string{"Banana", "Cherry", "apple"}},
		{name: "folded", caseSensitive: false, want: []string{"apple", "Banana", "Cherry"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(t)
			root := fx.root("scn")
			fx.obj("o1", "Banana", root)
			fx.obj("o2", "apple", root)
			fx.obj("o3", "Cherry", root)

			if _, err := alphabetize.Run(fx.f, runOpts(tc.caseSensitive)); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := childNames(root); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("order: got %v want %v", got, tc.want)
			}
		})
	}
}

func TestRun_SortsEveryLevel(t *testing.T) {
	fx := newFixture(t)
	root := fx.root("scn")
	zoo := fx.coll(root, "c-zoo", "Zoo")
	fx.coll(root, "c-alpha", "Alpha")
	mid := fx.coll(zoo, "c-mid", "Mid")
	fx.coll(zoo, "c-bee", "Bee")
	fx.obj("o-y", "Yak", mid)
	fx.obj("o-c", "Cat", mid)
	fx.obj("o-m", "Moose", mid)

	rep, err := alphabetize.Alphabetize(fx.f)
	if err != nil {
		t.Fatalf("Alphabetize: %v", err)
	}
	if got, want := childNames(root), []string{"Alpha", "Zoo"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("level 1: got %v want %v", got, want)
	}
	if got, want := childNames(zoo), []string{"Bee", "Mid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("level 2: got %v want %v", got, want)
	}
	if got, want := childNames(mid), []string{"Cat", "Moose", "Yak"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("level 3: got %v want %v", got, want)
	}
	if left := alphabetize.Check(fx.f, alphabetize.CaseSensitive); len(left) != 0 {
		t.Fatalf("expected nothing unsorted; got %#v", left)
	}
	if rep.Depth != 3 {
		t.Fatalf("expected depth 3; got %d", rep.Depth)
	}
	if rep.Relinks != 7 {
		t.Fatalf("expected 7 relinks; got %d", rep.Relinks)
	}
}

func buildMixedForest(t *testing.T) (fixture, *scene.Object) {
	t.Helper()
	fx := newFixture(t)

	one := fx.root("one")
	b := fx.coll(one, "c-b", "b")
	a := fx.coll(one, "c-a", "a")
	deep := fx.coll(b, "c-deep", "deep")
	fx.coll(b, "c-alpha", "alpha")
	shared := fx.obj("o-shared", "shared", a, deep)
	lamp := fx.obj("o-lamp", "Lamp", a)
	cube := fx.obj("o-cube", "cube", deep)
	fx.obj("o-zed", "zed", one)

	two := fx.root("two")
	y := fx.coll(two, "c-y", "y")
	fx.coll(two, "c-x", "x")
	fx.obj("o-ball", "ball", y)
	if err := y.Add(shared); err != nil {
		t.Fatalf("Add shared: %v", err)
	}

	fx.hideViewport(b, true)
	fx.hideViewport(deep, true)
	fx.hideViewport(y, true)
	_ = a.SetPersistentHidden(true)
	_ = deep.SetPersistentHidden(true)

	_ = shared.SetTransientHidden(true)
	_ = lamp.SetPersistentHidden(true)
	_ = cube.SetPersistentHidden(true)
	_ = cube.SetTransientHidden(true)
	return fx, shared
}

func TestRun_PreservesVisibility(t *testing.T) {
	fx, _ := buildMixedForest(t)
	before := visibilityByID(fx.f)

	if _, err := alphabetize.Alphabetize(fx.f); err != nil {
		t.Fatalf("Alphabetize: %v", err)
	}

	after := visibilityByID(fx.f)
	if !reflect.DeepEqual(before, after) {
		for id, v := range before {
			if after[id] != v {
				t.Errorf("%s: before %+v after %+v", id, v, after[id])
			}
		}
		t.FailNow()
	}
}

func TestRun_PreservesTopology(t *testing.T) {
	fx, _ := buildMixedForest(t)
	before := childSets(fx.f)
	statsBefore := fx.f.Stats()

	if _, err := alphabetize.Alphabetize(fx.f); err != nil {
		t.Fatalf("Alphabetize: %v", err)
	}
	if got := childSets(fx.f); !reflect.DeepEqual(before, got) {
		t.Fatalf("child sets changed:\nbefore: %v\nafter:  %v", before, got)
	}
	if got := fx.f.Stats(); got != statsBefore {
		t.Fatalf("stats changed: before %+v after %+v", statsBefore, got)
	}
}

func TestRun_Idempotent(t *testing.T) {
	fx, _ := buildMixedForest(t)
	if _, err := alphabetize.Alphabetize(fx.f); err != nil {
		t.Fatalf("first run: %v", err)
	}
	once := fx.f.Document()

	if _, err := alphabetize.Alphabetize(fx.f); err != nil {
		t.Fatalf("second run: %v", err)
	}
	twice := fx.f.Document()
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second run changed the forest:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestRun_LeafRestoredAfterUnrelatedRelink(t *testing.T) {
	fx := newFixture(t)
	one := fx.root("one")
	a := fx.coll(one, "c-a", "A")
	x := fx.obj("o-x", "X", a)
	_ = x.SetTransientHidden(true)

	two := fx.root("two")
	fx.coll(two, "c-b", "B")
	fx.coll(two, "c-0", "0")

	if _, err := alphabetize.Alphabetize(fx.f); err != nil {
		t.Fatalf("Alphabetize: %v", err)
	}
	if !x.TransientHidden() {
		t.Fatalf("expected X to stay hidden in the viewport after B was relinked")
	}
}

func TestRun_HostResetsWithoutRestore(t *testing.T) {
	// Guard for the fixture itself: a bare relink really does reset state, so
	// the preservation tests above are meaningful.
	fx := newFixture(t)
	root := fx.root("scn")
	c := fx.coll(root, "c", "C")
	o := fx.obj("o", "O", c)
	fx.hideViewport(c, true)
	_ = o.SetTransientHidden(true)

	if err := alphabetize.Relink(root, alphabetize.ContainerChild(c)); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	hidden, err := alphabetize.NewResolver(fx.f).Hidden(c)
	if err != nil {
		t.Fatalf("Hidden: %v", err)
	}
	if hidden {
		t.Fatalf("expected relinked collection to be visible again")
	}
	if o.TransientHidden() {
		t.Fatalf("expected object base to be reset by relink")
	}
}

func TestRun_EmptyForest(t *testing.T) {
	rep, err := alphabetize.Alphabetize(scene.New())
	if err != nil {
		t.Fatalf("Alphabetize: %v", err)
	}
	if rep != (alphabetize.Report{}) {
		t.Fatalf("expected empty report; got %+v", rep)
	}
}

func TestCheck_ReportsUnsortedLists(t *testing.T) {
	fx := newFixture(t)
	root := fx.root("scn")
	b := fx.coll(root, "c-b", "b")
	fx.coll(root, "c-a", "a")
	fx.obj("o-2", "2", b)
	fx.obj("o-1", "1", b)

	got := alphabetize.Check(fx.f, true)
	if len(got) != 2 {
		t.Fatalf("expected 2 unsorted lists; got %#v", got)
	}
	if got[0].Path != "scn" || got[1].Path != "scn/b" {
		t.Fatalf("unexpected paths: %q, %q", got[0].Path, got[1].Path)
	}
	if want := []string{"1", "2"}; !reflect.DeepEqual(got[1].Want, want) {
		t.Fatalf("want order: got %v want %v", got[1].Want, want)
	}
}
