package scene

import (
	"testing"

	"github.com/unixpickle/overlap-d/overlapd"
)

func TestIndexCandidatesCoverIntersections(t *testing.T) {
	s := indexScene(t)
	ix := NewIndex(s)
	if ix.Len() != len(s.Entries) {
		t.Fatalf("index should hold %d entries but got %d", len(s.Entries), ix.Len())
	}
	for i, a := range s.Entries {
		for _, b := range s.Entries[i+1:] {
			if !overlapd.Intersects(a.Shape, b.Shape, s.Epsilon) {
				continue
			}
			if !hasEntry(ix.Candidates(a.Shape), b.Name) {
				t.Fatalf("candidates of %q should include intersecting %q", a.Name, b.Name)
			}
			if !hasEntry(ix.Candidates(b.Shape), a.Name) {
				t.Fatalf("candidates of %q should include intersecting %q", b.Name, a.Name)
			}
		}
	}
}

func TestIndexOverlapping(t *testing.T) {
	s := indexScene(t)
	ix := NewIndex(s)
	for _, probe := range s.Entries {
		want := map[string]bool{}
		for _, other := range s.Entries {
			if other == probe {
				continue
			}
			if overlapd.Intersects(probe.Shape, other.Shape, s.Epsilon) {
				want[other.Name] = true
			}
		}
		got := ix.Overlapping(probe.Shape)
		if len(got) != len(want) {
			t.Fatalf("%q should overlap %d entries but got %d", probe.Name, len(want), len(got))
		}
		for _, ent := range got {
			if !want[ent.Name] {
				t.Fatalf("%q should not overlap %q", probe.Name, ent.Name)
			}
			if ent == probe {
				t.Fatalf("%q should not report itself", probe.Name)
			}
		}
	}
}

func TestIndexOverlapPairs(t *testing.T) {
	s := indexScene(t)
	ix := NewIndex(s)
	want := map[string]bool{}
	for i, a := range s.Entries {
		for _, b := range s.Entries[i+1:] {
			if overlapd.Intersects(a.Shape, b.Shape, s.Epsilon) {
				want[pairKey(a.Name, b.Name)] = true
			}
		}
	}
	pairs := ix.OverlapPairs()
	if len(pairs) != len(want) {
		t.Fatalf("should find %d overlapping pairs but got %d", len(want), len(pairs))
	}
	seen := map[string]bool{}
	for _, p := range pairs {
		key := pairKey(p.A.Name, p.B.Name)
		if !want[key] {
			t.Fatalf("pair %q + %q should not overlap", p.A.Name, p.B.Name)
		}
		if seen[key] {
			t.Fatalf("pair %q + %q reported twice", p.A.Name, p.B.Name)
		}
		seen[key] = true
	}
}

func TestIndexUnboundedEntries(t *testing.T) {
	s := indexScene(t)
	ix := NewIndex(s)

	// A far-away box matches no bounded entry, but the plane has no
	// box and must still come back.
	box := overlapd.NewAABB(overlapd.XYZ(100, 100, 100), overlapd.XYZ(101, 101, 101))
	cands := ix.CandidatesBox(box)
	if len(cands) != 1 || cands[0].Name != "floor" {
		t.Fatalf("far box should match only the floor plane but got %d entries", len(cands))
	}

	// An unbounded probe could touch anything.
	all := ix.Candidates(s.Find("floor").Shape)
	if len(all) != ix.Len() {
		t.Fatalf("unbounded probe should match all %d entries but got %d", ix.Len(), len(all))
	}
}

func TestIndexPrunesFarPairs(t *testing.T) {
	s := indexScene(t)
	ix := NewIndex(s)
	cands := ix.Candidates(s.Find("far").Shape)
	for _, ent := range cands {
		if ent.Name == "block" || ent.Name == "wing" || ent.Name == "marker" {
			t.Fatalf("distant tetrahedron should not see %q as a candidate", ent.Name)
		}
	}
}

// indexScene holds a cluster at the origin, a distant tetrahedron,
// and an unbounded plane. Intersecting pairs: block+floor (a face
// rests on the plane), block+wing, block+marker, and floor+spur.
func indexScene(t *testing.T) *Scene {
	doc := &Document{
		Epsilon: 1e-8,
		Shapes: []ShapeDoc{
			{Name: "block", Kind: "tetrahedron",
				Points: [][3]float64{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}, {0, 0, 2}}},
			{Name: "floor", Kind: "plane",
				Points: [][3]float64{{0, 0, 0}}, Normal: &[3]float64{0, 0, 1}},
			{Name: "wing", Kind: "triangle",
				Points: [][3]float64{{0, 0, 0.5}, {2, 0, 0.5}, {0, 2, 0.5}}},
			{Name: "marker", Kind: "point",
				Points: [][3]float64{{0.25, 0.25, 0.25}}},
			{Name: "spur", Kind: "segment",
				Points: [][3]float64{{10, 0, 0}, {12, 0, 0}}},
			{Name: "far", Kind: "tetrahedron",
				Points: [][3]float64{{10, 10, 10}, {12, 10, 10}, {10, 12, 10}, {10, 10, 12}}},
		},
	}
	s, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func hasEntry(list []*Entry, name string) bool {
	for _, ent := range list {
		if ent.Name == name {
			return true
		}
	}
	return false
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "+" + b
}
