package scene

import (
	"github.com/dhconnelly/rtreego"
	"github.com/unixpickle/overlap-d/overlapd"
)

// Index answers broad-phase queries over a scene: which entries could
// touch a given box or shape. Bounded entries live in an R-tree keyed
// by their bounding boxes, widened by the scene epsilon. Lines and
// planes have no box, so they sit on a side list and come back from
// every query. Candidates are a superset; callers still run the exact
// kernel checks.
type Index struct {
	eps       float64
	tree      *rtreego.Rtree
	unbounded []*Entry
	entries   []*Entry
}

type indexItem struct {
	rect  *rtreego.Rect
	entry *Entry
}

func (it *indexItem) Bounds() *rtreego.Rect {
	return it.rect
}

// Default R-tree branching factors.
const (
	DefaultMinBranch = 4
	DefaultMaxBranch = 8
)

// NewIndex builds an index over every entry in the scene.
func NewIndex(s *Scene) *Index {
	return NewIndexWithBranching(s, DefaultMinBranch, DefaultMaxBranch)
}

// NewIndexWithBranching builds an index with explicit R-tree
// branching factors.
func NewIndexWithBranching(s *Scene, minBranch, maxBranch int) *Index {
	ix := &Index{
		eps:     s.Epsilon,
		tree:    rtreego.NewTree(3, minBranch, maxBranch),
		entries: append([]*Entry{}, s.Entries...),
	}
	for _, ent := range s.Entries {
		b := ent.Shape.Bounds()
		if b == nil {
			ix.unbounded = append(ix.unbounded, ent)
			continue
		}
		ix.tree.Insert(&indexItem{rect: boxRect(b, ix.eps), entry: ent})
	}
	return ix
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// CandidatesBox returns the entries whose widened boxes touch b, plus
// every unbounded entry.
func (ix *Index) CandidatesBox(b *overlapd.AABB) []*Entry {
	found := ix.tree.SearchIntersect(boxRect(b, ix.eps))
	out := make([]*Entry, 0, len(found)+len(ix.unbounded))
	for _, f := range found {
		out = append(out, f.(*indexItem).entry)
	}
	out = append(out, ix.unbounded...)
	return out
}

// Candidates returns the entries that could intersect s. An unbounded
// probe matches everything.
func (ix *Index) Candidates(s overlapd.Shape) []*Entry {
	if b := s.Bounds(); b != nil {
		return ix.CandidatesBox(b)
	}
	return append([]*Entry{}, ix.entries...)
}

// Overlapping narrows Candidates down to the entries whose shapes
// truly intersect s. An indexed entry holding s itself is skipped.
func (ix *Index) Overlapping(s overlapd.Shape) []*Entry {
	var out []*Entry
	for _, ent := range ix.Candidates(s) {
		if ent.Shape == s {
			continue
		}
		if overlapd.Intersects(s, ent.Shape, ix.eps) {
			out = append(out, ent)
		}
	}
	return out
}

// EntryPair is an unordered pair of intersecting entries.
type EntryPair struct {
	A *Entry
	B *Entry
}

// OverlapPairs reports every pair of entries whose shapes intersect,
// each pair once. The R-tree prunes the bounded comparisons.
func (ix *Index) OverlapPairs() []EntryPair {
	var pairs []EntryPair
	for _, a := range ix.entries {
		var cands []*Entry
		if b := a.Shape.Bounds(); b != nil {
			cands = ix.CandidatesBox(b)
		} else {
			cands = ix.entries
		}
		for _, c := range cands {
			if c.Shape.ID() <= a.Shape.ID() {
				continue
			}
			if overlapd.Intersects(a.Shape, c.Shape, ix.eps) {
				pairs = append(pairs, EntryPair{A: a, B: c})
			}
		}
	}
	return pairs
}

// boxRect converts a kernel box to an R-tree rectangle, padding each
// side by eps so that tolerance-level contacts stay inside the tree's
// strict geometry.
func boxRect(b *overlapd.AABB, eps float64) *rtreego.Rect {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	min := b.Min.Array()
	size := b.Size().Array()
	lengths := make([]float64, 3)
	for i := range lengths {
		min[i] -= eps
		lengths[i] = size[i] + 2*eps
	}
	rect, err := rtreego.NewRect(rtreego.Point(min[:]), lengths)
	if err != nil {
		// Lengths are positive by construction.
		panic(err)
	}
	return rect
}
