package overlapd

import (
	"errors"
	"math"
	"testing"
)

func TestTetrahedronErrors(t *testing.T) {
	env := NewEnv()
	if _, err := NewTetrahedron(env, Origin, Origin, Y(1), Z(1), 1e-8); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("coincident vertices should be rejected but got %v", err)
	}
	if _, err := NewTetrahedron(env, Origin, X(1), X(2), Y(2), 1e-8); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("a collinear face should be rejected but got %v", err)
	}
}

func TestTetrahedronBasics(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	if v := te.Volume(); math.Abs(v-4.0/3) > 1e-9 {
		t.Fatalf("volume should be 4/3 but got %f", v)
	}
	if c := te.Centroid(); !c.ApproxEqual(XYZ(0.5, 0.5, 0.5), 1e-9) {
		t.Fatalf("centroid should be (0.5, 0.5, 0.5) but got %v", c)
	}
	if te.Degenerate() {
		t.Fatal("a proper tetrahedron should not be degenerate")
	}
	// Every face should be wound away from the centroid.
	for i, f := range te.Faces() {
		if d := f.Plane().SignedDistance(te.Centroid()); d >= 0 {
			t.Fatalf("face %d should face outward but has signed distance %f", i, d)
		}
	}
}

func TestTetrahedronContainsPoint(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	if !te.ContainsPoint(te.Centroid(), 1e-8) {
		t.Fatal("the centroid should be inside")
	}
	if !te.ContainsPoint(XYZ(0.1, 0.1, 0.1), 1e-8) {
		t.Fatal("a point near the corner should be inside")
	}
	if !te.ContainsPoint(Origin, 1e-8) {
		t.Fatal("a vertex should count as inside")
	}
	if !te.ContainsPoint(XYZ(1, 1, 0), 1e-8) {
		t.Fatal("a face point should count as inside")
	}
	if te.ContainsPoint(XYZ(1.5, 1.5, 1.5), 1e-8) {
		t.Fatal("a point past the slant face should be outside")
	}
	if te.ContainsPoint(XYZ(-0.1, 1, 1), 1e-8) {
		t.Fatal("a point behind a face should be outside")
	}
}

func TestTetrahedronIntersectPlane(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))

	tri, ok := te.IntersectPlane(mustPlane(t, env, Z(1.5), Z(1)), 1e-8).(*Triangle)
	if !ok {
		t.Fatal("a cut near the apex should be a triangle")
	}
	if math.Abs(tri.Area()-0.125) > 1e-6 {
		t.Fatalf("the apex cross section area should be 0.125 but got %f", tri.Area())
	}

	quad, ok := te.IntersectPlane(mustPlane(t, env, X(1), XYZ(1, 1, 0)), 1e-8).(*ConvexArea)
	if !ok {
		t.Fatal("a cut splitting the vertices two and two should be a quadrilateral")
	}
	want := []Vector{X(1), Y(1), XYZ(1, 0, 1), XYZ(0, 1, 1)}
	if !matchedPoints(quad.Vertices(), want, 1e-6) {
		t.Fatalf("the cross section corners should be %v but got %v", want, quad.Vertices())
	}
	if math.Abs(quad.Area()-math.Sqrt2) > 1e-6 {
		t.Fatalf("the cross section area should be sqrt(2) but got %f", quad.Area())
	}

	if got := te.IntersectPlane(mustPlane(t, env, Z(5), Z(1)), 1e-8); got != nil {
		t.Fatalf("a plane past the volume should cut nothing but got %v", got)
	}
	apex := te.IntersectPlane(mustPlane(t, env, Z(2), Z(1)), 1e-8)
	if p, ok := apex.(*Point); !ok || !p.Abs().ApproxEqual(Z(2), 1e-6) {
		t.Fatalf("a grazing plane should cut the apex point but got %v", apex)
	}
}

func TestTetrahedronIntersectLine(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	chord := mustLine(t, env, XYZ(0.25, 0.25, -1), XYZ(0.25, 0.25, 1))
	got := te.IntersectLine(chord, 1e-8)
	want := mustSegment(t, env, XYZ(0.25, 0.25, 0), XYZ(0.25, 0.25, 1.5))
	if s, ok := got.(*LineSegment); !ok || !sameShape(s, want, 1e-6) {
		t.Fatalf("the chord should be %v but got %v", want, got)
	}
	miss := mustLine(t, env, XYZ(3, 3, -1), XYZ(3, 3, 1))
	if got := te.IntersectLine(miss, 1e-8); got != nil {
		t.Fatalf("a line outside the volume should miss but got %v", got)
	}
}

func TestTetrahedronIntersectSegment(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))

	buried := mustSegment(t, env, XYZ(0.2, 0.2, 0.2), XYZ(0.3, 0.3, 0.3))
	got := te.IntersectSegment(buried, 1e-8)
	if s, ok := got.(*LineSegment); !ok || !sameShape(s, buried, 1e-6) {
		t.Fatalf("a buried segment should come back whole but got %v", got)
	}

	poking := mustSegment(t, env, XYZ(0.25, 0.25, -1), XYZ(0.25, 0.25, 0.5))
	got = te.IntersectSegment(poking, 1e-8)
	want := mustSegment(t, env, XYZ(0.25, 0.25, 0), XYZ(0.25, 0.25, 0.5))
	if s, ok := got.(*LineSegment); !ok || !sameShape(s, want, 1e-6) {
		t.Fatalf("the inside piece should be %v but got %v", want, got)
	}

	outside := mustSegment(t, env, XYZ(3, 3, 0), XYZ(4, 4, 0))
	if got := te.IntersectSegment(outside, 1e-8); got != nil {
		t.Fatalf("an outside segment should miss but got %v", got)
	}
}

func TestTetrahedronIntersectTriangle(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))

	// A large triangle at z=0.5 should clip to the full cross
	// section at that height.
	big := mustTriangle(t, env, XYZ(-5, -5, 0.5), XYZ(10, -5, 0.5), XYZ(-5, 10, 0.5))
	got := te.IntersectTriangle(big, 1e-8)
	want := te.IntersectPlane(mustPlane(t, env, Z(0.5), Z(1)), 1e-8)
	if !sameShape(got, want, 1e-6) {
		t.Fatalf("the clipped triangle should be the cross section %v but got %v", want, got)
	}

	small := mustTriangle(t, env, XYZ(0.1, 0.1, 0.1), XYZ(0.3, 0.1, 0.1), XYZ(0.1, 0.3, 0.1))
	if got := te.IntersectTriangle(small, 1e-8); got != small {
		t.Fatalf("a contained triangle should come back unchanged but got %v", got)
	}

	away := mustTriangle(t, env, XYZ(5, 5, 5), XYZ(6, 5, 5), XYZ(5, 6, 5))
	if got := te.IntersectTriangle(away, 1e-8); got != nil {
		t.Fatalf("a distant triangle should miss but got %v", got)
	}
}

func TestTetrahedronPairContainment(t *testing.T) {
	env := NewEnv()
	small := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	big := mustTetra(t, env, XYZ(-1, -1, -1), XYZ(7, -1, -1), XYZ(-1, 7, -1), XYZ(-1, -1, 7))
	if got := Intersect(small, big, 1e-8); got != small {
		t.Fatalf("a contained tetrahedron should come back unchanged but got %v", got)
	}
	if got := Intersect(big, small, 1e-8); got != small {
		t.Fatalf("swapping the order should still yield the contained one but got %v", got)
	}
	if got := small.IntersectTetrahedron(big, 1e-8); len(got) != 4 {
		t.Fatalf("the contained boundary should be the 4 faces but got %d pieces", len(got))
	}
	if !small.IntersectsTetrahedron(big, 1e-8) {
		t.Fatal("contained tetrahedra should intersect")
	}
}

func TestTetrahedronPairFaceTouch(t *testing.T) {
	env := NewEnv()
	upper := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	lower := mustTetra(t, env, Origin, X(2), Y(2), Z(-2))
	got := Intersect(upper, lower, 1e-8)
	tri, ok := got.(*Triangle)
	if !ok {
		t.Fatalf("expected the shared face but got %v", got)
	}
	want := mustTriangle(t, env, Origin, X(2), Y(2))
	if !sameShape(tri, want, 1e-6) {
		t.Fatalf("the shared face should be %v but got %v", want, tri)
	}
	if !upper.IntersectsTetrahedron(lower, 1e-8) {
		t.Fatal("face-touching tetrahedra should intersect")
	}
}

func TestTetrahedronPairEdgeTouch(t *testing.T) {
	env := NewEnv()
	a := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	b := mustTetra(t, env, Origin, X(-2), Y(-2), Z(2))
	got := Intersect(a, b, 1e-8)
	s, ok := got.(*LineSegment)
	if !ok {
		t.Fatalf("expected the shared edge but got %v", got)
	}
	want := mustSegment(t, env, Origin, Z(2))
	if !sameShape(s, want, 1e-6) {
		t.Fatalf("the shared edge should be %v but got %v", want, s)
	}
}

func TestTetrahedronPairVertexTouch(t *testing.T) {
	env := NewEnv()
	a := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	b := mustTetra(t, env, Z(2), XYZ(2, 0, 2), XYZ(0, 2, 2), Z(4))
	got := Intersect(a, b, 1e-8)
	if p, ok := got.(*Point); !ok || !p.Abs().ApproxEqual(Z(2), 1e-6) {
		t.Fatalf("the contact should be the apex point but got %v", got)
	}
}

func TestTetrahedronPairDisjoint(t *testing.T) {
	env := NewEnv()
	a := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	b := mustTetra(t, env, X(10), XYZ(12, 0, 0), XYZ(10, 2, 0), XYZ(10, 0, 2))
	if got := Intersect(a, b, 1e-8); got != nil {
		t.Fatalf("disjoint tetrahedra should not intersect but got %v", got)
	}
	if a.IntersectsTetrahedron(b, 1e-8) {
		t.Fatal("disjoint tetrahedra should not report an intersection")
	}
	if pieces := a.IntersectTetrahedron(b, 1e-8); len(pieces) != 0 {
		t.Fatalf("disjoint tetrahedra should have no boundary pieces but got %d", len(pieces))
	}
}

func TestTetrahedronPairPartialOverlap(t *testing.T) {
	env := NewEnv()
	a := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	b := mustTetra(t, env, XYZ(0.5, 0.5, 0.5), XYZ(2.5, 0.5, 0.5), XYZ(0.5, 2.5, 0.5), XYZ(0.5, 0.5, 2.5))
	if !a.IntersectsTetrahedron(b, 1e-8) {
		t.Fatal("overlapping tetrahedra should intersect")
	}
	pieces := a.IntersectTetrahedron(b, 1e-8)
	if len(pieces) != 4 {
		t.Fatalf("the overlap boundary should have 4 pieces but got %d", len(pieces))
	}
	for _, p := range pieces {
		if p == nil {
			t.Fatal("no boundary piece should be empty")
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatal("a partial volume overlap should panic in Intersect")
		}
	}()
	Intersect(a, b, 1e-8)
}

func TestTetrahedronDegenerate(t *testing.T) {
	env := NewEnv()
	flat := mustTetra(t, env, Origin, X(2), Y(2), XYZ(0.5, 0.5, 0))
	if !flat.Degenerate() {
		t.Fatal("coplanar vertices should flag the tetrahedron degenerate")
	}
	if flat.Volume() > 1e-9 {
		t.Fatalf("a flat tetrahedron should have no volume but got %f", flat.Volume())
	}
	if !flat.ContainsPoint(XYZ(0.5, 1, 0), 1e-8) {
		t.Fatal("a point on the flat hull should be contained")
	}
	if flat.ContainsPoint(XYZ(0.5, 1, 0.5), 1e-8) {
		t.Fatal("a point off the flat plane should not be contained")
	}
	if flat.ContainsPoint(XYZ(1.5, 1.5, 0), 1e-8) {
		t.Fatal("an in-plane point outside the hull should not be contained")
	}

	pierce := mustLine(t, env, XYZ(0.5, 0.5, -1), XYZ(0.5, 0.5, 1))
	got := flat.IntersectLine(pierce, 1e-8)
	if p, ok := got.(*Point); !ok || !p.Abs().ApproxEqual(XYZ(0.5, 0.5, 0), 1e-6) {
		t.Fatalf("a pierce of the flat hull should be a point but got %v", got)
	}

	// A flat and a solid tetrahedron reduce to a planar cut.
	solid := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	cut := Intersect(flat, solid, 1e-8)
	if cut == nil {
		t.Fatal("the flat tetrahedron should cut the solid one")
	}
	if _, ok := cut.(*Triangle); !ok {
		t.Fatalf("the cut should be a triangle but got %v", cut)
	}
}

func TestTetrahedronDistanceSquaredToPoint(t *testing.T) {
	env := NewEnv()
	te := mustTetra(t, env, Origin, X(2), Y(2), Z(2))
	if d := te.DistanceSquaredToPoint(XYZ(0.5, 0.5, 0.5), 1e-8); d != 0 {
		t.Fatalf("an inside point should have distance 0 but got %f", d)
	}
	if d := te.DistanceSquaredToPoint(X(-1), 1e-8); math.Abs(d-1) > 1e-9 {
		t.Fatalf("distance squared behind a face should be 1 but got %f", d)
	}
	if d := te.DistanceSquaredToPoint(XYZ(2, 2, 2), 1e-8); math.Abs(d-16.0/3) > 1e-6 {
		t.Fatalf("distance squared past the slant should be 16/3 but got %f", d)
	}
}

func mustTetra(t *testing.T, env *Env, p, q, r, s Vector) *Tetrahedron {
	te, err := NewTetrahedron(env, p, q, r, s, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	return te
}
