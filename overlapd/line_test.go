package overlapd

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestLineDegenerate(t *testing.T) {
	env := NewEnv()
	if _, err := NewLine(env, XYZ(1, 1, 1), XYZ(1, 1, 1), 1e-8); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected a degenerate error but got %v", err)
	}
	if _, err := NewLineDir(env, Origin, Origin, 1e-8); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected a degenerate error but got %v", err)
	}
}

func TestLineClosest(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	env := NewEnv()
	for i := 0; i < 50; i++ {
		l := mustLine(t, env, randVector(r), randVector(r).Add(X(1.5)))
		x := randVector(r).Scale(3)
		c := l.Closest(x)
		if !l.Contains(c, 1e-6) {
			t.Fatalf("closest point %v should be on the line", c)
		}
		d := x.Sub(c).Dot(l.Dir().Normalize())
		if math.Abs(d) > 1e-6 {
			t.Fatalf("closest offset should be perpendicular but has dot %e", d)
		}
		if got, want := l.DistanceSquaredToPoint(x), x.DistSquared(c); math.Abs(got-want) > 1e-9 {
			t.Fatalf("distance squared should be %f but got %f", want, got)
		}
	}
}

func TestLineIntersectLineCrossing(t *testing.T) {
	env := NewEnv()
	a := mustLine(t, env, XYZ(-1, -1, 0), XYZ(1, 1, 0))
	b := mustLine(t, env, XYZ(-1, 1, 0), XYZ(1, -1, 0))
	got := a.IntersectLine(b, 1e-8)
	p, ok := got.(*Point)
	if !ok {
		t.Fatalf("expected a point but got %v", got)
	}
	if !p.Abs().ApproxEqual(Origin, 1e-9) {
		t.Fatalf("crossing should be at the origin but got %v", p.Abs())
	}
}

func TestLineIntersectLineSkew(t *testing.T) {
	env := NewEnv()
	a := mustLine(t, env, Origin, X(1))
	b := mustLine(t, env, Z(1), XYZ(0, 1, 1))
	if got := a.IntersectLine(b, 1e-8); got != nil {
		t.Fatalf("skew lines should not intersect but got %v", got)
	}
	if d := a.DistanceToLine(b, 1e-8); math.Abs(d-1) > 1e-9 {
		t.Fatalf("skew distance should be 1 but got %f", d)
	}
}

func TestLineIntersectLineParallel(t *testing.T) {
	env := NewEnv()
	a := mustLine(t, env, Origin, XYZ(1, 1, 1))
	co := mustLine(t, env, XYZ(2, 2, 2), XYZ(-1, -1, -1))
	if got := a.IntersectLine(co, 1e-8); got != a {
		t.Fatalf("coincident lines should intersect as the receiver but got %v", got)
	}
	off := mustLine(t, env, Y(1), XYZ(1, 2, 1))
	if got := a.IntersectLine(off, 1e-8); got != nil {
		t.Fatalf("parallel lines should not intersect but got %v", got)
	}
	// The offset (0, 1, 0) has component sqrt(2/3) perpendicular to
	// the direction (1, 1, 1).
	want := math.Sqrt(2.0 / 3.0)
	if d := a.DistanceToLine(off, 1e-8); math.Abs(d-want) > 1e-9 {
		t.Fatalf("parallel distance should be %f but got %f", want, d)
	}
}

func TestLineDefinedByVector(t *testing.T) {
	env := NewEnv()
	byPoints := mustLine(t, env, Origin, X(1))
	if byPoints.DefinedByVector() {
		t.Fatal("a two-point line should not report a vector definition")
	}
	byDir, err := NewLineDir(env, Origin, X(1), 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	if !byDir.DefinedByVector() {
		t.Fatal("a point-direction line should report a vector definition")
	}
}

func mustLine(t *testing.T, env *Env, p, q Vector) *Line {
	l, err := NewLine(env, p, q, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	return l
}
