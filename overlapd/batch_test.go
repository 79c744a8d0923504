package overlapd

import (
	"math"
	"math/rand"
	"testing"
)

func batchFixture(t *testing.T, env *Env, r *rand.Rand, n int) []ShapePair {
	var pairs []ShapePair
	for i := 0; i < n; i++ {
		var a, b Shape
		switch i % 3 {
		case 0:
			a = randTriangle(r, env)
			b = randTriangle(r, env)
		case 1:
			a = mustSegment(t, env, randVector(r).Scale(2), randVector(r).Scale(2))
			b = randTriangle(r, env)
		default:
			a = NewPoint(env, randVector(r).Scale(2))
			b = mustSegment(t, env, randVector(r).Scale(2), randVector(r).Scale(2))
		}
		pairs = append(pairs, ShapePair{A: a, B: b})
	}
	return pairs
}

func TestPairwiseIntersectionsMatchSerial(t *testing.T) {
	r := rand.New(rand.NewSource(19))
	env := NewEnv()
	pairs := batchFixture(t, env, r, 60)
	got := PairwiseIntersections(pairs, 1e-8, 4)
	if len(got) != len(pairs) {
		t.Fatalf("expected %d results but got %d", len(pairs), len(got))
	}
	for i, p := range pairs {
		if want := Intersects(p.A, p.B, 1e-8); got[i] != want {
			t.Fatalf("pair %d should be %v but got %v", i, want, got[i])
		}
	}
}

func TestPairwiseDistancesMatchSerial(t *testing.T) {
	r := rand.New(rand.NewSource(23))
	env := NewEnv()
	pairs := batchFixture(t, env, r, 60)
	got := PairwiseDistances(pairs, 1e-8, 0)
	for i, p := range pairs {
		want := DistanceSquared(p.A, p.B, 1e-8)
		if math.Abs(got[i]-want) > 1e-9 {
			t.Fatalf("pair %d should be %f but got %f", i, want, got[i])
		}
	}
}

func TestAnyIntersects(t *testing.T) {
	env := NewEnv()
	var pairs []ShapePair
	for i := 0; i < 20; i++ {
		x := float64(i * 10)
		a := mustTriangle(t, env, X(x), XYZ(x+1, 0, 0), XYZ(x, 1, 0))
		b := mustTriangle(t, env, XYZ(x+5, 0, 0), XYZ(x+6, 0, 0), XYZ(x+5, 1, 0))
		pairs = append(pairs, ShapePair{A: a, B: b})
	}
	if AnyIntersects(pairs, 1e-8, 3) {
		t.Fatal("separated pairs should not report an intersection")
	}
	crossA := mustTriangle(t, env, XYZ(-1, -1, 0), XYZ(1, -1, 0), XYZ(0, 1, 0))
	crossB := mustTriangle(t, env, XYZ(-1, 0, -1), XYZ(1, 0, -1), XYZ(0, 0, 1))
	pairs = append(pairs, ShapePair{A: crossA, B: crossB})
	if !AnyIntersects(pairs, 1e-8, 3) {
		t.Fatal("a planted crossing pair should be found")
	}
}
