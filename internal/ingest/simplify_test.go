package ingest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

func randomWalk(seed int64, n int) orb.LineString {
	rnd := rand.New(rand.NewSource(seed))
	ls := make(orb.LineString, n)
	x, y := 0.0, 0.0
	for i := range ls {
		x += rnd.Float64()
		y += rnd.Float64()*2 - 1
		ls[i] = orb.Point{x, y}
	}
	return ls
}

func isSubsequence(sub, full orb.LineString) bool {
	j := 0
	for _, p := range full {
		if j < len(sub) && sub[j] == p {
			j++
		}
	}
	return j == len(sub)
}

func TestSimplifyZeroToleranceIsIdentity(t *testing.T) {
	paths := []orb.LineString{
		{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, // collinear points survive
		{{0, 0}, {1, 1}},
		randomWalk(1, 200),
	}
	for i, p := range paths {
		got := Simplify(p, 0)
		if !got.Equal(p) {
			t.Errorf("path %d: Simplify(p, 0) = %v, want unchanged", i, got)
		}
	}
}

func TestSimplifyMonotone(t *testing.T) {
	tolerances := []float64{0, 0.01, 0.1, 0.25, 0.5, 1, 2, 5, 100}
	for seed := int64(1); seed <= 5; seed++ {
		p := randomWalk(seed, 500)
		prev := math.MaxInt
		for _, tol := range tolerances {
			got := Simplify(p, tol)
			if len(got) > prev {
				t.Errorf("seed %d: tolerance %v gave %d points, more than %d at a smaller tolerance", seed, tol, len(got), prev)
			}
			prev = len(got)

			if got[0] != p[0] || got[len(got)-1] != p[len(p)-1] {
				t.Errorf("seed %d tolerance %v: endpoints not kept", seed, tol)
			}
			if !isSubsequence(got, p) {
				t.Errorf("seed %d tolerance %v: result is not a subsequence of the input", seed, tol)
			}
		}
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name      string
		path      orb.LineString
		tolerance float64
		want      orb.LineString
	}{
		{
			name:      "drops point within tolerance",
			path:      orb.LineString{{0, 0}, {5, 0.05}, {10, 0}},
			tolerance: 0.1,
			want:      orb.LineString{{0, 0}, {10, 0}},
		},
		{
			name:      "keeps point beyond tolerance",
			path:      orb.LineString{{0, 0}, {5, 1}, {10, 0}},
			tolerance: 0.1,
			want:      orb.LineString{{0, 0}, {5, 1}, {10, 0}},
		},
		{
			name:      "two points",
			path:      orb.LineString{{0, 0}, {10, 0}},
			tolerance: 5,
			want:      orb.LineString{{0, 0}, {10, 0}},
		},
		{
			name:      "negative tolerance",
			path:      orb.LineString{{0, 0}, {5, 0}, {10, 0}},
			tolerance: -1,
			want:      orb.LineString{{0, 0}, {5, 0}, {10, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.path.Clone()
			got := Simplify(in, tt.tolerance)
			if !got.Equal(tt.want) {
				t.Errorf("Simplify() = %v, want %v", got, tt.want)
			}
			if !in.Equal(tt.path) {
				t.Errorf("Simplify() modified its input: %v", in)
			}
		})
	}
}

func TestSimplifyWay(t *testing.T) {
	w := Way{
		Name: "A1",
		Points: []RawPoint{
			{true, 0, 0}, {false, 5, 0.0001}, {false, 10, 0},
			{true, 10, 0}, {false, 20, 0},
		},
	}
	got, err := SimplifyWay(w, 0.001, 1e-6)
	if err != nil {
		t.Fatalf("SimplifyWay() error = %v", err)
	}
	want := []RawPoint{{true, 0, 0}, {false, 20, 0}}
	if len(got.Points) != len(want) {
		t.Fatalf("SimplifyWay() points = %v, want %v", got.Points, want)
	}
	for i := range want {
		if got.Points[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got.Points[i], want[i])
		}
	}
	if len(w.Points) != 5 {
		t.Error("SimplifyWay() modified its input")
	}
}

func BenchmarkSimplify(b *testing.B) {
	p := randomWalk(42, 10000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Simplify(p, 0.5)
	}
}
