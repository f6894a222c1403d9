package ingest

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Simplify reduces a path with Douglas-Peucker. The result is a subsequence of
// path keeping both endpoints. A tolerance <= 0 returns the path unchanged.
// The input is never modified.
func Simplify(path orb.LineString, tolerance float64) orb.LineString {
	if tolerance <= 0 || len(path) <= 2 {
		return path.Clone()
	}
	// DouglasPeucker works in place
	return simplify.DouglasPeucker(tolerance).LineString(path.Clone())
}

// SimplifyPaths applies Simplify to each path.
func SimplifyPaths(paths []orb.LineString, tolerance float64) []orb.LineString {
	out := make([]orb.LineString, len(paths))
	for i, p := range paths {
		out[i] = Simplify(p, tolerance)
	}
	return out
}

// SimplifyWay reconstructs the way's paths, simplifies each one and returns a
// copy of the way with the resulting points. The input way is not modified.
func SimplifyWay(w Way, tolerance, precision float64) (Way, error) {
	paths, err := ReconstructPaths(w.Points, precision)
	if err != nil {
		return Way{}, err
	}
	w.Points = PathsToPoints(SimplifyPaths(paths, tolerance))
	return w, nil
}
