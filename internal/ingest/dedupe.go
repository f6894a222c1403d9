package ingest

import (
	"math"
	"sort"
)

// Dedupe greedily keeps locations with population >= minWeight that are at
// least minRadius from every location already kept.
//
// Candidates are taken in their given order, which must already encode
// importance (see SortByImportance). The result preserves input order.
func Dedupe(points []Location, minRadius float64, minWeight int64) []Location {
	accepted := make([]Location, 0, len(points)/4)
	for _, cand := range points {
		if cand.Population < minWeight {
			continue
		}
		minDist := math.Inf(1)
		for _, a := range accepted {
			d := math.Hypot(cand.X-a.X, cand.Y-a.Y)
			if d < minDist {
				minDist = d
			}
			if d < minRadius {
				break
			}
		}
		if minDist >= minRadius {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}

// SortByImportance orders locations by descending population, keeping the
// relative order of equal populations.
func SortByImportance(points []Location) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Population > points[j].Population
	})
}
