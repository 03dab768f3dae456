package waypoint

import (
	"math"
	"sort"

	"voxelrogue/lattice"
	"voxelrogue/skeleton"
)

// unreachable stands in for usize::MAX in the original: a waypoint that
// never reaches a given level via BFS is maximally far, not absent.
const unreachable = math.MaxInt

func distTo(dist map[lattice.Box]int, lev lattice.Box) int {
	if d, ok := dist[lev]; ok {
		return d
	}
	return unreachable
}

// computeSegmentCover finds the closest waypoints covering each level.
//
// This is the trickiest part of the system. It tries to find the two
// nearest waypoints (along traversable paths, not straight-line distance)
// to each level and picks these as the waypoints affecting that level. If
// more than two waypoints are equally close, all of them are picked.
// Waypoints behind other waypoints are avoided in favor of unoccluded
// ones, even when the unoccluded ones are much further away. Grounded on
// waypoints.rs::compute_segment_cover.
func computeSegmentCover(skel map[lattice.Box]*skeleton.Segment) map[WaypointPair]LevelSet {
	var waypoints []lattice.Box
	for b, seg := range skel {
		if seg.HasWaypoint() {
			waypoints = append(waypoints, b)
		}
	}
	waypoints = sortedBoxes(waypoints)

	// Distance from every waypoint to every level it can reach, indexed
	// by waypoint position (one BFS per waypoint; the original interleaves
	// these into a single multi-source BFS, but since every waypoint's
	// search never crosses into another's index-tagged state, running
	// them one at a time gives identical distances).
	distFromWaypoint := make([]map[lattice.Box]int, len(waypoints))
	for i, w := range waypoints {
		distFromWaypoint[i] = bfsLevelDistances(skel, w)
	}

	cover := map[lattice.Box][]WaypointPair{}
	for lev := range skel {
		closest := closestWaypoints(waypoints, distFromWaypoint, lev)
		for i := 0; i < len(closest); i++ {
			for j := i + 1; j < len(closest); j++ {
				cover[lev] = append(cover[lev], NewWaypointPair(closest[i], closest[j]))
			}
		}
	}

	result := map[WaypointPair]LevelSet{}
	for lev, pairs := range cover {
		for _, pair := range pairs {
			if result[pair] == nil {
				result[pair] = LevelSet{}
			}
			result[pair].add(lev)
		}
	}
	// Make sure every pair covers its own two waypoint levels.
	for pair, levs := range result {
		levs.add(pair.A)
		levs.add(pair.B)
	}

	return result
}

type candidate struct {
	idx      int
	occluded bool
	dist     int
}

// closestWaypoints picks the nearest waypoint to lev and the next one in
// preference order whatever its distance, then keeps adding more waypoints
// as long as each next one is no further away than the previous pick and
// isn't occluded (beyond the first two picks, an occluded waypoint stops
// the scan).
func closestWaypoints(waypoints []lattice.Box, distFromWaypoint []map[lattice.Box]int, lev lattice.Box) []lattice.Box {
	cands := make([]candidate, len(waypoints))
	for i, w := range waypoints {
		dist := distTo(distFromWaypoint[i], lev)
		occluded := w != lev && isOccluded(waypoints, distFromWaypoint, lev, i, dist)
		cands[i] = candidate{idx: i, occluded: occluded, dist: dist}
	}

	// Prefer unoccluded over occluded, then smaller distance, then
	// (arbitrarily, for determinism) larger index.
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.occluded != b.occluded {
			return !a.occluded
		}
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		return a.idx > b.idx
	})

	if len(cands) == 0 {
		return nil
	}

	picked := []lattice.Box{waypoints[cands[0].idx]}
	dist := -1
	for _, c := range cands[1:] {
		if dist >= 0 && c.dist > dist {
			break
		}
		if len(picked) >= 2 && c.occluded {
			break
		}
		picked = append(picked, waypoints[c.idx])
		dist = c.dist
	}
	return picked
}

// isOccluded reports whether any closer waypoint b stands between a (at
// index idx) and lev. Because distance is path distance rather than
// straight-line, a waypoint can appear to occlude another one whose path
// is actually longer; such a candidate is rejected (only a waypoint that
// is itself strictly closer than a can occlude it).
func isOccluded(waypoints []lattice.Box, distFromWaypoint []map[lattice.Box]int, lev lattice.Box, idx, dist int) bool {
	a := waypoints[idx]
	for j, b := range waypoints {
		if distTo(distFromWaypoint[j], lev) < dist && occludes(b, a, lev) {
			return true
		}
	}
	return false
}

// occludes reports whether waypoint a occludes waypoint b as seen from
// pos: b is behind the plane through a whose normal points from a toward
// pos.
func occludes(a, b, pos lattice.Box) bool {
	av := corner(a)
	bv := corner(b)
	pv := corner(pos)

	posMinusA := [3]float64{pv[0] - av[0], pv[1] - av[1], pv[2] - av[2]}
	bMinusA := [3]float64{bv[0] - av[0], bv[1] - av[1], bv[2] - av[2]}

	dot := posMinusA[0]*bMinusA[0] + posMinusA[1]*bMinusA[1] + posMinusA[2]*bMinusA[2]
	return dot < 0.0
}

func corner(b lattice.Box) [3]float64 {
	return [3]float64{float64(b.Min.X), float64(b.Min.Y), float64(b.Min.Z)}
}

// bfsLevelDistances computes the number of sector-to-sector hops from start
// to every sector reachable from it, walking the skeleton's own
// connectivity (levelNeighbors) rather than the derived waypoint graph —
// this is the distance map compute_segment_cover builds before the
// waypoint graph exists yet.
func bfsLevelDistances(skel map[lattice.Box]*skeleton.Segment, start lattice.Box) map[lattice.Box]int {
	dist := map[lattice.Box]int{start: 0}
	queue := []lattice.Box{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range levelNeighbors(skel, cur) {
			if _, ok := dist[n]; ok {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}
