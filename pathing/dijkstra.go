package pathing

import (
	"container/list"

	"voxelrogue/lattice"
)

// DijkstraMap holds, for every location reached from a set of seed cells,
// the minimum number of walk-neighbor steps back to the nearest seed:
// spec.md §4.10's autoexplore map. Seeds are the unexplored frontier;
// walking downhill from the player's position chases the closest one.
type DijkstraMap map[lattice.Location]int

// BuildDijkstraMap runs a multi-source breadth-first flood from seeds over
// neighbors, stopping a branch once it exceeds maxDistance (0 means
// unlimited). Grounded on the same open/closed-list shape as FindPath, but
// unlike A* it has no single goal: every reachable cell gets a distance.
func BuildDijkstraMap(seeds []lattice.Location, neighbors Neighbors, maxDistance int) DijkstraMap {
	dist := make(DijkstraMap, len(seeds))
	queue := list.New()
	for _, s := range seeds {
		if _, seen := dist[s]; seen {
			continue
		}
		dist[s] = 0
		queue.PushBack(s)
	}

	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(lattice.Location)
		d := dist[front]
		if maxDistance > 0 && d >= maxDistance {
			continue
		}
		for _, next := range neighbors(front) {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = d + 1
			queue.PushBack(next)
		}
	}
	return dist
}

// Downhill picks the neighbor of loc with the smallest recorded distance,
// the single step an autoexploring mob takes each turn. Returns false if
// loc has no mapped neighbor (map exhausted or loc unreachable).
func (m DijkstraMap) Downhill(loc lattice.Location, neighbors Neighbors) (lattice.Location, bool) {
	best, ok := lattice.Location{}, false
	bestDist := 0
	for _, next := range neighbors(loc) {
		d, known := m[next]
		if !known {
			continue
		}
		if !ok || d < bestDist {
			best, bestDist, ok = next, d, true
		}
	}
	return best, ok
}
