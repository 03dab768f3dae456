// Package pathing implements A* over the walk-neighbor graph with a
// signed-distance goal predicate, plus a Dijkstra map for autoexplore:
// spec.md §4.10. Grounded on
// Afromullet-TinkerRogue/worldmap/astar.go (open/closed-list node search,
// f = g + h scoring, backtrace-by-parent-pointer reconstruction), rebuilt
// over container/heap instead of the teacher's linear scan for the open
// list's minimum, since this module's levels are large enough sectors that
// an O(n) scan per step matters.
package pathing

import (
	"container/heap"

	"voxelrogue/lattice"
)

// Sdf is a signed-distance goal predicate: negative or zero means "arrived".
// A point target, a cube, or any region can be expressed this way.
type Sdf func(lattice.Location) int

// PointGoal builds an Sdf for a single target location using 2D Chebyshev
// distance: it reaches zero at the target's x, y on any z.
func PointGoal(target lattice.Location) Sdf {
	return func(l lattice.Location) int { return l.ChebyshevDistance2D(target) }
}

// Neighbors enumerates the walk-capable neighbors of loc. Every step costs
// 1 in this simulation; distinct neighbor sets are what differ between
// fog-pathing variants.
type Neighbors func(lattice.Location) []lattice.Location

type openNode struct {
	loc    lattice.Location
	g, h   int
	parent lattice.Location
	hasPar bool
	index  int
}

type openHeap []*openNode

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	fi, fj := h[i].g+h[i].h, h[j].g+h[j].h
	if fi != fj {
		return fi < fj
	}
	return h[i].h < h[j].h
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *openHeap) Push(x any) {
	n := x.(*openNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// FindPath runs A* from start towards goal using neighbors as the
// expansion relation, returning the path from start to the first location
// satisfying goal (inclusive of that location, exclusive of start), or
// false if no such path exists within maxExpansions node expansions.
func FindPath(start lattice.Location, goal Sdf, neighbors Neighbors, maxExpansions int) ([]lattice.Location, bool) {
	if goal(start) <= 0 {
		return nil, true
	}

	open := &openHeap{}
	heap.Init(open)
	heap.Push(open, &openNode{loc: start, g: 0, h: clampHeuristic(goal(start))})

	bestG := map[lattice.Location]int{start: 0}
	cameFrom := map[lattice.Location]lattice.Location{}

	expansions := 0
	for open.Len() > 0 {
		if maxExpansions > 0 && expansions >= maxExpansions {
			return nil, false
		}
		expansions++

		cur := heap.Pop(open).(*openNode)
		if g, ok := bestG[cur.loc]; ok && cur.g > g {
			continue // stale heap entry
		}

		if goal(cur.loc) <= 0 {
			return reconstruct(cameFrom, start, cur.loc), true
		}

		for _, next := range neighbors(cur.loc) {
			g := cur.g + 1
			if existing, ok := bestG[next]; ok && existing <= g {
				continue
			}
			bestG[next] = g
			cameFrom[next] = cur.loc
			heap.Push(open, &openNode{loc: next, g: g, h: clampHeuristic(goal(next))})
		}
	}
	return nil, false
}

func clampHeuristic(sd int) int {
	if sd < 0 {
		return 0
	}
	return sd
}

func reconstruct(cameFrom map[lattice.Location]lattice.Location, start, end lattice.Location) []lattice.Location {
	var path []lattice.Location
	cur := end
	for cur != start {
		path = append(path, cur)
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// Reverse in place: path was built end-to-start.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
