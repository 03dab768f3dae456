// Package waypoint figures out which waypoints affect which sectors of a
// skeleton.
//
// The core waypoint mechanics (spec.md §3.9/§4.11): if you die, you
// respawn at the last waypoint you rested at, with regular enemies you'd
// damaged restored to full health; bosses stay dead. Resting at the same
// waypoint twice in a row respawns enemies the same way, so the player
// can't clear an area by attrition without ever facing it at full
// strength. Resting at a *different* waypoint than you started from makes
// any changes in the area between the two permanent.
//
// This package computes that "area between two waypoints": the set of
// sectors whose state should stick once the player travels from one rest
// point to another. Grounded on original_source's
// world/src/waypoints.rs.
package waypoint

import (
	"log"
	"sort"

	"voxelrogue/config"
	"voxelrogue/lattice"
	"voxelrogue/skeleton"
)

// WaypointPair is an unordered pair of waypoint sectors, normalized so
// (a, b) and (b, a) compare equal.
type WaypointPair struct {
	A, B lattice.Box
}

// NewWaypointPair normalizes the order of the two sectors.
func NewWaypointPair(a, b lattice.Box) WaypointPair {
	if lessBox(a, b) {
		return WaypointPair{a, b}
	}
	return WaypointPair{b, a}
}

func lessBox(a, b lattice.Box) bool {
	if a.Min.X != b.Min.X {
		return a.Min.X < b.Min.X
	}
	if a.Min.Y != b.Min.Y {
		return a.Min.Y < b.Min.Y
	}
	return a.Min.Z < b.Min.Z
}

// LevelSet is a set of sectors.
type LevelSet map[lattice.Box]struct{}

func (s LevelSet) add(b lattice.Box) { s[b] = struct{}{} }

// Geometry is the cached waypoint cover for a skeleton: which sectors each
// waypoint pair governs, and the graph of which waypoint pairs are
// directly connected (seen covering a common sector).
type Geometry struct {
	SegmentCover  map[WaypointPair]LevelSet
	WaypointGraph map[lattice.Box][]lattice.Box
}

// ConstructWaypointGeometry builds the segment cover and waypoint graph
// from a built skeleton. Grounded on
// world.rs::World::construct_waypoint_geometry.
func ConstructWaypointGeometry(skel map[lattice.Box]*skeleton.Segment) Geometry {
	cover := computeSegmentCover(skel)

	graph := map[lattice.Box][]lattice.Box{}
	for pair := range cover {
		graph[pair.A] = append(graph[pair.A], pair.B)
		graph[pair.B] = append(graph[pair.B], pair.A)
	}

	totalSegments := len(skel)
	waypointSet := LevelSet{}
	coveredSet := LevelSet{}
	for pair, levs := range cover {
		waypointSet.add(pair.A)
		waypointSet.add(pair.B)
		for lev := range levs {
			coveredSet.add(lev)
		}
	}
	log.Printf("waypoint: constructed geometry, %d waypoints covering %d/%d segments",
		len(waypointSet), len(coveredSet), totalSegments)

	return Geometry{SegmentCover: cover, WaypointGraph: graph}
}

// AreaBetweenWaypoints returns the sectors that will have changes
// permanently applied when the player starts from waypoint a and stops at
// waypoint b. a and b must correspond to valid waypoints and be distinct,
// or the result is empty.
func (g Geometry) AreaBetweenWaypoints(a, b lattice.Box) LevelSet {
	out := LevelSet{}
	for _, pair := range g.shortestPathsBetweenWaypoints(a, b) {
		for lev := range g.SegmentCover[pair] {
			out.add(lev)
		}
	}
	return out
}

// shortestPathsBetweenWaypoints returns every waypoint-to-waypoint edge
// that lies on some shortest path between a and b. Grounded on
// waypoints.rs::shortest_paths_between_waypoints, but computed as two BFS
// distance maps (from a, from b) instead of enumerating paths one at a
// time: an edge (u, v) lies on a shortest a-b path iff dist(a,u) + 1 +
// dist(v,b) equals the overall shortest distance and u is one step closer
// to a than v is. Every graph edge here has weight 1, so BFS distance is
// exactly what the original's Dijkstra search computes; the two results
// are the same set of edges, just reached without materializing paths.
func (g Geometry) shortestPathsBetweenWaypoints(a, b lattice.Box) []WaypointPair {
	distFromA := bfsDistances(g.WaypointGraph, a)
	shortest, reachable := distFromA[b]
	if !reachable {
		return nil
	}
	distFromB := bfsDistances(g.WaypointGraph, b)

	seen := map[WaypointPair]bool{}
	var out []WaypointPair
	for u, du := range distFromA {
		for _, v := range g.WaypointGraph[u] {
			if du+1 != distFromA[v] {
				continue
			}
			if du+1+distFromB[v] != shortest {
				continue
			}
			pair := NewWaypointPair(u, v)
			if !seen[pair] {
				seen[pair] = true
				out = append(out, pair)
			}
		}
	}
	return out
}

func bfsDistances(graph map[lattice.Box][]lattice.Box, start lattice.Box) map[lattice.Box]int {
	dist := map[lattice.Box]int{start: 0}
	queue := []lattice.Box{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range graph[cur] {
			if _, ok := dist[n]; ok {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// levelNeighbors lists the sectors a waypoint-search BFS may step to from
// b: the cardinal neighbors it connects to per the skeleton's
// ConnectedNorth/West flags (read from either side of the pair, since only
// the north/west side of a connection stores it), and the sector directly
// above or below if a stairwell connects them. Grounded on the same
// connectivity rules build_skeleton uses (world.rs::build_skeleton),
// already transcribed once for skeleton.ConstructLot.
func levelNeighbors(skel map[lattice.Box]*skeleton.Segment, b lattice.Box) []lattice.Box {
	seg := skel[b]
	if seg == nil {
		return nil
	}

	var out []lattice.Box

	north := sectorOffset(b, 0, -config.SectorHeight)
	if seg.ConnectedNorth {
		if _, ok := skel[north]; ok {
			out = append(out, north)
		}
	}
	west := sectorOffset(b, -config.SectorWidth, 0)
	if seg.ConnectedWest {
		if _, ok := skel[west]; ok {
			out = append(out, west)
		}
	}
	east := sectorOffset(b, config.SectorWidth, 0)
	if eseg, ok := skel[east]; ok && eseg.ConnectedWest {
		out = append(out, east)
	}
	south := sectorOffset(b, 0, config.SectorHeight)
	if sseg, ok := skel[south]; ok && sseg.ConnectedNorth {
		out = append(out, south)
	}

	down := lattice.Box{
		Min: lattice.At(b.Min.X, b.Min.Y, b.Min.Z-1),
		Max: lattice.At(b.Max.X, b.Max.Y, b.Max.Z-1),
	}
	if seg.HasConnectedDown {
		if _, ok := skel[down]; ok {
			out = append(out, down)
		}
	}
	up := lattice.Box{
		Min: lattice.At(b.Min.X, b.Min.Y, b.Min.Z+1),
		Max: lattice.At(b.Max.X, b.Max.Y, b.Max.Z+1),
	}
	if useg, ok := skel[up]; ok && useg.HasConnectedDown {
		out = append(out, up)
	}

	return out
}

func sectorOffset(b lattice.Box, dx, dy int) lattice.Box {
	return lattice.Box{
		Min: lattice.At(b.Min.X+dx, b.Min.Y+dy, b.Min.Z),
		Max: lattice.At(b.Max.X+dx, b.Max.Y+dy, b.Max.Z),
	}
}

// sortedBoxes returns boxes sorted into a deterministic order, so geometry
// construction never depends on Go's randomized map iteration.
func sortedBoxes(boxes []lattice.Box) []lattice.Box {
	sort.Slice(boxes, func(i, j int) bool { return lessBox(boxes[i], boxes[j]) })
	return boxes
}
