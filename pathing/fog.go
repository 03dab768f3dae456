package pathing

import (
	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

// FogPathing selects how a walker's neighbor relation is constrained by
// what it has explored: spec.md §4.10.
type FogPathing int

const (
	// Avoid only steps into cells already in the explored set.
	Avoid FogPathing = iota
	// Explore relaxes Avoid, used as a fallback when Avoid finds no path.
	Explore
	// Ignore applies no fog constraint; used by non-player-aligned mobs.
	Ignore
)

// Explored reports whether loc has been seen before, per a player-aligned
// observer's persisted BitAtlas. Runtime supplies the concrete set.
type Explored func(lattice.Location) bool

// WalkNeighbors builds a Neighbors function over the terrain store's
// walk-neighbor relation (spec.md §4.1), constrained by fog mode.
func WalkNeighbors(store *terrain.Store, mode FogPathing, explored Explored) Neighbors {
	return func(loc lattice.Location) []lattice.Location {
		var out []lattice.Location
		for _, d := range lattice.Dirs4 {
			next, ok := store.WalkNeighbor(loc, d)
			if !ok {
				continue
			}
			switch mode {
			case Avoid:
				if explored != nil && !explored(next) {
					continue
				}
			case Explore, Ignore:
				// no fog constraint
			}
			out = append(out, next)
		}
		return out
	}
}

// RangeClamped wraps neighbors so that every candidate must stay inside
// bounds, except when it is itself the goal (spec.md: "paths must stay
// inside the player's current level's wide fat sector, except when the
// destination itself is the neighbor sector").
func RangeClamped(neighbors Neighbors, bounds lattice.Box, goal Sdf) Neighbors {
	return func(loc lattice.Location) []lattice.Location {
		var out []lattice.Location
		for _, next := range neighbors(loc) {
			if bounds.Contains(next) || goal(next) <= 0 {
				out = append(out, next)
			}
		}
		return out
	}
}

// FindFogPath tries Avoid first, falling back to Explore if Avoid finds
// nothing — the player-aligned search order from spec.md §4.8's decide.
func FindFogPath(store *terrain.Store, start lattice.Location, goal Sdf, explored Explored, bounds lattice.Box, maxExpansions int) ([]lattice.Location, bool) {
	avoid := RangeClamped(WalkNeighbors(store, Avoid, explored), bounds, goal)
	if path, ok := FindPath(start, goal, avoid, maxExpansions); ok {
		return path, true
	}
	explore := RangeClamped(WalkNeighbors(store, Explore, explored), bounds, goal)
	return FindPath(start, goal, explore, maxExpansions)
}
