package terrain

import "voxelrogue/lattice"

// WalkNeighbor returns the unique stand-able location reached by stepping
// from loc in direction d, trying +z, flat, then -z (ramps are first-class
// single-z-step moves). ok is false if none of the three qualifies.
func (s *Store) WalkNeighbor(loc lattice.Location, d lattice.Dir4) (lattice.Location, bool) {
	flat := loc.Step(d)
	candidates := [3]lattice.Location{flat.Up(), flat, flat.Down()}
	for _, c := range candidates {
		if s.CanBeStoodIn(c) {
			return c, true
		}
	}
	return lattice.Location{}, false
}

// WalkNeighbors4 returns every cardinal walk-neighbor of loc, in the fixed
// lattice.Dirs4 order.
func (s *Store) WalkNeighbors4(loc lattice.Location) []lattice.Location {
	out := make([]lattice.Location, 0, 4)
	for _, d := range lattice.Dirs4 {
		if n, ok := s.WalkNeighbor(loc, d); ok {
			out = append(out, n)
		}
	}
	return out
}

// HoverNeighbor is like WalkNeighbor, but only requires the destination to
// be open or a door: no support-below check, for flying/levitating movers.
func (s *Store) HoverNeighbor(loc lattice.Location, d lattice.Dir4) (lattice.Location, bool) {
	flat := loc.Step(d)
	candidates := [3]lattice.Location{flat.Up(), flat, flat.Down()}
	openOrDoor := func(l lattice.Location) bool {
		v := s.Voxel(l)
		return v.IsNone() || v.Block == Door
	}
	for _, c := range candidates {
		if openOrDoor(c) {
			return c, true
		}
	}
	return lattice.Location{}, false
}

// HoverNeighbors4 returns every cardinal hover-neighbor of loc.
func (s *Store) HoverNeighbors4(loc lattice.Location) []lattice.Location {
	out := make([]lattice.Location, 0, 4)
	for _, d := range lattice.Dirs4 {
		if n, ok := s.HoverNeighbor(loc, d); ok {
			out = append(out, n)
		}
	}
	return out
}
