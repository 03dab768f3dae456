package terrain

import "voxelrogue/lattice"

// TileKind discriminates the three shapes a 2D tile projection can take.
type TileKind int

const (
	KindWall TileKind = iota
	KindSurface
	KindVoid
)

// Tile is the 2D projection of a 1-z-thick slice at a location, derived
// from the voxel content at that location, the one above, the one below
// and the one two below, plus the 8-neighbors used for edge detection
// (spec.md §4.1, tested by §8 property 3).
type Tile struct {
	Kind TileKind
	// Loc is the Surface's floor location (may differ from the query
	// location: raised or depressed floors project to a neighboring z).
	Loc   lattice.Location
	Block Block
}

func wall(b Block) Tile              { return Tile{Kind: KindWall, Block: b} }
func surface(l lattice.Location, b Block) Tile { return Tile{Kind: KindSurface, Loc: l, Block: b} }
func void() Tile                     { return Tile{Kind: KindVoid} }

// eightNeighbors2D returns the 8-neighborhood of l in the xy plane, z held
// fixed.
func eightNeighbors2D(l lattice.Location) []lattice.Location {
	out := make([]lattice.Location, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out = append(out, lattice.At(l.X+dx, l.Y+dy, l.Z))
		}
	}
	return out
}

// isEdge reports whether the voxel at l is solid and has at least one open
// 8-neighbor in the same z slice.
func (s *Store) isEdge(l lattice.Location) bool {
	v := s.Voxel(l)
	if v.IsNone() {
		return false
	}
	for _, n := range eightNeighbors2D(l) {
		if s.Voxel(n).IsNone() {
			return true
		}
	}
	return false
}

// Tile derives the 2D tile projection at loc from voxel(above), voxel(loc),
// voxel(below), and voxel(loc-2z) for the depressed-floor case.
func (s *Store) Tile(loc lattice.Location) Tile {
	above := s.Voxel(loc.Up())
	here := s.Voxel(loc)
	below := s.Voxel(loc.Down())

	switch {
	case !here.IsNone() && !above.IsNone():
		// Solid floor, solid ceiling: a wall slice, with two normalization
		// exceptions.
		if above.Block == Door || below.Block == Door {
			return wall(Door)
		}
		if s.isEdge(loc.Up()) && !s.isEdge(loc) {
			return wall(above.Block)
		}
		return wall(here.Block)

	case !here.IsNone() && above.IsNone():
		// Raised floor: you stand one z above the solid block.
		return surface(loc.Up(), here.Block)

	case here.IsNone() && !below.IsNone():
		// Regular floor.
		return surface(loc, below.Block)

	case here.IsNone() && below.IsNone():
		twoDown := s.Voxel(lattice.At(loc.X, loc.Y, loc.Z-2))
		if !twoDown.IsNone() {
			// Depressed floor: single-step descent.
			return surface(loc.Down(), twoDown.Block)
		}
		return void()
	}

	return void()
}

// BlocksSight reports whether a tile blocks line of sight, honoring the
// open-door-when-occupied exception via occupied.
func (t Tile) BlocksSight(occupied bool) bool {
	if t.Kind != KindWall {
		return false
	}
	if t.Block == Door && occupied {
		return false
	}
	return t.Block.BlocksSight()
}

// CanBeStoodIn reports whether loc itself (not its projected Surface.Loc)
// can be occupied: open or a door, with support immediately below.
func (s *Store) CanBeStoodIn(loc lattice.Location) bool {
	v := s.Voxel(loc)
	if !(v.IsNone() || v.Block == Door) {
		return false
	}
	return s.Voxel(loc.Down()).IsSupport()
}
