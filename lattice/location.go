// Package lattice provides the integer axis-box and point-cloud primitives
// the rest of the simulation is built from. Location is the only positional
// type at the simulation layer; there is no floating-point geometry here.
package lattice

import "voxelrogue/config"

// Location is an integer lattice point in ℤ³.
type Location struct {
	X, Y, Z int
}

// At constructs a Location.
func At(x, y, z int) Location {
	return Location{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum.
func (l Location) Add(o Location) Location {
	return Location{l.X + o.X, l.Y + o.Y, l.Z + o.Z}
}

// Sub returns the component-wise difference.
func (l Location) Sub(o Location) Location {
	return Location{l.X - o.X, l.Y - o.Y, l.Z - o.Z}
}

// Up returns the location one step in +z.
func (l Location) Up() Location { return Location{l.X, l.Y, l.Z + 1} }

// Down returns the location one step in -z.
func (l Location) Down() Location { return Location{l.X, l.Y, l.Z - 1} }

// Dir4 is one of the four cardinal unit vectors in the xy plane.
type Dir4 struct{ DX, DY int }

var (
	North = Dir4{0, -1}
	South = Dir4{0, 1}
	East  = Dir4{1, 0}
	West  = Dir4{-1, 0}
)

// Dirs4 lists the four cardinal directions in a fixed order.
var Dirs4 = [4]Dir4{North, East, South, West}

// Step moves a location by a cardinal direction in the xy plane, z held
// fixed.
func (l Location) Step(d Dir4) Location {
	return Location{l.X + d.DX, l.Y + d.DY, l.Z}
}

// ManhattanDistance2D is the taxicab distance ignoring z.
func (l Location) ManhattanDistance2D(o Location) int {
	return absInt(l.X-o.X) + absInt(l.Y-o.Y)
}

// ChebyshevDistance2D is the king-move distance ignoring z.
func (l Location) ChebyshevDistance2D(o Location) int {
	dx, dy := absInt(l.X-o.X), absInt(l.Y-o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func divEuclid(a, b int) int {
	q := a / b
	if a%b < 0 {
		if b > 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

// Sector returns the axis-box of the sector containing l. A sector is one z
// thick, SectorWidth by SectorHeight in xy.
func (l Location) Sector() Box {
	fx := divEuclid(l.X, config.SectorWidth)
	fy := divEuclid(l.Y, config.SectorHeight)
	return Box{
		Min: Location{fx * config.SectorWidth, fy * config.SectorHeight, l.Z},
		Max: Location{(fx + 1) * config.SectorWidth, (fy + 1) * config.SectorHeight, l.Z + 1},
	}
}

// Level returns the axis-box of the level containing l: x,y snapped as for
// Sector, z spanning config.LevelDepth.
func (l Location) Level() Box {
	s := l.Sector()
	lz := config.LevelDepth * divEuclid(l.Z, config.LevelDepth)
	return Box{
		Min: Location{s.Min.X, s.Min.Y, lz},
		Max: Location{s.Max.X, s.Max.Y, lz + config.LevelDepth},
	}
}

// HasSameScreenAs reports whether o is in the fat-and-wide neighborhood of
// l's sector: fat (±1 z) then wide (±1 x,y sector).
func (l Location) HasSameScreenAs(o Location) bool {
	return l.Sector().Fat().Wide().Contains(o)
}
