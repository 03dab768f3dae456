package lattice

import "voxelrogue/config"

// Box is an axis-aligned integer box, half-open: it contains Min but not
// Max along every axis.
type Box struct {
	Min, Max Location
}

// NewBox builds a box from an origin and size (exclusive of origin+size).
func NewBox(origin Location, size Location) Box {
	return Box{Min: origin, Max: origin.Add(size)}
}

// Width, Height, Depth are the box's extents along each axis.
func (b Box) Width() int  { return b.Max.X - b.Min.X }
func (b Box) Height() int { return b.Max.Y - b.Min.Y }
func (b Box) Depth() int  { return b.Max.Z - b.Min.Z }

// Contains reports whether l falls within the box.
func (b Box) Contains(l Location) bool {
	return l.X >= b.Min.X && l.X < b.Max.X &&
		l.Y >= b.Min.Y && l.Y < b.Max.Y &&
		l.Z >= b.Min.Z && l.Z < b.Max.Z
}

// ContainsBox reports whether o is entirely within b.
func (b Box) ContainsBox(o Box) bool {
	return o.Min.X >= b.Min.X && o.Max.X <= b.Max.X &&
		o.Min.Y >= b.Min.Y && o.Max.Y <= b.Max.Y &&
		o.Min.Z >= b.Min.Z && o.Max.Z <= b.Max.Z
}

// Grow expands the box by n on every side of every axis.
func (b Box) Grow(n int) Box {
	d := Location{n, n, n}
	return Box{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Fat grows the box by ±1 in z only.
func (b Box) Fat() Box {
	return Box{
		Min: Location{b.Min.X, b.Min.Y, b.Min.Z - 1},
		Max: Location{b.Max.X, b.Max.Y, b.Max.Z + 1},
	}
}

// Wide grows the box by ±1 sector width/height in x and y only.
func (b Box) Wide() Box {
	return Box{
		Min: Location{b.Min.X - config.SectorWidth, b.Min.Y - config.SectorHeight, b.Min.Z},
		Max: Location{b.Max.X + config.SectorWidth, b.Max.Y + config.SectorHeight, b.Max.Z},
	}
}

// Center returns the integer-truncated center of the box.
func (b Box) Center() Location {
	return Location{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: b.Min.Z,
	}
}

// Iter calls f for every location in the box in row-major (z, y, x) order,
// stopping early if f returns false.
func (b Box) Iter(f func(Location) bool) {
	for z := b.Min.Z; z < b.Max.Z; z++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if !f(Location{x, y, z}) {
					return
				}
			}
		}
	}
}

// All collects every location in the box. Prefer Iter for large boxes.
func (b Box) All() []Location {
	locs := make([]Location, 0, b.Width()*b.Height()*b.Depth())
	b.Iter(func(l Location) bool {
		locs = append(locs, l)
		return true
	})
	return locs
}
