package lattice

// Cloud is a sparse set of lattice points, used by the atlas codec and by
// map generators collecting terrain overrides before they're written to a
// store.
type Cloud map[Location]struct{}

// NewCloud builds a Cloud from a slice of locations.
func NewCloud(locs ...Location) Cloud {
	c := make(Cloud, len(locs))
	for _, l := range locs {
		c[l] = struct{}{}
	}
	return c
}

// Insert adds a location to the cloud.
func (c Cloud) Insert(l Location) { c[l] = struct{}{} }

// Contains reports membership.
func (c Cloud) Contains(l Location) bool {
	_, ok := c[l]
	return ok
}

// Locations returns the cloud's members in unspecified order.
func (c Cloud) Locations() []Location {
	out := make([]Location, 0, len(c))
	for l := range c {
		out = append(out, l)
	}
	return out
}

// Bounds returns the smallest Box containing every point in the cloud. The
// second return value is false for an empty cloud.
func (c Cloud) Bounds() (Box, bool) {
	if len(c) == 0 {
		return Box{}, false
	}
	first := true
	var b Box
	for l := range c {
		if first {
			b = Box{Min: l, Max: l.Add(Location{1, 1, 1})}
			first = false
			continue
		}
		if l.X < b.Min.X {
			b.Min.X = l.X
		}
		if l.Y < b.Min.Y {
			b.Min.Y = l.Y
		}
		if l.Z < b.Min.Z {
			b.Min.Z = l.Z
		}
		if l.X+1 > b.Max.X {
			b.Max.X = l.X + 1
		}
		if l.Y+1 > b.Max.Y {
			b.Max.Y = l.Y + 1
		}
		if l.Z+1 > b.Max.Z {
			b.Max.Z = l.Z + 1
		}
	}
	return b, true
}
