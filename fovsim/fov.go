// Package fovsim computes field of view over the terrain store using
// github.com/norendren/go-fov's shadowcasting, clamped to the viewpoint's
// own sector: spec.md §4.9. Grounded on
// Afromullet-TinkerRogue/game_main/GameMap.go (the IsOpaque/InBounds grid
// adapter feeding fov.View.Compute, and the PlayerVisible.IsVisible query
// pattern), adapted from a single flat 2D grid to a per-sector grid whose
// origin and bounds come from lattice.Box. The same-screen clamp rule comes
// from original_source's fov.rs (FovState::advance rejecting any offset
// that leaves the origin's sector).
package fovsim

import (
	"github.com/norendren/go-fov/fov"

	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

// grid adapts a terrain.Store and a fixed z-plane into the IsOpaque/
// InBounds interface go-fov's View.Compute expects, with its origin fixed
// at the viewpoint's own sector so FOV never crosses into a neighboring
// one.
type grid struct {
	store  *terrain.Store
	z      int
	bounds lattice.Box
	// occupied reports whether a door cell is blocked by a standing mob,
	// honoring the open-door-if-occupied sight rule (spec.md §3.2).
	occupied func(lattice.Location) bool
}

func (g grid) InBounds(x, y int) bool {
	loc := lattice.At(x, y, g.z)
	return g.bounds.Contains(loc)
}

func (g grid) IsOpaque(x, y int) bool {
	loc := lattice.At(x, y, g.z)
	t := g.store.Tile(loc)
	occ := false
	if g.occupied != nil {
		occ = g.occupied(loc)
	}
	return t.BlocksSight(occ)
}

// Compute returns the set of locations visible from vp within radius,
// confined to vp's own sector (spec.md: "FOV never crosses the edge of the
// viewpoint's sector").
func Compute(store *terrain.Store, vp lattice.Location, radius int, occupied func(lattice.Location) bool) map[lattice.Location]struct{} {
	g := grid{store: store, z: vp.Z, bounds: vp.Sector(), occupied: occupied}
	view := fov.New()
	view.Compute(g, vp.X, vp.Y, radius)

	out := make(map[lattice.Location]struct{})
	b := g.bounds
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			if view.IsVisible(x, y) {
				out[lattice.At(x, y, vp.Z)] = struct{}{}
			}
		}
	}
	return out
}

// Visible reports whether loc is within radius of vp and visible per
// Compute's rules, without materializing the full visible set. Useful for
// the ai package's "can I see this one entity" checks.
func Visible(store *terrain.Store, vp, loc lattice.Location, radius int, occupied func(lattice.Location) bool) bool {
	if loc.Z != vp.Z || !vp.Sector().Contains(loc) {
		return false
	}
	if vp.ChebyshevDistance2D(loc) > radius {
		return false
	}
	set := Compute(store, vp, radius, occupied)
	_, ok := set[loc]
	return ok
}
