package skeleton

import (
	"voxelrogue/config"
	"voxelrogue/lattice"
	"voxelrogue/rng"
)

// rect2D is a half-open 2D integer rectangle used only by the stairwell
// snap math below.
type rect2D struct{ MinX, MinY, MaxX, MaxY int }

func (r rect2D) dim() (int, int) { return r.MaxX - r.MinX, r.MaxY - r.MinY }

// modProj wraps p into r, same shape as the original's Rect::mod_proj.
func (r rect2D) modProj(x, y int) (int, int) {
	w, h := r.dim()
	return r.MinX + euclidMod(x-r.MinX, w), r.MinY + euclidMod(y-r.MinY, h)
}

func euclidMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func euclidDiv(a, b int) int {
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

// SnapStairwellPosition snaps loc to the nearest valid stairwell grid cell
// for its z-level: a centered chessboard of 4x4 cells whose parity
// alternates every config.LevelDepth z-levels, so an up and down stairwell
// on consecutive levels never land on the same (x, y). Grounded on
// original_source's world/src/world.rs::snap_stairwell_position and
// snap_to_chessboard3.
func SnapStairwellPosition(loc lattice.Location) lattice.Location {
	w := (config.SectorWidth - 2) / 8 * 8
	h := (config.SectorHeight - 2) / 8 * 8
	ox := (config.SectorWidth - w) / 4 * 2
	oy := (config.SectorHeight - h) / 4 * 2

	sector := loc.Sector()
	bounds := rect2D{
		MinX: sector.Min.X + ox,
		MinY: sector.Min.Y + oy,
		MaxX: sector.Min.X + ox + w,
		MaxY: sector.Min.Y + oy + h,
	}

	parity := euclidDiv(loc.Z, config.LevelDepth)
	x, y := snapToChessboard(parity, bounds, loc.X, loc.Y)
	return lattice.At(x, y, loc.Z)
}

// snapToChessboard snaps (x, y) to the center of the nearest 4x4 cell whose
// parity matches the given level parity, then wraps the result into bounds.
func snapToChessboard(parity int, bounds rect2D, x, y int) (int, int) {
	const n = 4

	tileX, tileY := x-bounds.MinX, y-bounds.MinY
	color := euclidMod(euclidDiv(tileX, n)+euclidDiv(tileY, n), 2)

	adjX := x
	if color != euclidMod(parity, 2) {
		adjX += n
	}

	tileX = adjX - bounds.MinX
	tileY = y - bounds.MinY
	snappedX := bounds.MinX + euclidDiv(tileX, n)*n + n/2
	snappedY := bounds.MinY + euclidDiv(tileY, n)*n + n/2

	return bounds.modProj(snappedX, snappedY)
}

// DefaultDownStairs samples a stairwell location for sectorBox's downstairs
// when the scenario doesn't pin one via a prefab's fixed upstairs, seeded
// deterministically by (worldSeed, sectorBox).
func DefaultDownStairs(worldSeed uint64, sectorBox lattice.Box) lattice.Location {
	src := rng.Derive(worldSeed, "default-down-stairs", sectorBox)
	x := sectorBox.Min.X + src.Intn(sectorBox.Width())
	y := sectorBox.Min.Y + src.Intn(sectorBox.Height())
	z := sectorBox.Min.Z - 1
	return SnapStairwellPosition(lattice.At(x, y, z))
}
