package atlas

import (
	"sort"
	"strings"

	"voxelrogue/lattice"
)

// brailleBase is the codepoint for an all-zero Braille cell.
const brailleBase = 0x2800

// cellOffsets gives the (dx, dy) each of the 8 mask bits covers within one
// 2-wide-by-4-tall Braille cell, in bit order 0..7.
var cellOffsets = [8][2]int{
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2},
	{0, 3}, {1, 3},
}

// BitAtlas packs a boolean occupancy cloud into Braille-encoded text: each
// glyph covers a 2x4 block of cells. Used to serialize the FOV explored set.
type BitAtlas struct {
	byZ map[int]Cloud2D
}

// Cloud2D is the set of occupied (x, y) pairs at one z slice.
type Cloud2D map[[2]int]struct{}

// FromCloud builds a BitAtlas from a set of lattice locations.
func FromCloud(locs []lattice.Location) *BitAtlas {
	b := &BitAtlas{byZ: make(map[int]Cloud2D)}
	for _, l := range locs {
		slice, ok := b.byZ[l.Z]
		if !ok {
			slice = make(Cloud2D)
			b.byZ[l.Z] = slice
		}
		slice[[2]int{l.X, l.Y}] = struct{}{}
	}
	return b
}

// Locations decodes the BitAtlas back into the set of occupied locations.
// Round-trips exactly with FromCloud for any finite input set.
func (b *BitAtlas) Locations() []lattice.Location {
	var out []lattice.Location
	for z, slice := range b.byZ {
		for xy := range slice {
			out = append(out, lattice.At(xy[0], xy[1], z))
		}
	}
	return out
}

// Text renders the BitAtlas as Braille-glyph rows, one block of rows per z
// slice, slices emitted in ascending z order, each slice covering the
// smallest bounding rectangle (in cell units) of its occupied points.
func (b *BitAtlas) Text() string {
	zs := make([]int, 0, len(b.byZ))
	for z := range b.byZ {
		zs = append(zs, z)
	}
	sort.Ints(zs)

	var sb strings.Builder
	for _, z := range zs {
		slice := b.byZ[z]
		if len(slice) == 0 {
			continue
		}
		minCX, minCY, maxCX, maxCY := boundsOf(slice)
		sb.WriteString(keyLine(lattice.At(minCX*2, minCY*4, z)))
		for cy := minCY; cy <= maxCY; cy++ {
			for cx := minCX; cx <= maxCX; cx++ {
				mask := maskAt(slice, cx, cy)
				sb.WriteRune(rune(brailleBase + int(mask)))
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func boundsOf(slice Cloud2D) (minCX, minCY, maxCX, maxCY int) {
	first := true
	for xy := range slice {
		cx, cy := xy[0]/2, xy[1]/4
		if xy[0] < 0 && xy[0]%2 != 0 {
			cx--
		}
		if xy[1] < 0 && xy[1]%4 != 0 {
			cy--
		}
		if first {
			minCX, maxCX, minCY, maxCY = cx, cx, cy, cy
			first = false
			continue
		}
		if cx < minCX {
			minCX = cx
		}
		if cx > maxCX {
			maxCX = cx
		}
		if cy < minCY {
			minCY = cy
		}
		if cy > maxCY {
			maxCY = cy
		}
	}
	return
}

func maskAt(slice Cloud2D, cx, cy int) byte {
	var mask byte
	for bit, off := range cellOffsets {
		x, y := cx*2+off[0], cy*4+off[1]
		if _, ok := slice[[2]int{x, y}]; ok {
			mask |= 1 << uint(bit)
		}
	}
	return mask
}
